package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"zkssa/internal/asm"
	"zkssa/internal/diagnostics"
	"zkssa/internal/ir"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: defuncc <file.ssa>")
		os.Exit(1)
	}

	path := os.Args[1]
	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %s", path, err)
		os.Exit(1)
	}

	parsed, err := asm.ParseString(path, string(source))
	if err != nil {
		asm.ReportParseError(string(source), err)
		os.Exit(1)
	}

	program, err := asm.Build(parsed)
	if err != nil {
		color.Red("%s", err)
		os.Exit(1)
	}

	if err := run(program); err != nil {
		if internal, ok := err.(*ir.InternalError); ok {
			diagnostics.ReportInternalError(os.Stderr, "defunctionalize", internal)
		} else {
			color.Red("%s", err)
		}
		os.Exit(1)
	}

	fmt.Print(ir.Print(program))
	color.Green("defunctionalized %s", path)
}

// run drives the full pipeline and turns a synthesize/rewrite panic (an
// *ir.InternalError) back into a plain error, since this pass signals
// violated invariants by panicking rather than by threading an error
// return through every helper.
func run(program *ir.Program) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if internal, ok := r.(*ir.InternalError); ok {
				err = internal
				return
			}
			panic(r)
		}
	}()

	pipeline := ir.NewDefunctionalizationPipeline()
	pipeline.Run(program)
	return nil
}
