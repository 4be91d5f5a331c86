// Package diagnostics formats compiler-facing errors for a terminal, the
// same Rust-style coloring the front end uses for source diagnostics, but
// for internal invariant violations that carry no source position: this
// pass, and the passes around it, only ever fail closed with an
// *ir.InternalError, never a recoverable user-facing error.
package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ReportInternalError writes a boxed, colored report of err to w, labeled
// with the pass or stage name that raised it.
func ReportInternalError(w io.Writer, stage string, err error) {
	bold := color.New(color.Bold).SprintFunc()
	level := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(w, "%s: %s\n", level("internal compiler error"), bold(err.Error()))
	fmt.Fprintf(w, "  %s %s\n", dim("-->"), stage)
	fmt.Fprintf(w, "  %s\n", dim("│"))
	fmt.Fprintf(w, "  %s %s\n", dim("="), color.New(color.FgBlue).Sprint("note: this is a bug in the compiler, not in the input program"))
}

// ReportInternalErrorString is ReportInternalError rendered to a string,
// for callers (tests, the CLI) that want the text rather than a stream.
func ReportInternalErrorString(stage string, err error) string {
	var b strings.Builder
	ReportInternalError(&b, stage, err)
	return b.String()
}
