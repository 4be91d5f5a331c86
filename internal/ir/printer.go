package ir

import (
	"fmt"
	"sort"
	"strings"
)

// Printer renders a Program back to a readable textual form, used by the
// CLI driver and by tests asserting on shape rather than on internal ids.
type Printer struct {
	output strings.Builder
}

// Print returns the textual rendering of p.
func Print(p *Program) string {
	printer := &Printer{}
	printer.printProgram(p)
	return printer.output.String()
}

func (pr *Printer) printf(format string, args ...any) {
	fmt.Fprintf(&pr.output, format, args...)
}

func (pr *Printer) printProgram(p *Program) {
	ids := p.FunctionIds()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		if i > 0 {
			pr.printf("\n")
		}
		pr.printFunction(p.Functions[id])
	}
}

func (pr *Printer) printFunction(fn *Function) {
	sig := fn.Signature()
	pr.printf("fn %s %s(%s) -> (%s) {\n",
		fn.Id, fn.Name, renderTypes(sig.Params), renderTypes(sig.Returns))

	for _, blockId := range fn.ReachableBlocks() {
		pr.printBlock(fn, blockId)
	}
	pr.printf("}\n")
}

func (pr *Printer) printBlock(fn *Function, id BlockId) {
	block := fn.DFG.Block(id)
	params := make([]string, len(block.Params))
	for i, p := range block.Params {
		params[i] = fmt.Sprintf("%s: %s", p, fn.DFG.TypeOf(p))
	}
	pr.printf("  %s(%s):\n", id, strings.Join(params, ", "))

	for _, instId := range block.Instructions {
		pr.printf("    %s\n", pr.renderInstruction(fn, instId))
	}

	if block.Terminator != nil {
		pr.printf("    %s\n", pr.renderTerminator(block.Terminator))
	}
}

func (pr *Printer) renderValue(fn *Function, id ValueId) string {
	switch v := fn.DFG.Value(id).(type) {
	case *FunctionValue:
		return fmt.Sprintf("%s /* %s */", id, v.Id)
	case *NumericConstantValue:
		return fmt.Sprintf("%s /* %s */", id, v.Value)
	default:
		return id.String()
	}
}

func (pr *Printer) renderValues(fn *Function, ids []ValueId) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = pr.renderValue(fn, id)
	}
	return strings.Join(out, ", ")
}

func (pr *Printer) renderInstruction(fn *Function, id InstructionId) string {
	results := fn.DFG.InstructionResults(id)
	prefix := ""
	if len(results) > 0 {
		names := make([]string, len(results))
		for i, r := range results {
			names[i] = r.String()
		}
		prefix = strings.Join(names, ", ") + " = "
	}

	switch inst := fn.DFG.Instruction(id).(type) {
	case *CallInstruction:
		return fmt.Sprintf("%scall %s(%s)", prefix, pr.renderValue(fn, inst.Func), pr.renderValues(fn, inst.Arguments))
	case *StoreInstruction:
		return fmt.Sprintf("store %s at %s", pr.renderValue(fn, inst.Value), pr.renderValue(fn, inst.Address))
	case *LoadInstruction:
		return fmt.Sprintf("%sload %s", prefix, pr.renderValue(fn, inst.Address))
	case *AllocateInstruction:
		return fmt.Sprintf("%sallocate %s", prefix, inst.Of)
	case *BinaryInstruction:
		return fmt.Sprintf("%s%s %s %s", prefix, pr.renderValue(fn, inst.Lhs), binaryOpSymbol(inst.Op), pr.renderValue(fn, inst.Rhs))
	case *ConstrainInstruction:
		return fmt.Sprintf("constrain %s", pr.renderValue(fn, inst.Value))
	default:
		return fmt.Sprintf("<unknown instruction %T>", inst)
	}
}

func (pr *Printer) renderTerminator(term Terminator) string {
	switch t := term.(type) {
	case *ReturnTerminator:
		return fmt.Sprintf("return %s", joinIds(t.Values))
	case *JumpTerminator:
		return fmt.Sprintf("jmp %s(%s)", t.Target, joinIds(t.Args))
	case *BranchTerminator:
		return fmt.Sprintf("jmpif %s then %s else %s", t.Condition, t.Then, t.Else)
	default:
		return fmt.Sprintf("<unknown terminator %T>", t)
	}
}

func binaryOpSymbol(op BinaryOp) string {
	switch op {
	case OpEq:
		return "=="
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	default:
		return "?"
	}
}

func joinIds[T fmt.Stringer](ids []T) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return strings.Join(out, ", ")
}
