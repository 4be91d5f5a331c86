package ir

// This file wires defunctionalization into a small, ordered pipeline of
// whole-program passes, the same shape later optimization and lowering
// passes in this compiler are expected to follow.

// OptimizationPass is a single whole-program transformation.
type OptimizationPass interface {
	Name() string
	Description() string
	Apply(p *Program) bool // reports whether it changed anything
}

// OptimizationPipeline runs a fixed sequence of passes over a Program.
type OptimizationPipeline struct {
	passes []OptimizationPass
}

// NewDefunctionalizationPipeline returns the pipeline this module exists to
// run: defunctionalization followed by dead-value elimination, which cleans
// up the dynamic-target values defunctionalization deliberately leaves dead,
// rather than trying to prove liveness itself.
func NewDefunctionalizationPipeline() *OptimizationPipeline {
	pipeline := &OptimizationPipeline{}
	pipeline.AddPass(&DefunctionalizationPass{})
	pipeline.AddPass(&DeadValueElimination{}) // must run after defunctionalization
	return pipeline
}

// AddPass appends a pass to the end of the pipeline.
func (p *OptimizationPipeline) AddPass(pass OptimizationPass) {
	p.passes = append(p.passes, pass)
}

// Run executes every pass in order, reporting which ones changed anything.
func (p *OptimizationPipeline) Run(program *Program) map[string]bool {
	changes := make(map[string]bool, len(p.passes))
	for _, pass := range p.passes {
		changes[pass.Name()] = pass.Apply(program)
	}
	return changes
}

// DefunctionalizationPass adapts Defunctionalize to the OptimizationPass
// interface so it can sit in an ordinary pass pipeline alongside the rest of
// the compiler's optimizations.
type DefunctionalizationPass struct{}

func (*DefunctionalizationPass) Name() string { return "Defunctionalization" }

func (*DefunctionalizationPass) Description() string {
	return "Replaces first-class function values with field constants and apply-function dispatch"
}

// Apply always reports a change: Defunctionalize does not track whether it
// rewrote anything, so a run over an already-defunctionalized program also
// returns true.
func (*DefunctionalizationPass) Apply(program *Program) bool {
	Defunctionalize(program)
	return true
}

// DeadValueElimination removes instructions whose results are never used
// and have no side effect of their own. It exists mainly to prune the
// dynamic-target values that defunctionalization leaves dead once a call
// site no longer reads them (single-callee dispatch does not forward the
// original target; see ApplyFunction.DispatchesToMultiple). Only
// instructions are removed: a dead target that is a block parameter stays
// in its block's parameter list.
type DeadValueElimination struct{}

func (*DeadValueElimination) Name() string { return "Dead Value Elimination" }

func (*DeadValueElimination) Description() string {
	return "Removes instructions whose results are unused and which have no side effects"
}

func (*DeadValueElimination) Apply(program *Program) bool {
	changed := false
	for _, id := range program.FunctionIds() {
		if eliminateDeadInstructions(program.Functions[id]) {
			changed = true
		}
	}
	return changed
}

func eliminateDeadInstructions(fn *Function) bool {
	used := map[ValueId]bool{}
	blockIds := fn.ReachableBlocks()

	for _, blockId := range blockIds {
		block := fn.DFG.Block(blockId)
		for _, instId := range block.Instructions {
			markOperandsUsed(fn, instId, used)
		}
		if block.Terminator != nil {
			markTerminatorOperandsUsed(block.Terminator, used)
		}
	}

	changed := false
	for _, blockId := range blockIds {
		block := fn.DFG.Block(blockId)
		kept := make([]InstructionId, 0, len(block.Instructions))
		for _, instId := range block.Instructions {
			if hasSideEffect(fn.DFG.Instruction(instId)) || anyResultUsed(fn, instId, used) {
				kept = append(kept, instId)
			} else {
				changed = true
			}
		}
		block.Instructions = kept
	}
	return changed
}

func markOperandsUsed(fn *Function, instId InstructionId, used map[ValueId]bool) {
	switch inst := fn.DFG.Instruction(instId).(type) {
	case *CallInstruction:
		used[inst.Func] = true
		for _, a := range inst.Arguments {
			used[a] = true
		}
	case *StoreInstruction:
		used[inst.Address] = true
		used[inst.Value] = true
	case *LoadInstruction:
		used[inst.Address] = true
	case *BinaryInstruction:
		used[inst.Lhs] = true
		used[inst.Rhs] = true
	case *ConstrainInstruction:
		used[inst.Value] = true
	}
}

func markTerminatorOperandsUsed(term Terminator, used map[ValueId]bool) {
	switch t := term.(type) {
	case *ReturnTerminator:
		for _, v := range t.Values {
			used[v] = true
		}
	case *JumpTerminator:
		for _, v := range t.Args {
			used[v] = true
		}
	case *BranchTerminator:
		used[t.Condition] = true
	}
}

func hasSideEffect(inst Instruction) bool {
	switch inst.(type) {
	case *CallInstruction, *StoreInstruction, *ConstrainInstruction, *AllocateInstruction:
		return true
	default:
		return false
	}
}

func anyResultUsed(fn *Function, instId InstructionId, used map[ValueId]bool) bool {
	for _, r := range fn.DFG.InstructionResults(instId) {
		if used[r] {
			return true
		}
	}
	return len(fn.DFG.InstructionResults(instId)) == 0
}
