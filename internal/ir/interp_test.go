package ir

import "testing"

// eval is a tiny reference interpreter used only by tests, to check
// semantic equivalence by actually running the defunctionalized program and
// comparing its results with the values the original callees compute,
// instead of just inspecting its shape. It rejects any call whose target is
// not a literal function, so it cannot run a program before the pass. It
// supports exactly the instruction set this package defines and nothing
// more.
type eval struct {
	t *testing.T
	p *Program
}

func (e *eval) call(fid FunctionId, args []FieldElement) []FieldElement {
	fn, ok := e.p.Functions[fid]
	if !ok {
		e.t.Fatalf("eval: no such function %s", fid)
	}

	env := map[ValueId]FieldElement{}
	mem := map[ValueId]FieldElement{}

	entryParams := fn.DFG.Block(fn.Entry).Params
	if len(entryParams) != len(args) {
		e.t.Fatalf("eval: %s expects %d args, got %d", fn.Name, len(entryParams), len(args))
	}
	for i, p := range entryParams {
		env[p] = args[i]
	}

	block := fn.Entry
	for {
		b := fn.DFG.Block(block)
		for _, instId := range b.Instructions {
			e.exec(fn, instId, env, mem)
		}

		switch term := b.Terminator.(type) {
		case *ReturnTerminator:
			out := make([]FieldElement, len(term.Values))
			for i, v := range term.Values {
				out[i] = e.resolve(fn, v, env)
			}
			return out
		case *JumpTerminator:
			args := make([]FieldElement, len(term.Args))
			for i, v := range term.Args {
				args[i] = e.resolve(fn, v, env)
			}
			target := fn.DFG.Block(term.Target)
			for i, p := range target.Params {
				env[p] = args[i]
			}
			block = term.Target
		case *BranchTerminator:
			if e.resolve(fn, term.Condition, env).IsTrue() {
				block = term.Then
			} else {
				block = term.Else
			}
		default:
			e.t.Fatalf("eval: unterminated block %s in %s", block, fn.Name)
		}
	}
}

func (e *eval) resolve(fn *Function, id ValueId, env map[ValueId]FieldElement) FieldElement {
	if v, ok := fn.DFG.Value(id).(*NumericConstantValue); ok {
		return v.Value
	}
	if v, ok := env[id]; ok {
		return v
	}
	e.t.Fatalf("eval: unresolved value %s", id)
	return FieldElement{}
}

func (e *eval) exec(fn *Function, instId InstructionId, env, mem map[ValueId]FieldElement) {
	results := fn.DFG.InstructionResults(instId)
	switch inst := fn.DFG.Instruction(instId).(type) {
	case *BinaryInstruction:
		lhs := e.resolve(fn, inst.Lhs, env)
		rhs := e.resolve(fn, inst.Rhs, env)
		var out FieldElement
		switch inst.Op {
		case OpEq:
			if lhs.Equal(rhs) {
				out = FieldFromUint64(1)
			} else {
				out = FieldFromUint64(0)
			}
		case OpAdd:
			out = lhs.Add(rhs)
		case OpSub:
			out = lhs.Sub(rhs)
		case OpMul:
			out = lhs.Mul(rhs)
		}
		env[results[0]] = out

	case *ConstrainInstruction:
		if !e.resolve(fn, inst.Value, env).IsTrue() {
			e.t.Fatalf("eval: constrain failed in %s", fn.Name)
		}

	case *CallInstruction:
		target, ok := fn.DFG.Value(inst.Func).(*FunctionValue)
		if !ok {
			e.t.Fatalf("eval: call target %s is not a literal function after defunctionalization", inst.Func)
		}
		args := make([]FieldElement, len(inst.Arguments))
		for i, a := range inst.Arguments {
			args[i] = e.resolve(fn, a, env)
		}
		out := e.call(target.Id, args)
		for i, r := range results {
			env[r] = out[i]
		}

	case *AllocateInstruction:
		mem[results[0]] = FieldFromUint64(0)

	case *StoreInstruction:
		mem[inst.Address] = e.resolve(fn, inst.Value, env)

	case *LoadInstruction:
		env[results[0]] = mem[inst.Address]

	default:
		e.t.Fatalf("eval: unsupported instruction %T", inst)
	}
}
