package asm

import (
	"fmt"

	"zkssa/internal/ir"
)

// Build resolves a parsed Program into an ir.Program, binding every name
// (function, block, value) to the handle it names. Functions may reference
// each other, and blocks within a function may reference each other,
// regardless of declaration order. A value name is visible only inside the
// block that binds it, and only after the point where it is bound.
func Build(prog *Program) (*ir.Program, error) {
	funcIds := make(map[string]ir.FunctionId, len(prog.Functions))
	for i, fn := range prog.Functions {
		funcIds[fn.Name] = ir.FunctionId(i)
	}

	out := ir.NewProgram()
	for _, fn := range prog.Functions {
		var buildErr error
		out.AddFn(func(id ir.FunctionId) *ir.Function {
			built, err := buildFunction(id, fn, funcIds)
			if err != nil {
				buildErr = err
				return ir.NewFunctionBuilder(id, fn.Name, ir.Acir).Finish()
			}
			return built
		})
		if buildErr != nil {
			return nil, buildErr
		}
	}
	return out, nil
}

func buildFunction(id ir.FunctionId, fn *Function, funcIds map[string]ir.FunctionId) (*ir.Function, error) {
	if len(fn.Blocks) == 0 || fn.Blocks[0].Name != "entry" {
		return nil, fmt.Errorf("function %s: first block must be named entry", fn.Name)
	}

	b := ir.NewFunctionBuilder(id, fn.Name, ir.Acir)

	blockIds := map[string]ir.BlockId{"entry": b.CurrentBlock()}
	for _, block := range fn.Blocks[1:] {
		blockIds[block.Name] = b.InsertBlock()
	}

	for _, block := range fn.Blocks {
		blockId := blockIds[block.Name]
		b.SwitchToBlock(blockId)

		env := map[string]ir.ValueId{}
		for _, p := range block.Params {
			t, err := resolveType(p.Type)
			if err != nil {
				return nil, fmt.Errorf("function %s, block %s: %w", fn.Name, block.Name, err)
			}
			env[p.Name] = b.AddBlockParameter(blockId, t)
		}

		for _, inst := range block.Instructions {
			if err := buildInstruction(b, inst, env, funcIds); err != nil {
				return nil, fmt.Errorf("function %s, block %s: %w", fn.Name, block.Name, err)
			}
		}

		if err := buildTerminator(b, block.Terminator, env, blockIds); err != nil {
			return nil, fmt.Errorf("function %s, block %s: %w", fn.Name, block.Name, err)
		}
	}

	return b.Finish(), nil
}

func buildInstruction(b *ir.FunctionBuilder, inst *Instruction, env map[string]ir.ValueId, funcIds map[string]ir.FunctionId) error {
	bind := func(v ir.ValueId) {
		if inst.Result != nil {
			env[*inst.Result] = v
		}
	}

	switch {
	case inst.Binary != nil:
		lhs, err := lookup(env, inst.Binary.Lhs)
		if err != nil {
			return err
		}
		rhs, err := lookup(env, inst.Binary.Rhs)
		if err != nil {
			return err
		}
		bind(b.InsertBinary(lhs, binaryOp(inst.Binary.Op), rhs))

	case inst.Call != nil:
		target, err := lookup(env, inst.Call.Target)
		if err != nil {
			return err
		}
		args := make([]ir.ValueId, len(inst.Call.Args))
		for i, a := range inst.Call.Args {
			v, err := lookup(env, a)
			if err != nil {
				return err
			}
			args[i] = v
		}
		resultTypes, err := resolveTypes(inst.Call.Returns)
		if err != nil {
			return err
		}
		results := b.InsertCall(target, args, resultTypes)
		if inst.Result != nil && len(results) > 0 {
			env[*inst.Result] = results[0]
		}

	case inst.Load != nil:
		addr, err := lookup(env, inst.Load.Address)
		if err != nil {
			return err
		}
		t, err := resolveType(inst.Load.Type)
		if err != nil {
			return err
		}
		bind(b.InsertLoad(addr, t))

	case inst.Store != nil:
		value, err := lookup(env, inst.Store.Value)
		if err != nil {
			return err
		}
		addr, err := lookup(env, inst.Store.Address)
		if err != nil {
			return err
		}
		b.InsertStore(addr, value)

	case inst.Allocate != nil:
		t, err := resolveType(inst.Allocate.Of)
		if err != nil {
			return err
		}
		bind(b.InsertAllocate(t))

	case inst.Constrain != nil:
		v, err := lookup(env, inst.Constrain.Value)
		if err != nil {
			return err
		}
		b.InsertConstrain(v)

	case inst.Const != nil:
		t, err := resolveType(inst.Const.Type)
		if err != nil {
			return err
		}
		var n uint64
		if _, err := fmt.Sscanf(inst.Const.Value, "%d", &n); err != nil {
			return fmt.Errorf("invalid integer literal %q: %w", inst.Const.Value, err)
		}
		bind(b.NumericConstant(ir.FieldFromUint64(n), t))

	case inst.Fnref != nil:
		target, ok := funcIds[inst.Fnref.Name]
		if !ok {
			return fmt.Errorf("fnref to undeclared function %q", inst.Fnref.Name)
		}
		bind(b.ImportFunction(target))

	default:
		return fmt.Errorf("empty instruction")
	}
	return nil
}

func buildTerminator(b *ir.FunctionBuilder, term *Terminator, env map[string]ir.ValueId, blockIds map[string]ir.BlockId) error {
	switch {
	case term.Return != nil:
		values, err := lookupAll(env, term.Return.Values)
		if err != nil {
			return err
		}
		b.TerminateWithReturn(values)

	case term.Jmp != nil:
		target, ok := blockIds[term.Jmp.Target]
		if !ok {
			return fmt.Errorf("jmp to undeclared block %q", term.Jmp.Target)
		}
		args, err := lookupAll(env, term.Jmp.Args)
		if err != nil {
			return err
		}
		b.TerminateWithJmp(target, args)

	case term.JmpIf != nil:
		cond, err := lookup(env, term.JmpIf.Condition)
		if err != nil {
			return err
		}
		then, ok := blockIds[term.JmpIf.Then]
		if !ok {
			return fmt.Errorf("jmpif then-target %q undeclared", term.JmpIf.Then)
		}
		els, ok := blockIds[term.JmpIf.Else]
		if !ok {
			return fmt.Errorf("jmpif else-target %q undeclared", term.JmpIf.Else)
		}
		b.TerminateWithJmpIf(cond, then, els)

	default:
		return fmt.Errorf("block has no terminator")
	}
	return nil
}

func lookup(env map[string]ir.ValueId, name string) (ir.ValueId, error) {
	v, ok := env[name]
	if !ok {
		return 0, fmt.Errorf("undeclared value %q", name)
	}
	return v, nil
}

func lookupAll(env map[string]ir.ValueId, names []string) ([]ir.ValueId, error) {
	out := make([]ir.ValueId, len(names))
	for i, n := range names {
		v, err := lookup(env, n)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func binaryOp(op string) ir.BinaryOp {
	switch op {
	case "add":
		return ir.OpAdd
	case "sub":
		return ir.OpSub
	case "mul":
		return ir.OpMul
	default:
		return ir.OpEq
	}
}

func resolveType(t *Type) (ir.Type, error) {
	switch t.Name {
	case "bool":
		return &ir.NumericType{Kind: ir.KindBool}, nil
	case "u8":
		return &ir.NumericType{Kind: ir.KindU8}, nil
	case "u16":
		return &ir.NumericType{Kind: ir.KindU16}, nil
	case "u32":
		return &ir.NumericType{Kind: ir.KindU32}, nil
	case "u64":
		return &ir.NumericType{Kind: ir.KindU64}, nil
	case "u128":
		return &ir.NumericType{Kind: ir.KindU128}, nil
	case "field":
		return ir.NativeFieldType(), nil
	case "function":
		return &ir.FunctionType{}, nil
	default:
		return nil, fmt.Errorf("unknown type %q", t.Name)
	}
}

func resolveTypes(types []*Type) ([]ir.Type, error) {
	out := make([]ir.Type, len(types))
	for i, t := range types {
		rt, err := resolveType(t)
		if err != nil {
			return nil, err
		}
		out[i] = rt
	}
	return out, nil
}
