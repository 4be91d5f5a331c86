// This file implements the defunctionalization pass: the whole-program
// rewrite that eliminates first-class function values from the IR so every
// downstream stage sees only direct calls with fully-resolved targets. See
// the Discovery, Apply-function synthesis, and Rewrite phases below.
package ir

import "sort"

// ApplyFunction describes the dispatch target a dynamic call signature was
// bound to: either the sole compatible callee (DispatchesToMultiple false,
// in which case callers must not prepend the dynamic target as an extra
// argument) or a synthesized cascade of equality tests over one (true).
type ApplyFunction struct {
	Id                   FunctionId
	DispatchesToMultiple bool
}

// Defunctionalize performs defunctionalization on every function in p,
// mutating it in place. It returns the runtime kind each function had
// before rewriting, a side mapping downstream passes may consult; this pass
// itself never reads it back.
func Defunctionalize(p *Program) map[FunctionId]RuntimeKind {
	variants := findVariants(p)
	applyFunctions := createApplyFunctions(p, variants)

	runtimeKinds := make(map[FunctionId]RuntimeKind, len(p.Functions))
	for id, fn := range p.Functions {
		runtimeKinds[id] = fn.Runtime
	}

	rewriter := &defunctionalizer{applyFunctions: applyFunctions}
	for _, id := range p.FunctionIds() {
		rewriter.rewriteFunction(p.Functions[id])
	}

	return runtimeKinds
}

// findVariants is the discovery scan: it collects every function
// id that flows through the program as a value, every dynamic dispatch
// signature actually observed at a call site, and groups the former by
// declared Signature so each dispatch signature can be matched against
// compatible callees via CanCall.
func findVariants(p *Program) *orderedSignatureMap[[]FunctionId] {
	seenAsValue := map[FunctionId]bool{}
	var functionsAsValues []FunctionId
	recordAsValue := func(id FunctionId) {
		if !seenAsValue[id] {
			seenAsValue[id] = true
			functionsAsValues = append(functionsAsValues, id)
		}
	}

	dynamicDispatches := newOrderedSignatureMap[struct{}]()

	for _, fid := range p.FunctionIds() {
		fn := p.Functions[fid]
		for _, blockId := range fn.ReachableBlocks() {
			for _, instId := range fn.DFG.Block(blockId).Instructions {
				switch inst := fn.DFG.Instruction(instId).(type) {
				case *CallInstruction:
					for _, arg := range inst.Arguments {
						if fv, ok := fn.DFG.Value(arg).(*FunctionValue); ok {
							recordAsValue(fv.Id)
						}
					}
					if isDynamicTarget(fn, inst.Func) {
						sig := callSignatureFromCall(fn, inst.Arguments, fn.DFG.InstructionResults(instId))
						dynamicDispatches.set(sig, struct{}{})
					}
				case *StoreInstruction:
					if fv, ok := fn.DFG.Value(inst.Value).(*FunctionValue); ok {
						recordAsValue(fv.Id)
					}
				}
			}
		}
	}

	sigToFns := map[string][]FunctionId{}
	sigByKey := map[string]Signature{}
	var sigOrder []string
	for _, fid := range functionsAsValues {
		sig := p.Functions[fid].Signature()
		k := sig.key()
		if _, ok := sigByKey[k]; !ok {
			sigByKey[k] = sig
			sigOrder = append(sigOrder, k)
		}
		sigToFns[k] = append(sigToFns[k], fid)
	}

	variants := newOrderedSignatureMap[[]FunctionId]()
	for _, entry := range dynamicDispatches.entries() {
		var callees []FunctionId
		for _, k := range sigOrder {
			if entry.Sig.CanCall(sigByKey[k]) {
				callees = append(callees, sigToFns[k]...)
			}
		}
		sort.Slice(callees, func(i, j int) bool { return callees[i] < callees[j] })
		variants.set(entry.Sig, callees)
	}
	return variants
}

// isDynamicTarget reports whether a call's target value is not a literal
// function reference, i.e. the call site needs dispatch through an apply
// function rather than a direct call.
func isDynamicTarget(fn *Function, target ValueId) bool {
	switch fn.DFG.Value(target).(type) {
	case *ParamValue, *InstructionValue:
		return true
	default:
		return false
	}
}

// createApplyFunctions is apply-function synthesis: for every
// dispatch signature with a single compatible callee, the callee itself is
// reused; with more than one, a fresh "apply" function is built to dispatch
// between them.
func createApplyFunctions(p *Program, variants *orderedSignatureMap[[]FunctionId]) *orderedSignatureMap[ApplyFunction] {
	applyFunctions := newOrderedSignatureMap[ApplyFunction]()

	for _, entry := range variants.entries() {
		callees := entry.Val
		if len(callees) == 0 {
			panic(ice("at least one variant should exist for dynamic call signature %s", entry.Sig.key()))
		}

		dispatchesToMultiple := len(callees) > 1

		var id FunctionId
		if dispatchesToMultiple {
			targetSignatures := make([]Signature, len(callees))
			for i, fid := range callees {
				targetSignatures[i] = p.Functions[fid].Signature()
			}
			id = createApplyFunction(p, commonSignature(targetSignatures), callees)
		} else {
			id = callees[0]
		}

		applyFunctions.set(entry.Sig, ApplyFunction{Id: id, DispatchesToMultiple: dispatchesToMultiple})
	}

	return applyFunctions
}

// createApplyFunction builds the linear dispatch cascade: one equality
// test per candidate, branching to a direct call on match, with the final
// candidate asserted via constrain instead of a
// conditional jump so exhaustiveness becomes a proof obligation rather than
// a runtime branch. The return chain is built incrementally: each new
// return block jumps to the previously built one, so only the first block
// built (the innermost, for the first candidate) actually returns.
func createApplyFunction(p *Program, signature Signature, functionIds []FunctionId) FunctionId {
	return p.AddFn(func(id FunctionId) *Function {
		b := NewFunctionBuilder(id, "apply", Acir)
		dispatchId := b.AddParameter(NativeFieldType())
		paramIds := make([]ValueId, len(signature.Params))
		for i, t := range signature.Params {
			paramIds[i] = b.AddParameter(t)
		}

		var previousReturnBlock *BlockId

		for index, fid := range functionIds {
			isLast := index == len(functionIds)-1

			constant := b.NumericConstant(FunctionIDToField(fid), NativeFieldType())
			condition := b.InsertBinary(dispatchId, OpEq, constant)

			var nextBlock *BlockId
			if !isLast {
				nb := b.InsertBlock()
				nextBlock = &nb
				executorBlock := b.InsertBlock()
				b.TerminateWithJmpIf(condition, executorBlock, nb)
				b.SwitchToBlock(executorBlock)
			} else {
				b.InsertConstrain(condition)
			}

			currentBlock := b.CurrentBlock()
			targetBlock := buildReturnBlock(b, currentBlock, signature.Returns, previousReturnBlock)
			previousReturnBlock = &targetBlock

			targetFunctionValue := b.ImportFunction(fid)
			callResults := b.InsertCall(targetFunctionValue, paramIds, signature.Returns)
			b.TerminateWithJmp(targetBlock, callResults)

			if nextBlock != nil {
				b.SwitchToBlock(*nextBlock)
			}
		}

		return b.Finish()
	})
}

// buildReturnBlock creates a return block, switching into it to install its
// terminator and then back to previousBlock so building can continue there.
// With no target it is the actual return; otherwise it is a forwarding hop
// to the previously built return block.
func buildReturnBlock(b *FunctionBuilder, previousBlock BlockId, returnTypes []Type, target *BlockId) BlockId {
	returnBlock := b.InsertBlock()
	b.SwitchToBlock(returnBlock)

	params := make([]ValueId, len(returnTypes))
	for i, t := range returnTypes {
		params[i] = b.AddBlockParameter(returnBlock, t)
	}

	if target == nil {
		b.TerminateWithReturn(params)
	} else {
		b.TerminateWithJmp(*target, params)
	}

	b.SwitchToBlock(previousBlock)
	return returnBlock
}

// defunctionalizer carries the apply-function map computed during synthesis
// across the per-function rewrite walk.
type defunctionalizer struct {
	applyFunctions *orderedSignatureMap[ApplyFunction]
}

// rewriteFunction walks fn once, rewriting dynamic call sites to target an
// apply function and retyping every surviving Function-typed value to
// NativeField.
func (d *defunctionalizer) rewriteFunction(fn *Function) {
	callTargetValues := map[ValueId]bool{}

	for _, blockId := range fn.ReachableBlocks() {
		// Snapshot the instruction list before mutating it.
		instructionIds := append([]InstructionId(nil), fn.DFG.Block(blockId).Instructions...)

		for _, instId := range instructionIds {
			call, ok := fn.DFG.Instruction(instId).(*CallInstruction)
			if !ok {
				continue
			}

			switch target := fn.DFG.Value(call.Func).(type) {
			case *FunctionValue:
				callTargetValues[call.Func] = true

			case *ParamValue, *InstructionValue:
				_ = target
				sig := callSignatureFromCall(fn, call.Arguments, fn.DFG.InstructionResults(instId))
				apply, ok := d.applyFunctions.get(sig)
				if !ok {
					panic(ice("no apply function registered for dynamic call signature %s", sig.key()))
				}

				newTarget := fn.DFG.ImportFunction(apply.Id)
				arguments := call.Arguments
				if apply.DispatchesToMultiple {
					arguments = append([]ValueId{call.Func}, call.Arguments...)
				}

				fn.DFG.ReplaceInstruction(instId, &CallInstruction{Func: newTarget, Arguments: arguments})
				callTargetValues[newTarget] = true
			}
		}
	}

	// Snapshot the value list before retyping: new constants minted below
	// must not be revisited by this same loop.
	for _, valueId := range fn.DFG.Values() {
		if _, isFunctionTyped := fn.DFG.TypeOf(valueId).(*FunctionType); !isFunctionTyped {
			continue
		}

		switch v := fn.DFG.Value(valueId).(type) {
		case *FunctionValue:
			if !callTargetValues[valueId] {
				replacement := fn.DFG.MakeConstant(FunctionIDToField(v.Id), NativeFieldType())
				fn.DFG.SetValueFromId(valueId, replacement)
			}
		case *ParamValue, *InstructionValue:
			fn.DFG.SetTypeOf(valueId, NativeFieldType())
		}
	}
}
