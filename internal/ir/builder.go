package ir

// FunctionBuilder assembles a single Function block by block. It is the
// only way new functions are constructed, whether by the front end feeding
// this pass or by the pass itself when synthesizing an apply function (see
// defunctionalize.go's createApplyFunction).
type FunctionBuilder struct {
	function     *Function
	currentBlock BlockId
}

// NewFunctionBuilder starts building a function with the given id, name and
// runtime kind. The function's entry block is created and selected as the
// current block.
func NewFunctionBuilder(id FunctionId, name string, runtime RuntimeKind) *FunctionBuilder {
	dfg := NewDataFlowGraph()
	entry := dfg.AddBlock()
	fn := &Function{
		Id:      id,
		Name:    name,
		Runtime: runtime,
		DFG:     dfg,
		Entry:   entry,
		order:   []BlockId{entry},
	}
	return &FunctionBuilder{function: fn, currentBlock: entry}
}

// AddParameter appends a new entry-block parameter of type t.
func (b *FunctionBuilder) AddParameter(t Type) ValueId {
	return b.function.DFG.AddBlockParam(b.function.Entry, t)
}

// NumericConstant materializes a constant value in the function being built.
func (b *FunctionBuilder) NumericConstant(field FieldElement, t Type) ValueId {
	return b.function.DFG.MakeConstant(field, t)
}

// ImportFunction materializes a reference to fid in the function being
// built, returning its value id.
func (b *FunctionBuilder) ImportFunction(fid FunctionId) ValueId {
	return b.function.DFG.ImportFunction(fid)
}

// InsertBinary appends a binary instruction to the current block and
// returns its single result. Eq produces a Bool; the arithmetic ops produce
// a value of lhs's type.
func (b *FunctionBuilder) InsertBinary(lhs ValueId, op BinaryOp, rhs ValueId) ValueId {
	resultType := Type(&NumericType{Kind: KindBool})
	if op != OpEq {
		resultType = b.function.DFG.TypeOf(lhs)
	}
	id, results := b.function.DFG.AddInstruction(&BinaryInstruction{Op: op, Lhs: lhs, Rhs: rhs}, []Type{resultType})
	b.function.DFG.AppendInstruction(b.currentBlock, id)
	return results[0]
}

// InsertCall appends a call to target with arguments, declaring resultTypes
// for its results, and returns the result value ids.
func (b *FunctionBuilder) InsertCall(target ValueId, arguments []ValueId, resultTypes []Type) []ValueId {
	id, results := b.function.DFG.AddInstruction(&CallInstruction{Func: target, Arguments: arguments}, resultTypes)
	b.function.DFG.AppendInstruction(b.currentBlock, id)
	return results
}

// InsertStore appends a store of value into the cell addressed by address.
func (b *FunctionBuilder) InsertStore(address, value ValueId) {
	id, _ := b.function.DFG.AddInstruction(&StoreInstruction{Address: address, Value: value}, nil)
	b.function.DFG.AppendInstruction(b.currentBlock, id)
}

// InsertLoad appends a load of the cell addressed by address, typed t.
func (b *FunctionBuilder) InsertLoad(address ValueId, t Type) ValueId {
	id, results := b.function.DFG.AddInstruction(&LoadInstruction{Address: address}, []Type{t})
	b.function.DFG.AppendInstruction(b.currentBlock, id)
	return results[0]
}

// InsertAllocate appends an allocation for a value of type of, returning a
// reference to the new cell.
func (b *FunctionBuilder) InsertAllocate(of Type) ValueId {
	id, results := b.function.DFG.AddInstruction(&AllocateInstruction{Of: of}, []Type{&ReferenceType{Of: of}})
	b.function.DFG.AppendInstruction(b.currentBlock, id)
	return results[0]
}

// InsertConstrain appends an assertion that value is truthy.
func (b *FunctionBuilder) InsertConstrain(value ValueId) {
	id, _ := b.function.DFG.AddInstruction(&ConstrainInstruction{Value: value}, nil)
	b.function.DFG.AppendInstruction(b.currentBlock, id)
}

// InsertBlock creates a new, unselected basic block.
func (b *FunctionBuilder) InsertBlock() BlockId {
	id := b.function.DFG.AddBlock()
	b.function.order = append(b.function.order, id)
	return id
}

// AddBlockParameter appends a parameter of type t to block.
func (b *FunctionBuilder) AddBlockParameter(block BlockId, t Type) ValueId {
	return b.function.DFG.AddBlockParam(block, t)
}

// CurrentBlock returns the block new instructions are being appended to.
func (b *FunctionBuilder) CurrentBlock() BlockId { return b.currentBlock }

// SwitchToBlock selects block as the target of subsequent Insert* calls.
func (b *FunctionBuilder) SwitchToBlock(block BlockId) { b.currentBlock = block }

// TerminateWithJmp closes the current block with an unconditional jump to
// target, forwarding args as its block parameters.
func (b *FunctionBuilder) TerminateWithJmp(target BlockId, args []ValueId) {
	b.function.DFG.SetTerminator(b.currentBlock, &JumpTerminator{Target: target, Args: args})
}

// TerminateWithJmpIf closes the current block with a conditional branch.
func (b *FunctionBuilder) TerminateWithJmpIf(condition ValueId, then, els BlockId) {
	b.function.DFG.SetTerminator(b.currentBlock, &BranchTerminator{Condition: condition, Then: then, Else: els})
}

// TerminateWithReturn closes the current block by returning values.
func (b *FunctionBuilder) TerminateWithReturn(values []ValueId) {
	b.function.DFG.SetTerminator(b.currentBlock, &ReturnTerminator{Values: values})
}

// Finish returns the function assembled so far. Every block must have a
// terminator by this point; the builder does not check this itself, mirroring
// the front end's responsibility to only ever hand this pass well-formed IR.
func (b *FunctionBuilder) Finish() *Function { return b.function }
