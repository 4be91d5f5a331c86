package ir

// DataFlowGraph is the arena owning every value, instruction, and block that
// belongs to a single function. All references into it are small integer
// handles (ValueId, InstructionId, BlockId) rather than pointers, so adding
// to the arena never invalidates a handle held elsewhere.
type DataFlowGraph struct {
	values              map[ValueId]Value
	types               map[ValueId]Type
	nextValueId         ValueId
	instructions        map[InstructionId]Instruction
	instructionResults  map[InstructionId][]ValueId
	nextInstructionId   InstructionId
	blocks              map[BlockId]*BasicBlock
	nextBlockId         BlockId
}

// NewDataFlowGraph returns an empty arena.
func NewDataFlowGraph() *DataFlowGraph {
	return &DataFlowGraph{
		values:             make(map[ValueId]Value),
		types:              make(map[ValueId]Type),
		instructions:       make(map[InstructionId]Instruction),
		instructionResults: make(map[InstructionId][]ValueId),
		blocks:             make(map[BlockId]*BasicBlock),
	}
}

// Value returns the value stored at id.
func (d *DataFlowGraph) Value(id ValueId) Value { return d.values[id] }

// TypeOf returns the declared type of the value at id.
func (d *DataFlowGraph) TypeOf(id ValueId) Type { return d.types[id] }

// SetTypeOf overwrites the declared type of the value at id in place,
// without otherwise touching what the value is. Used to retype surviving
// Param/Instruction values from Function to NativeField.
func (d *DataFlowGraph) SetTypeOf(id ValueId, t Type) { d.types[id] = t }

// SetValueFromId rewrites every use of old to behave as if it referred to
// new: the content at old's slot is replaced by a copy of new's content, so
// existing operand lists (which only ever store the id, not the value) see
// the replacement without being walked and edited individually.
func (d *DataFlowGraph) SetValueFromId(old, new ValueId) {
	d.values[old] = d.values[new]
	d.types[old] = d.types[new]
}

// newValue allocates a fresh ValueId for v typed as t.
func (d *DataFlowGraph) newValue(v Value, t Type) ValueId {
	id := d.nextValueId
	d.nextValueId++
	d.values[id] = v
	d.types[id] = t
	return id
}

// MakeConstant materializes a numeric constant value.
func (d *DataFlowGraph) MakeConstant(field FieldElement, t Type) ValueId {
	return d.newValue(&NumericConstantValue{Value: field, Typ: t}, t)
}

// ImportFunction materializes a reference to fid as a value in this DFG. The
// pass calls this once per rewritten call site to bring a synthesized apply
// function (or any other function) into the caller's own arena.
func (d *DataFlowGraph) ImportFunction(fid FunctionId) ValueId {
	return d.newValue(&FunctionValue{Id: fid}, &FunctionType{})
}

// Values returns every value id currently allocated, in allocation order.
// The slice is a snapshot: callers may mutate the DFG (e.g. via
// SetValueFromId or SetTypeOf) while iterating it without disturbing the
// traversal.
func (d *DataFlowGraph) Values() []ValueId {
	ids := make([]ValueId, int(d.nextValueId))
	for i := range ids {
		ids[i] = ValueId(i)
	}
	return ids
}

// AddInstruction allocates inst and its results (typed by resultTypes),
// returning the new instruction id and its result value ids.
func (d *DataFlowGraph) AddInstruction(inst Instruction, resultTypes []Type) (InstructionId, []ValueId) {
	id := d.nextInstructionId
	d.nextInstructionId++
	d.instructions[id] = inst

	results := make([]ValueId, len(resultTypes))
	for i, t := range resultTypes {
		results[i] = d.newValue(&InstructionValue{Inst: id, Index: i}, t)
	}
	d.instructionResults[id] = results
	return id, results
}

// Instruction returns the instruction stored at id.
func (d *DataFlowGraph) Instruction(id InstructionId) Instruction { return d.instructions[id] }

// ReplaceInstruction overwrites the instruction at id in place. The result
// values and their ids are left untouched; only the operation changes.
func (d *DataFlowGraph) ReplaceInstruction(id InstructionId, inst Instruction) {
	d.instructions[id] = inst
}

// InstructionResults returns the result value ids produced by id.
func (d *DataFlowGraph) InstructionResults(id InstructionId) []ValueId {
	return d.instructionResults[id]
}

// AddBlock allocates a new, empty basic block.
func (d *DataFlowGraph) AddBlock() BlockId {
	id := d.nextBlockId
	d.nextBlockId++
	d.blocks[id] = &BasicBlock{Id: id}
	return id
}

// Block returns the block stored at id.
func (d *DataFlowGraph) Block(id BlockId) *BasicBlock { return d.blocks[id] }

// AddBlockParam appends a new parameter of type t to block, returning its
// value id.
func (d *DataFlowGraph) AddBlockParam(block BlockId, t Type) ValueId {
	index := len(d.blocks[block].Params)
	id := d.newValue(&ParamValue{Block: block, Index: index}, t)
	d.blocks[block].Params = append(d.blocks[block].Params, id)
	return id
}

// AppendInstruction appends an already-created instruction id to block's
// instruction list.
func (d *DataFlowGraph) AppendInstruction(block BlockId, inst InstructionId) {
	d.blocks[block].Instructions = append(d.blocks[block].Instructions, inst)
}

// SetTerminator assigns block's terminator.
func (d *DataFlowGraph) SetTerminator(block BlockId, term Terminator) {
	d.blocks[block].Terminator = term
}
