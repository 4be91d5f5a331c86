package ir

// Value is the tagged union of everything an SSA value can be. Only a subset
// of variants matters to defunctionalization; the rest exist so the DFG has
// somewhere to put every operand a real program needs.
type Value interface {
	isValue()
}

// FunctionValue is a literal reference to a function. It is the subject of
// this pass: every FunctionValue that is not the direct target of a call
// instruction is rewritten to a NumericConstant carrying its field encoding.
type FunctionValue struct {
	Id FunctionId
}

func (*FunctionValue) isValue() {}

// ParamValue is a block parameter, identified by the block that declares it
// and its position in that block's parameter list.
type ParamValue struct {
	Block BlockId
	Index int
}

func (*ParamValue) isValue() {}

// InstructionValue is the Index-th result produced by an instruction.
type InstructionValue struct {
	Inst  InstructionId
	Index int
}

func (*InstructionValue) isValue() {}

// NumericConstantValue is a compile-time scalar, typed by Typ. Function ids
// are materialized into this variant once defunctionalization has stripped
// their Function type away.
type NumericConstantValue struct {
	Value FieldElement
	Typ   Type
}

func (*NumericConstantValue) isValue() {}
