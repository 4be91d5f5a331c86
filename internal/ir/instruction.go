package ir

// Instruction is the tagged union of operations that can appear in a basic
// block body (terminators are a separate, closed set; see Terminator).
type Instruction interface {
	isInstruction()
}

// BinaryOp enumerates the operators BinaryInstruction supports. Eq is the
// only one the pass itself emits, for apply-function dispatch tests.
type BinaryOp int

const (
	OpEq BinaryOp = iota
	OpAdd
	OpSub
	OpMul
)

// CallInstruction invokes Func (either a literal function reference or a
// value flowing through the program) with Arguments. It is the single
// instruction kind this pass rewrites.
type CallInstruction struct {
	Func      ValueId
	Arguments []ValueId
}

func (*CallInstruction) isInstruction() {}

// StoreInstruction writes Value into the memory cell addressed by Address.
// Discovery treats a stored FunctionValue the same way it treats one passed
// as a call argument.
type StoreInstruction struct {
	Address ValueId
	Value   ValueId
}

func (*StoreInstruction) isInstruction() {}

// LoadInstruction reads the memory cell addressed by Address.
type LoadInstruction struct {
	Address ValueId
}

func (*LoadInstruction) isInstruction() {}

// AllocateInstruction reserves a memory cell able to hold a value of Of.
type AllocateInstruction struct {
	Of Type
}

func (*AllocateInstruction) isInstruction() {}

// BinaryInstruction applies Op to Lhs and Rhs.
type BinaryInstruction struct {
	Op       BinaryOp
	Lhs, Rhs ValueId
}

func (*BinaryInstruction) isInstruction() {}

// ConstrainInstruction asserts that Value is truthy (equal to the field
// element 1). The final branch of a synthesized apply function uses this in
// place of a conditional jump, making exhaustiveness a proof-time property.
type ConstrainInstruction struct {
	Value ValueId
}

func (*ConstrainInstruction) isInstruction() {}

// Terminator is the closed set of instructions that end a basic block.
type Terminator interface {
	Instruction
	Successors() []BlockId
}

// ReturnTerminator exits the enclosing function with Values.
type ReturnTerminator struct {
	Values []ValueId
}

func (*ReturnTerminator) isInstruction()      {}
func (*ReturnTerminator) Successors() []BlockId { return nil }

// JumpTerminator transfers control unconditionally to Target, passing Args
// as that block's parameters.
type JumpTerminator struct {
	Target BlockId
	Args   []ValueId
}

func (*JumpTerminator) isInstruction()        {}
func (j *JumpTerminator) Successors() []BlockId { return []BlockId{j.Target} }

// BranchTerminator transfers control to Then if Condition holds, else Else.
type BranchTerminator struct {
	Condition  ValueId
	Then, Else BlockId
}

func (*BranchTerminator) isInstruction() {}
func (b *BranchTerminator) Successors() []BlockId {
	return []BlockId{b.Then, b.Else}
}
