package ir

// BasicBlock is an ordered sequence of instructions with no internal
// branches, closed by a single Terminator. Params are the block's formal
// parameters, each backed by a ParamValue in the owning DFG.
type BasicBlock struct {
	Id           BlockId
	Params       []ValueId
	Instructions []InstructionId
	Terminator   Terminator
}
