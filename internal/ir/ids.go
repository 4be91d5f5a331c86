package ir

import "fmt"

// FunctionId is a dense integer identity for a function within a Program.
type FunctionId int

func (id FunctionId) String() string { return fmt.Sprintf("f%d", int(id)) }

// BlockId identifies a basic block within a single function's DFG.
type BlockId int

func (id BlockId) String() string { return fmt.Sprintf("b%d", int(id)) }

// ValueId identifies an SSA value within a single function's DFG.
type ValueId int

func (id ValueId) String() string { return fmt.Sprintf("v%d", int(id)) }

// InstructionId identifies an instruction within a single function's DFG.
type InstructionId int

func (id InstructionId) String() string { return fmt.Sprintf("i%d", int(id)) }
