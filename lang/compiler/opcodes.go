package compiler

import "github.com/mna/wisp/lang/machine"

// Unqualified aliases for the opcodes statement-compiling code reaches for
// constantly, to keep those functions readable.
const (
	opPop          = machine.OpPop
	opNil          = machine.OpNil
	opPrint        = machine.OpPrint
	opJump         = machine.OpJump
	opJumpIfFalse  = machine.OpJumpIfFalse
	opClass        = machine.OpClass
	opInherit      = machine.OpInherit
	opMethod       = machine.OpMethod
	opReturn       = machine.OpReturn
)
