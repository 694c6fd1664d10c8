package machine

import "github.com/google/uuid"

// Opcode is a single bytecode instruction (spec §4.3's closed enumeration).
// Each opcode has a fixed operand layout known to both the compiler and the
// VM dispatch loop.
type Opcode uint8

//nolint:revive
const (
	OpConstant Opcode = iota // 1-byte const index -> push value
	OpNil                    // push Nil
	OpTrue                   // push True
	OpFalse                  // push False
	OpPop                    // pop one

	OpGetLocal // 1-byte slot -> push slot
	OpSetLocal // 1-byte slot -> overwrite slot from top (peek, no pop)

	OpGetGlobal    // 1-byte const (name) -> push value; fail if undefined
	OpDefineGlobal // 1-byte const -> pop value into table
	OpSetGlobal    // 1-byte const -> peek to assign; fail if undefined

	OpGetUpvalue // 1-byte upvalue index -> push
	OpSetUpvalue // 1-byte upvalue index -> peek-assign

	OpGetProperty // 1-byte const (field name)
	OpSetProperty // 1-byte const (field name)
	OpGetSuper    // 1-byte const (method name)

	OpEqual
	OpGreater
	OpLess

	OpAdd
	OpSubtract
	OpMultiply
	OpDivide

	OpNot
	OpNegate

	OpPrint

	OpJump        // 2-byte forward offset
	OpJumpIfFalse // 2-byte forward offset, peeks, does not pop
	OpLoop        // 2-byte backward offset

	OpCall // 1-byte argc

	OpInvoke      // 1-byte const (name), 1-byte argc
	OpSuperInvoke // 1-byte const (name), 1-byte argc

	OpClosure      // 1-byte const (fn) + N*(1 is-local, 1 index)
	OpCloseUpvalue // close top of stack, pop

	OpClass   // 1-byte const (name)
	OpInherit // copy methods from super (peek(1)) to sub (peek(0)); pop sub
	OpMethod  // 1-byte const (name)

	OpReturn
)

// Chunk is an append-only sequence of bytecode plus a parallel line-number
// table and a constant pool (spec §3). Constants are appended only; their
// indices are stable once assigned.
type Chunk struct {
	Code      []byte
	Lines     []int // one entry per code byte
	Constants []Value

	// BuildID stamps this chunk with a build identifier the way a real
	// toolchain stamps compiled artifacts, so `disassemble` output can be
	// traced back to a specific compilation even across repeated runs of
	// the same source. Set once by Stamp, never reassigned after.
	BuildID uuid.UUID
}

// Stamp assigns a fresh build identifier to the chunk if it doesn't already
// have one. The compiler calls this once per function as it finishes
// compiling it.
func (c *Chunk) Stamp() {
	if c.BuildID == uuid.Nil {
		c.BuildID = uuid.New()
	}
}

// Write appends a single bytecode byte, recording the source line it came
// from.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// AddConstant appends v to the constant pool and returns its stable index.
func (c *Chunk) AddConstant(v Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}
