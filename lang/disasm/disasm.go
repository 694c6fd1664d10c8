// Package disasm renders a compiled chunk as human-readable text, one line
// per instruction. The exact textual format is not part of any contract
// (spec §1): it exists for the `disassemble` driver command and for
// debugging, not for machine consumption.
package disasm

import (
	"fmt"
	"strings"

	"github.com/mna/wisp/lang/machine"
)

// Chunk renders every instruction in c, labelled name.
func Chunk(c *machine.Chunk, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s (build %s) ==\n", name, c.BuildID)
	for offset := 0; offset < len(c.Code); {
		line, next := Instruction(c, offset)
		b.WriteString(line)
		b.WriteByte('\n')
		offset = next
	}
	return b.String()
}

// Instruction renders the single instruction starting at offset and
// returns the offset of the next instruction.
func Instruction(c *machine.Chunk, offset int) (string, int) {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d ", offset)
	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		b.WriteString("   | ")
	} else {
		fmt.Fprintf(&b, "%4d ", c.Lines[offset])
	}

	op := machine.Opcode(c.Code[offset])
	switch op {
	case machine.OpConstant, machine.OpGetGlobal, machine.OpDefineGlobal,
		machine.OpSetGlobal, machine.OpGetProperty, machine.OpSetProperty,
		machine.OpGetSuper, machine.OpClass, machine.OpMethod:
		return constantInstr(&b, opName(op), c, offset)

	case machine.OpGetLocal, machine.OpSetLocal, machine.OpGetUpvalue,
		machine.OpSetUpvalue, machine.OpCall:
		return byteInstr(&b, opName(op), c, offset)

	case machine.OpJump, machine.OpJumpIfFalse:
		return jumpInstr(&b, opName(op), 1, c, offset)
	case machine.OpLoop:
		return jumpInstr(&b, opName(op), -1, c, offset)

	case machine.OpInvoke, machine.OpSuperInvoke:
		return invokeInstr(&b, opName(op), c, offset)

	case machine.OpClosure:
		return closureInstr(&b, c, offset)

	default:
		b.WriteString(opName(op))
		return b.String(), offset + 1
	}
}

func constantInstr(b *strings.Builder, name string, c *machine.Chunk, offset int) (string, int) {
	idx := c.Code[offset+1]
	fmt.Fprintf(b, "%-16s %4d '%s'", name, idx, c.Constants[idx].String())
	return b.String(), offset + 2
}

func byteInstr(b *strings.Builder, name string, c *machine.Chunk, offset int) (string, int) {
	slot := c.Code[offset+1]
	fmt.Fprintf(b, "%-16s %4d", name, slot)
	return b.String(), offset + 2
}

func jumpInstr(b *strings.Builder, name string, sign int, c *machine.Chunk, offset int) (string, int) {
	jump := int(c.Code[offset+1])<<8 | int(c.Code[offset+2])
	fmt.Fprintf(b, "%-16s %4d -> %d", name, offset, offset+3+sign*jump)
	return b.String(), offset + 3
}

func invokeInstr(b *strings.Builder, name string, c *machine.Chunk, offset int) (string, int) {
	idx := c.Code[offset+1]
	argCount := c.Code[offset+2]
	fmt.Fprintf(b, "%-16s (%d args) %4d '%s'", name, argCount, idx, c.Constants[idx].String())
	return b.String(), offset + 3
}

func closureInstr(b *strings.Builder, c *machine.Chunk, offset int) (string, int) {
	idx := c.Code[offset+1]
	fmt.Fprintf(b, "%-16s %4d '%s'", opName(machine.OpClosure), idx, c.Constants[idx].String())
	next := offset + 2

	if fn, ok := c.Constants[idx].(*machine.ObjFunction); ok {
		for i := 0; i < fn.UpvalueCount; i++ {
			isLocal := c.Code[next]
			index := c.Code[next+1]
			kind := "upvalue"
			if isLocal != 0 {
				kind = "local"
			}
			fmt.Fprintf(b, "\n%04d      |                     %s %d", next, kind, index)
			next += 2
		}
	}
	return b.String(), next
}

func opName(op machine.Opcode) string {
	if n, ok := opNames[op]; ok {
		return n
	}
	return fmt.Sprintf("OP_UNKNOWN(%d)", op)
}

var opNames = map[machine.Opcode]string{
	machine.OpConstant:      "OP_CONSTANT",
	machine.OpNil:           "OP_NIL",
	machine.OpTrue:          "OP_TRUE",
	machine.OpFalse:         "OP_FALSE",
	machine.OpPop:           "OP_POP",
	machine.OpGetLocal:      "OP_GET_LOCAL",
	machine.OpSetLocal:      "OP_SET_LOCAL",
	machine.OpGetGlobal:     "OP_GET_GLOBAL",
	machine.OpDefineGlobal:  "OP_DEFINE_GLOBAL",
	machine.OpSetGlobal:     "OP_SET_GLOBAL",
	machine.OpGetUpvalue:    "OP_GET_UPVALUE",
	machine.OpSetUpvalue:    "OP_SET_UPVALUE",
	machine.OpGetProperty:   "OP_GET_PROPERTY",
	machine.OpSetProperty:   "OP_SET_PROPERTY",
	machine.OpGetSuper:      "OP_GET_SUPER",
	machine.OpEqual:         "OP_EQUAL",
	machine.OpGreater:       "OP_GREATER",
	machine.OpLess:          "OP_LESS",
	machine.OpAdd:           "OP_ADD",
	machine.OpSubtract:      "OP_SUBTRACT",
	machine.OpMultiply:      "OP_MULTIPLY",
	machine.OpDivide:        "OP_DIVIDE",
	machine.OpNot:           "OP_NOT",
	machine.OpNegate:        "OP_NEGATE",
	machine.OpPrint:         "OP_PRINT",
	machine.OpJump:          "OP_JUMP",
	machine.OpJumpIfFalse:   "OP_JUMP_IF_FALSE",
	machine.OpLoop:          "OP_LOOP",
	machine.OpCall:          "OP_CALL",
	machine.OpInvoke:        "OP_INVOKE",
	machine.OpSuperInvoke:   "OP_SUPER_INVOKE",
	machine.OpClosure:       "OP_CLOSURE",
	machine.OpCloseUpvalue:  "OP_CLOSE_UPVALUE",
	machine.OpClass:         "OP_CLASS",
	machine.OpInherit:       "OP_INHERIT",
	machine.OpMethod:        "OP_METHOD",
	machine.OpReturn:        "OP_RETURN",
}
