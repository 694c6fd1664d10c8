package compiler

import "github.com/mna/wisp/lang/machine"

func (p *parser) currentChunk() *machine.Chunk {
	return &p.current.function.Chunk
}

func (p *parser) emitByte(b byte) {
	p.currentChunk().Write(b, p.prevLine())
}

func (p *parser) emitOp(op machine.Opcode) { p.emitByte(byte(op)) }

func (p *parser) emitBytes(a, b byte) {
	p.emitByte(a)
	p.emitByte(b)
}

func (p *parser) emitOpByte(op machine.Opcode, b byte) {
	p.emitByte(byte(op))
	p.emitByte(b)
}

func (p *parser) prevLine() int {
	line, _ := p.prev.Pos.LineCol()
	return line
}

// emitConstant adds v to the current chunk's constant pool and emits the
// OP_CONSTANT instruction to push it, enforcing the 256-constants-per-chunk
// limit a single byte operand imposes (spec §5).
func (p *parser) emitConstant(v machine.Value) {
	idx := p.makeConstant(v)
	p.emitOpByte(machine.OpConstant, idx)
}

func (p *parser) makeConstant(v machine.Value) byte {
	if len(p.currentChunk().Constants) >= maxConstants {
		p.error("Too many constants in one chunk.")
		return 0
	}
	return byte(p.currentChunk().AddConstant(v))
}

// emitJump emits a jump instruction with a placeholder 2-byte operand and
// returns the offset of that operand, to be patched by patchJump once the
// jump target is known (spec §4.2's single-pass forward-jump patching).
func (p *parser) emitJump(op machine.Opcode) int {
	p.emitOp(op)
	p.emitByte(0xff)
	p.emitByte(0xff)
	return len(p.currentChunk().Code) - 2
}

func (p *parser) patchJump(offset int) {
	jump := len(p.currentChunk().Code) - offset - 2
	if jump > maxJump {
		p.error("Too much code to jump over.")
		return
	}
	code := p.currentChunk().Code
	code[offset] = byte(jump >> 8)
	code[offset+1] = byte(jump)
}

func (p *parser) emitLoop(loopStart int) {
	p.emitOp(machine.OpLoop)
	offset := len(p.currentChunk().Code) - loopStart + 2
	if offset > maxJump {
		p.error("Loop body too large.")
	}
	p.emitByte(byte(offset >> 8))
	p.emitByte(byte(offset))
}

// emitReturn emits the implicit return every function body ends with: an
// initializer implicitly returns `this` (slot 0), everything else nil
// (spec §4.6).
func (p *parser) emitReturn() {
	if p.current.kind == typeInitializer {
		p.emitOpByte(machine.OpGetLocal, 0)
	} else {
		p.emitOp(machine.OpNil)
	}
	p.emitOp(machine.OpReturn)
}
