package compiler

import (
	"github.com/mna/wisp/lang/machine"
	"github.com/mna/wisp/lang/token"
)

// identifierConstant interns lit and returns its constant-pool
// index, the representation globals and property names use (spec §4.3).
func (p *parser) identifierConstant(lit string) byte {
	return p.makeConstant(p.gc.NewString(lit))
}

// parseVariable consumes an identifier, declares it (as a local, if inside
// a scope), and returns the constant index to use for OP_DEFINE_GLOBAL --
// which is only meaningful for a global; local declarations ignore it.
func (p *parser) parseVariable(errMsg string) byte {
	p.consume(token.IDENT, errMsg)
	p.declareVariable(p.prev.Lit)
	if p.current.scopeDepth > 0 {
		return 0
	}
	return p.identifierConstant(p.prev.Lit)
}

func (p *parser) defineVariable(global byte) {
	if p.current.scopeDepth > 0 {
		p.markInitialized()
		return
	}
	p.emitOpByte(machine.OpDefineGlobal, global)
}

// namedVariable compiles a read or, if canAssign and an '=' follows, a
// write of the variable named lit, resolving it as local, upvalue, or
// global in that order (spec §4.3's three-tier resolution).
func (p *parser) namedVariable(lit string, canAssign bool) {
	var getOp, setOp machine.Opcode
	var arg byte

	if i := p.resolveLocalChecked(p.current, lit); i != -1 {
		getOp, setOp, arg = machine.OpGetLocal, machine.OpSetLocal, byte(i)
	} else if i := p.resolveUpvalue(p.current, lit); i != -1 {
		getOp, setOp, arg = machine.OpGetUpvalue, machine.OpSetUpvalue, byte(i)
	} else {
		arg = p.identifierConstant(lit)
		getOp, setOp = machine.OpGetGlobal, machine.OpSetGlobal
	}

	if canAssign && p.match(token.EQ) {
		p.expression()
		p.emitOpByte(setOp, arg)
	} else {
		p.emitOpByte(getOp, arg)
	}
}
