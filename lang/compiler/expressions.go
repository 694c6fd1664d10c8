package compiler

import (
	"strconv"

	"github.com/mna/wisp/lang/machine"
	"github.com/mna/wisp/lang/token"
)

func (p *parser) expression() { p.parsePrecedence(precAssignment) }

// parsePrecedence is the heart of the Pratt parser: it compiles a prefix
// expression, then keeps folding in infix operators as long as the next
// token binds at least as tightly as minPrec (spec §4.2).
func (p *parser) parsePrecedence(minPrec precedence) {
	p.advance()
	prefix := getRule(p.prev.Token).prefix
	if prefix == nil {
		p.error("Expect expression.")
		return
	}
	canAssign := minPrec <= precAssignment
	prefix(p, canAssign)

	for minPrec <= getRule(p.cur.Token).prec {
		p.advance()
		infix := getRule(p.prev.Token).infix
		infix(p, canAssign)
	}

	if canAssign && p.match(token.EQ) {
		p.error("Invalid assignment target.")
	}
}

func (p *parser) number(_ bool) {
	v, _ := strconv.ParseFloat(p.prev.Lit, 64)
	p.emitConstant(machine.Number(v))
}

func (p *parser) string(_ bool) {
	p.emitConstant(p.gc.NewString(p.prev.Lit))
}

func (p *parser) literal(_ bool) {
	switch p.prev.Token {
	case token.FALSE:
		p.emitOp(machine.OpFalse)
	case token.NIL:
		p.emitOp(machine.OpNil)
	case token.TRUE:
		p.emitOp(machine.OpTrue)
	}
}

func (p *parser) grouping(_ bool) {
	p.expression()
	p.consume(token.RPAREN, "Expect ')' after expression.")
}

func (p *parser) unary(_ bool) {
	opType := p.prev.Token
	p.parsePrecedence(precUnary)
	switch opType {
	case token.BANG:
		p.emitOp(machine.OpNot)
	case token.MINUS:
		p.emitOp(machine.OpNegate)
	}
}

func (p *parser) binary(_ bool) {
	opType := p.prev.Token
	r := getRule(opType)
	p.parsePrecedence(r.prec + 1)

	switch opType {
	case token.BANG_EQ:
		p.emitBytes(byte(machine.OpEqual), byte(machine.OpNot))
	case token.EQ_EQ:
		p.emitOp(machine.OpEqual)
	case token.GT:
		p.emitOp(machine.OpGreater)
	case token.GT_EQ:
		p.emitBytes(byte(machine.OpLess), byte(machine.OpNot))
	case token.LT:
		p.emitOp(machine.OpLess)
	case token.LT_EQ:
		p.emitBytes(byte(machine.OpGreater), byte(machine.OpNot))
	case token.PLUS:
		p.emitOp(machine.OpAdd)
	case token.MINUS:
		p.emitOp(machine.OpSubtract)
	case token.STAR:
		p.emitOp(machine.OpMultiply)
	case token.SLASH:
		p.emitOp(machine.OpDivide)
	}
}

func (p *parser) and_(_ bool) {
	endJump := p.emitJump(machine.OpJumpIfFalse)
	p.emitOp(machine.OpPop)
	p.parsePrecedence(precAnd)
	p.patchJump(endJump)
}

func (p *parser) or_(_ bool) {
	elseJump := p.emitJump(machine.OpJumpIfFalse)
	endJump := p.emitJump(machine.OpJump)
	p.patchJump(elseJump)
	p.emitOp(machine.OpPop)
	p.parsePrecedence(precOr)
	p.patchJump(endJump)
}

func (p *parser) variable(canAssign bool) {
	p.namedVariable(p.prev.Lit, canAssign)
}

func (p *parser) this_(_ bool) {
	if p.class == nil {
		p.error("Can't use 'this' outside of a class.")
		return
	}
	p.namedVariable("this", false)
}

func (p *parser) super_(_ bool) {
	switch {
	case p.class == nil:
		p.error("Can't use 'super' outside of a class.")
	case !p.class.hasSuperclass:
		p.error("Can't use 'super' in a class with no superclass.")
	}
	p.consume(token.DOT, "Expect '.' after 'super'.")
	p.consume(token.IDENT, "Expect superclass method name.")
	name := p.identifierConstant(p.prev.Lit)

	p.namedVariable("this", false)
	if p.match(token.LPAREN) {
		argCount := p.argumentList()
		p.namedVariable("super", false)
		p.emitOpByte(machine.OpSuperInvoke, name)
		p.emitByte(byte(argCount))
	} else {
		p.namedVariable("super", false)
		p.emitOpByte(machine.OpGetSuper, name)
	}
}

func (p *parser) dot(canAssign bool) {
	p.consume(token.IDENT, "Expect property name after '.'.")
	name := p.identifierConstant(p.prev.Lit)

	switch {
	case canAssign && p.match(token.EQ):
		p.expression()
		p.emitOpByte(machine.OpSetProperty, name)
	case p.match(token.LPAREN):
		argCount := p.argumentList()
		p.emitOpByte(machine.OpInvoke, name)
		p.emitByte(byte(argCount))
	default:
		p.emitOpByte(machine.OpGetProperty, name)
	}
}

func (p *parser) call(_ bool) {
	argCount := p.argumentList()
	p.emitOpByte(machine.OpCall, byte(argCount))
}

func (p *parser) argumentList() int {
	argCount := 0
	if !p.check(token.RPAREN) {
		for {
			p.expression()
			if argCount == maxArgs {
				p.error("Can't have more than 255 arguments.")
			}
			argCount++
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expect ')' after arguments.")
	return argCount
}
