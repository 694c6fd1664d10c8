package compiler

import "github.com/mna/wisp/lang/token"

// declaration parses one top-level-or-block item and resynchronizes after
// any error, so one bad statement doesn't abort the whole compile (spec
// §4.2).
func (p *parser) declaration() {
	switch {
	case p.match(token.CLASS):
		p.classDeclaration()
	case p.match(token.FUN):
		p.funDeclaration()
	case p.match(token.VAR):
		p.varDeclaration()
	default:
		p.statement()
	}
	if p.panicMode {
		p.synchronize()
	}
}

func (p *parser) statement() {
	switch {
	case p.match(token.PRINT):
		p.printStatement()
	case p.match(token.FOR):
		p.forStatement()
	case p.match(token.IF):
		p.ifStatement()
	case p.match(token.RETURN):
		p.returnStatement()
	case p.match(token.WHILE):
		p.whileStatement()
	case p.match(token.LBRACE):
		p.beginScope()
		p.block()
		p.endScope()
	default:
		p.expressionStatement()
	}
}

func (p *parser) block() {
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		p.declaration()
	}
	p.consume(token.RBRACE, "Expect '}' after block.")
}

func (p *parser) printStatement() {
	p.expression()
	p.consume(token.SEMI, "Expect ';' after value.")
	p.emitOp(opPrint)
}

func (p *parser) expressionStatement() {
	p.expression()
	p.consume(token.SEMI, "Expect ';' after expression.")
	p.emitOp(opPop)
}

func (p *parser) ifStatement() {
	p.consume(token.LPAREN, "Expect '(' after 'if'.")
	p.expression()
	p.consume(token.RPAREN, "Expect ')' after condition.")

	thenJump := p.emitJump(opJumpIfFalse)
	p.emitOp(opPop)
	p.statement()

	elseJump := p.emitJump(opJump)
	p.patchJump(thenJump)
	p.emitOp(opPop)

	if p.match(token.ELSE) {
		p.statement()
	}
	p.patchJump(elseJump)
}

func (p *parser) whileStatement() {
	loopStart := p.loopPoint()
	p.consume(token.LPAREN, "Expect '(' after 'while'.")
	p.expression()
	p.consume(token.RPAREN, "Expect ')' after condition.")

	exitJump := p.emitJump(opJumpIfFalse)
	p.emitOp(opPop)
	p.statement()
	p.emitLoop(loopStart)

	p.patchJump(exitJump)
	p.emitOp(opPop)
}

func (p *parser) forStatement() {
	p.beginScope()
	p.consume(token.LPAREN, "Expect '(' after 'for'.")

	switch {
	case p.match(token.SEMI):
		// no initializer clause
	case p.match(token.VAR):
		p.varDeclaration()
	default:
		p.expressionStatement()
	}

	loopStart := p.loopPoint()
	exitJump := -1
	if !p.match(token.SEMI) {
		p.expression()
		p.consume(token.SEMI, "Expect ';' after loop condition.")
		exitJump = p.emitJump(opJumpIfFalse)
		p.emitOp(opPop)
	}

	if !p.match(token.RPAREN) {
		bodyJump := p.emitJump(opJump)
		incrementStart := p.loopPoint()
		p.expression()
		p.emitOp(opPop)
		p.consume(token.RPAREN, "Expect ')' after for clauses.")

		p.emitLoop(loopStart)
		loopStart = incrementStart
		p.patchJump(bodyJump)
	}

	p.statement()
	p.emitLoop(loopStart)

	if exitJump != -1 {
		p.patchJump(exitJump)
		p.emitOp(opPop)
	}
	p.endScope()
}

func (p *parser) returnStatement() {
	if p.current.kind == typeScript {
		p.error("Can't return from top-level code.")
	}
	switch {
	case p.match(token.SEMI):
		p.emitReturn()
	default:
		if p.current.kind == typeInitializer {
			p.error("Can't return a value from an initializer.")
		}
		p.expression()
		p.consume(token.SEMI, "Expect ';' after return value.")
		p.emitOp(opReturn)
	}
}

func (p *parser) varDeclaration() {
	global := p.parseVariable("Expect variable name.")
	if p.match(token.EQ) {
		p.expression()
	} else {
		p.emitOp(opNil)
	}
	p.consume(token.SEMI, "Expect ';' after variable declaration.")
	p.defineVariable(global)
}

func (p *parser) funDeclaration() {
	global := p.parseVariable("Expect function name.")
	p.markInitialized()
	p.function(typeFunction)
	p.defineVariable(global)
}

func (p *parser) classDeclaration() {
	p.consume(token.IDENT, "Expect class name.")
	className := p.prev.Lit
	nameConstant := p.identifierConstant(className)
	p.declareVariable(className)

	p.emitOpByte(opClass, nameConstant)
	p.defineVariable(nameConstant)

	cs := &classState{enclosing: p.class}
	p.class = cs

	if p.match(token.LT) {
		p.consume(token.IDENT, "Expect superclass name.")
		superName := p.prev.Lit
		if superName == className {
			p.error("A class can't inherit from itself.")
		}
		p.namedVariable(superName, false)

		p.beginScope()
		p.addLocal("super")
		p.markInitialized()

		p.namedVariable(className, false)
		p.emitOp(opInherit)
		cs.hasSuperclass = true
	}

	p.namedVariable(className, false)
	p.consume(token.LBRACE, "Expect '{' before class body.")
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		p.method()
	}
	p.consume(token.RBRACE, "Expect '}' after class body.")
	p.emitOp(opPop)

	if cs.hasSuperclass {
		p.endScope()
	}
	p.class = cs.enclosing
}

func (p *parser) method() {
	p.consume(token.IDENT, "Expect method name.")
	name := p.prev.Lit
	constant := p.identifierConstant(name)

	kind := typeMethod
	if name == "init" {
		kind = typeInitializer
	}
	p.function(kind)
	p.emitOpByte(opMethod, constant)
}

func (p *parser) loopPoint() int { return len(p.currentChunk().Code) }
