package compiler

import (
	"github.com/mna/wisp/lang/machine"
	"github.com/mna/wisp/lang/scanner"
	"github.com/mna/wisp/lang/token"
)

// Compile scans and parses src in a single pass, emitting directly into a
// fresh top-level ObjFunction's chunk (spec §4.2). Constants it allocates
// (interned strings, nested function objects) are tracked through gc, so a
// stress-mode collection mid-compile cannot reclaim anything still
// reachable from the in-progress function chain.
func Compile(gc *machine.GC, src []byte) (*machine.ObjFunction, error) {
	var sc scanner.Scanner
	sc.Init(src)

	p := &parser{sc: &sc, gc: gc}
	p.pushFuncCompiler(typeScript, "")
	gc.AddRootSource(p.roots)

	p.advance()
	for !p.match(token.EOF) {
		p.declaration()
	}

	fn := p.popFuncCompiler()
	if p.hadError {
		p.errs.Sort()
		return nil, p.errs.Err()
	}
	return fn, nil
}

// roots reports every function object still being compiled, implementing
// the collector's root source contract for in-flight compilation (spec
// §4.5's enumerated root kinds).
func (p *parser) roots() []machine.Obj {
	var out []machine.Obj
	for fc := p.current; fc != nil; fc = fc.enclosing {
		out = append(out, fc.function)
	}
	return out
}

func (p *parser) pushFuncCompiler(kind funcType, name string) {
	fc := &funcCompiler{enclosing: p.current, kind: kind}
	fn := &machine.ObjFunction{}
	if name != "" {
		fn.Name = p.gc.NewString(name)
	}
	fc.function = fn

	// Slot 0 is reserved for the callee (plain functions) or the receiver
	// (methods and initializers), matching the call convention the VM's
	// call() uses (spec §4.6).
	slotName := ""
	if kind == typeMethod || kind == typeInitializer {
		slotName = "this"
	}
	fc.locals = append(fc.locals, local{name: slotName, depth: 0})

	p.current = fc
}

func (p *parser) popFuncCompiler() *machine.ObjFunction {
	p.emitReturn()
	fn := p.current.function
	fn.UpvalueCount = len(p.current.upvalues)
	fn.Chunk.Stamp()
	upvalues := p.current.upvalues
	p.current = p.current.enclosing
	p.emitClosure(fn, upvalues)
	return fn
}

// emitClosure is only meaningful for nested functions (it emits the
// OP_CLOSURE instruction the *enclosing* compiler uses to turn the just
// -compiled function into a runtime closure value); the outermost script
// function has no enclosing chunk to emit into, so it is skipped there.
func (p *parser) emitClosure(fn *machine.ObjFunction, upvalues []upvalueRef) {
	if p.current == nil {
		return
	}
	idx := p.makeConstant(fn)
	p.emitOpByte(machine.OpClosure, idx)
	for _, uv := range upvalues {
		if uv.isLocal {
			p.emitByte(1)
		} else {
			p.emitByte(0)
		}
		p.emitByte(byte(uv.index))
	}
}

// function compiles one function/method body: parameter list then block,
// assuming the name has already been consumed into p.prev (spec §4.2).
func (p *parser) function(kind funcType) {
	name := p.prev.Lit
	p.pushFuncCompiler(kind, name)
	p.beginScope()

	p.consume(token.LPAREN, "Expect '(' after function name.")
	if !p.check(token.RPAREN) {
		for {
			p.current.function.Arity++
			if p.current.function.Arity > maxArgs {
				p.errorAtCurrent("Can't have more than 255 parameters.")
			}
			paramConstant := p.parseVariable("Expect parameter name.")
			p.defineVariable(paramConstant)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "Expect ')' after parameters.")
	p.consume(token.LBRACE, "Expect '{' before function body.")
	p.block()

	p.popFuncCompiler()
}
