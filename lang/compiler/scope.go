package compiler

import "github.com/mna/wisp/lang/machine"

func (p *parser) beginScope() { p.current.scopeDepth++ }

// endScope closes the current block scope, popping its locals off the
// stack. A local that some nested closure captured is closed (its value
// copied off the stack into the heap-resident upvalue) rather than merely
// popped (spec §4.6).
func (p *parser) endScope() {
	p.current.scopeDepth--

	locals := p.current.locals
	for len(locals) > 0 && locals[len(locals)-1].depth > p.current.scopeDepth {
		if locals[len(locals)-1].isCaptured {
			p.emitOp(machine.OpCloseUpvalue)
		} else {
			p.emitOp(machine.OpPop)
		}
		locals = locals[:len(locals)-1]
	}
	p.current.locals = locals
}

// declareVariable registers prev's lexeme as a new local in the current
// scope, rejecting a redeclaration at the same depth (spec §4.2). It is a
// no-op at global scope: globals are resolved by name at runtime, not by
// slot.
func (p *parser) declareVariable(name string) {
	if p.current.scopeDepth == 0 {
		return
	}
	for i := len(p.current.locals) - 1; i >= 0; i-- {
		l := p.current.locals[i]
		if l.depth != -1 && l.depth < p.current.scopeDepth {
			break
		}
		if l.name == name {
			p.error("Already a variable with this name in this scope.")
		}
	}
	p.addLocal(name)
}

func (p *parser) addLocal(name string) {
	if len(p.current.locals) >= maxLocals {
		p.error("Too many local variables in function.")
		return
	}
	p.current.locals = append(p.current.locals, local{name: name, depth: -1})
}

// markInitialized records that the most recently declared local may now be
// read; until then resolveLocalChecked reports a read of it as use in its
// own initializer (spec §4.2's shadowing rule). funDeclaration calls it
// before compiling the body, so a function can refer to itself. It is a
// no-op at global scope since globals are defined by OP_DEFINE_GLOBAL,
// not by this bookkeeping.
func (p *parser) markInitialized() {
	if p.current.scopeDepth == 0 {
		return
	}
	p.current.locals[len(p.current.locals)-1].depth = p.current.scopeDepth
}

// resolveLocal returns the stack slot of name in fc, or -1 if fc has no
// such local.
func resolveLocal(fc *funcCompiler, name string) int {
	for i := len(fc.locals) - 1; i >= 0; i-- {
		if fc.locals[i].name == name {
			return i
		}
	}
	return -1
}

// resolveLocalChecked is resolveLocal plus the "own initializer" diagnostic
// (split out because the diagnostic needs the parser, not just the
// funcCompiler being searched).
func (p *parser) resolveLocalChecked(fc *funcCompiler, name string) int {
	i := resolveLocal(fc, name)
	if i != -1 && fc.locals[i].depth == -1 {
		p.error("Can't read local variable in its own initializer.")
	}
	return i
}

// resolveUpvalue recursively threads a reference to name through enclosing
// function compilers, adding an upvalue slot at every level it passes
// through, per spec §4.6's capture algorithm.
func (p *parser) resolveUpvalue(fc *funcCompiler, name string) int {
	if fc.enclosing == nil {
		return -1
	}
	if i := p.resolveLocalChecked(fc.enclosing, name); i != -1 {
		fc.enclosing.locals[i].isCaptured = true
		return p.addUpvalue(fc, i, true)
	}
	if i := p.resolveUpvalue(fc.enclosing, name); i != -1 {
		return p.addUpvalue(fc, i, false)
	}
	return -1
}

func (p *parser) addUpvalue(fc *funcCompiler, index int, isLocal bool) int {
	for i, uv := range fc.upvalues {
		if uv.index == index && uv.isLocal == isLocal {
			return i
		}
	}
	if len(fc.upvalues) >= maxLocals {
		p.error("Too many closure variables in function.")
		return 0
	}
	fc.upvalues = append(fc.upvalues, upvalueRef{index: index, isLocal: isLocal})
	fc.function.UpvalueCount = len(fc.upvalues)
	return len(fc.upvalues) - 1
}
