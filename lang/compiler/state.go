// Package compiler implements a single-pass Pratt parser that compiles wisp
// source directly to bytecode: there is no intermediate AST or separate
// resolver pass (spec §4.2). Each nested function literal gets its own
// funcCompiler, chained through enclosing, mirroring the call stack of
// nested function declarations at compile time.
package compiler

import (
	"github.com/mna/wisp/lang/machine"
)

// funcType distinguishes the implicit top-level script from a user-defined
// function, a method, and an initializer (the `init` method gets special
// treatment: a bare `return;` inside it returns `this` instead of nil, spec
// §4.6).
type funcType int

const (
	typeScript funcType = iota
	typeFunction
	typeMethod
	typeInitializer
)

// local is a compile-time record of a local variable's stack slot (its
// index is implicit: position in the locals slice), scope depth, and
// whether any nested function captures it as an upvalue.
type local struct {
	name       string
	depth      int // -1 while the variable's own initializer is still compiling
	isCaptured bool
}

// upvalueRef records, for one slot in a function's upvalue array, whether
// it captures a local of the immediately enclosing function or forwards an
// upvalue from further out (spec §4.6's capture algorithm).
type upvalueRef struct {
	index   int
	isLocal bool
}

// classState tracks compile-time context for the class body currently
// being compiled, chained through enclosing so nested classes (a class
// declared inside a method) resolve `super`/`this` correctly.
type classState struct {
	enclosing     *classState
	hasSuperclass bool
}

// funcCompiler is the compile-time analogue of a call frame: one exists per
// nested function body currently being compiled, and is discarded once
// that function's compilation ends.
type funcCompiler struct {
	enclosing *funcCompiler

	function *machine.ObjFunction
	kind     funcType

	locals     []local
	upvalues   []upvalueRef
	scopeDepth int
}

const (
	maxLocals    = 256
	maxArgs      = 255
	maxConstants = 256
	maxJump      = 1<<16 - 1
)
