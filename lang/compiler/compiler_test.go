package compiler

import (
	"strings"
	"testing"

	"github.com/mna/wisp/lang/machine"
	"github.com/stretchr/testify/require"
)

func compileOK(t *testing.T, src string) *machine.ObjFunction {
	t.Helper()
	gc := machine.NewGC()
	fn, err := Compile(gc, []byte(src))
	require.NoError(t, err)
	return fn
}

func TestCompileErrorFormat(t *testing.T) {
	gc := machine.NewGC()
	_, err := Compile(gc, []byte("var ;"))
	require.Error(t, err)
	require.Regexp(t, `^\[line 1\] Error at ';': `, err.Error())
}

func TestCompileErrorAtEOF(t *testing.T) {
	gc := machine.NewGC()
	_, err := Compile(gc, []byte("var x ="))
	require.Error(t, err)
	require.Contains(t, err.Error(), "at end:")
}

func TestCompileSimpleArithmetic(t *testing.T) {
	fn := compileOK(t, "print 1 + 2 * 3;")
	require.NotNil(t, fn)
	require.Greater(t, len(fn.Chunk.Code), 0)
}

func TestCompileReturnOutsideFunctionIsError(t *testing.T) {
	gc := machine.NewGC()
	_, err := Compile(gc, []byte("return 1;"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can't return from top-level code.")
}

func TestCompileReturnValueFromInitializerIsError(t *testing.T) {
	gc := machine.NewGC()
	src := `class A { init() { return 1; } }`
	_, err := Compile(gc, []byte(src))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can't return a value from an initializer.")
}

func TestCompileThisOutsideClassIsError(t *testing.T) {
	gc := machine.NewGC()
	_, err := Compile(gc, []byte("print this;"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can't use 'this' outside of a class.")
}

func TestCompileSuperOutsideClassIsError(t *testing.T) {
	gc := machine.NewGC()
	_, err := Compile(gc, []byte("print super.x;"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can't use 'super' outside of a class.")
}

func TestCompileSuperWithoutSuperclassIsError(t *testing.T) {
	gc := machine.NewGC()
	src := `class A { m() { print super.x; } }`
	_, err := Compile(gc, []byte(src))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can't use 'super' in a class with no superclass.")
}

// TestCompileMaxParameters exercises spec's 255/256 parameter boundary: 255
// parameters compiles cleanly, 256 is rejected.
func TestCompileMaxParameters(t *testing.T) {
	params := make([]string, 255)
	for i := range params {
		params[i] = "a" + itoa(i)
	}
	src := "fun f(" + strings.Join(params, ",") + ") {}"
	fn := compileOK(t, src)
	require.Equal(t, 255, constFnArity(t, fn))
}

func TestCompileTooManyParametersIsError(t *testing.T) {
	params := make([]string, 256)
	for i := range params {
		params[i] = "a" + itoa(i)
	}
	src := "fun f(" + strings.Join(params, ",") + ") {}"
	gc := machine.NewGC()
	_, err := Compile(gc, []byte(src))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can't have more than 255 parameters.")
}

// TestCompileTooManyLocalsIsError exercises spec's 256/257 locals boundary.
func TestCompileTooManyLocalsIsError(t *testing.T) {
	var b strings.Builder
	b.WriteString("{ ")
	for i := 0; i < 257; i++ {
		b.WriteString("var v" + itoa(i) + ";")
	}
	b.WriteString(" }")
	gc := machine.NewGC()
	_, err := Compile(gc, []byte(b.String()))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Too many local variables in function.")
}

func TestCompileMaxLocalsOK(t *testing.T) {
	var b strings.Builder
	b.WriteString("{ ")
	for i := 0; i < 255; i++ {
		b.WriteString("var v" + itoa(i) + ";")
	}
	b.WriteString(" }")
	compileOK(t, b.String())
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

func constFnArity(t *testing.T, script *machine.ObjFunction) int {
	t.Helper()
	for _, v := range script.Chunk.Constants {
		if fn, ok := v.(*machine.ObjFunction); ok {
			return fn.Arity
		}
	}
	t.Fatal("no nested function constant found")
	return -1
}
