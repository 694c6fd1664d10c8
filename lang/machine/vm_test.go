package machine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestVM() (*VM, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	vm := New(DefaultLimits(), &stdout, &stderr)
	return vm, &stdout, &stderr
}

func TestVMArithmeticPrecedence(t *testing.T) {
	vm, stdout, _ := newTestVM()

	fn := &ObjFunction{}
	c := &fn.Chunk
	one := c.AddConstant(Number(1))
	two := c.AddConstant(Number(2))
	three := c.AddConstant(Number(3))

	// 1 + 2 * 3 -> 7
	c.Write(byte(OpConstant), 1)
	c.Write(byte(one), 1)
	c.Write(byte(OpConstant), 1)
	c.Write(byte(two), 1)
	c.Write(byte(OpConstant), 1)
	c.Write(byte(three), 1)
	c.Write(byte(OpMultiply), 1)
	c.Write(byte(OpAdd), 1)
	c.Write(byte(OpPrint), 1)
	c.Write(byte(OpNil), 1)
	c.Write(byte(OpReturn), 1)

	err := vm.Interpret(fn)
	require.NoError(t, err)
	require.Equal(t, "7\n", stdout.String())
}

func TestVMGlobals(t *testing.T) {
	vm, stdout, _ := newTestVM()

	fn := &ObjFunction{}
	c := &fn.Chunk
	name := c.AddConstant(vm.GC.NewString("x"))
	val := c.AddConstant(Number(42))

	c.Write(byte(OpConstant), 1)
	c.Write(byte(val), 1)
	c.Write(byte(OpDefineGlobal), 1)
	c.Write(byte(name), 1)
	c.Write(byte(OpGetGlobal), 1)
	c.Write(byte(name), 1)
	c.Write(byte(OpPrint), 1)
	c.Write(byte(OpNil), 1)
	c.Write(byte(OpReturn), 1)

	require.NoError(t, vm.Interpret(fn))
	require.Equal(t, "42\n", stdout.String())
}

func TestVMUndefinedGlobalIsRuntimeError(t *testing.T) {
	vm, _, stderr := newTestVM()

	fn := &ObjFunction{}
	c := &fn.Chunk
	name := c.AddConstant(vm.GC.NewString("missing"))

	c.Write(byte(OpGetGlobal), 1)
	c.Write(byte(name), 1)
	c.Write(byte(OpPrint), 1)
	c.Write(byte(OpNil), 1)
	c.Write(byte(OpReturn), 1)

	err := vm.Interpret(fn)
	require.Error(t, err)
	require.Contains(t, stderr.String(), "Undefined variable")
}

func TestVMTypeMismatchIsRuntimeError(t *testing.T) {
	vm, _, _ := newTestVM()

	fn := &ObjFunction{}
	c := &fn.Chunk
	n := c.AddConstant(Number(1))
	s := c.AddConstant(vm.GC.NewString("x"))

	c.Write(byte(OpConstant), 1)
	c.Write(byte(n), 1)
	c.Write(byte(OpConstant), 1)
	c.Write(byte(s), 1)
	c.Write(byte(OpAdd), 1)
	c.Write(byte(OpPop), 1)
	c.Write(byte(OpNil), 1)
	c.Write(byte(OpReturn), 1)

	err := vm.Interpret(fn)
	require.Error(t, err)
	require.IsType(t, &RuntimeError{}, err)
}
