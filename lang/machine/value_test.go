package machine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruth(t *testing.T) {
	require.False(t, Truth(Nil))
	require.False(t, Truth(Bool(false)))
	require.True(t, Truth(Bool(true)))
	require.True(t, Truth(Number(0)))
	require.True(t, Truth(&ObjString{chars: ""}))
}

func TestEqual(t *testing.T) {
	require.True(t, Equal(Nil, Nil))
	require.False(t, Equal(Nil, Bool(false)))
	require.True(t, Equal(Number(1), Number(1)))
	require.False(t, Equal(Number(1), Number(2)))
	require.True(t, Equal(Bool(true), Bool(true)))

	gc := NewGC()
	a := gc.NewString("hi")
	b := gc.NewString("hi")
	require.Same(t, a, b) // interning collapses equal content to one object
	require.True(t, Equal(a, b))

	c := &ObjString{chars: "hi", hash: fnvHash("hi")} // not interned
	require.False(t, Equal(a, c))
}

func TestNumberString(t *testing.T) {
	require.Equal(t, "1", Number(1).String())
	require.Equal(t, "1.5", Number(1.5).String())
}
