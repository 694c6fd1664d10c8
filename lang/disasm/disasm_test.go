package disasm

import (
	"testing"

	"github.com/mna/wisp/lang/compiler"
	"github.com/mna/wisp/lang/machine"
	"github.com/stretchr/testify/require"
)

// TestInstructionWidthsSumToCodeLength exercises spec's first invariant:
// round-tripping compile -> disassemble yields a bytecode sequence whose
// total length matches the sum of per-instruction operand widths (i.e.
// walking Instruction repeatedly consumes exactly len(Code) bytes, no more,
// no less).
func TestInstructionWidthsSumToCodeLength(t *testing.T) {
	src := `
class Greeter {
  init(name) {
    this.name = name;
  }
  greet() {
    print "hi " + this.name;
  }
}
var g = Greeter("wisp");
g.greet();
fun adder(a, b) {
  return a + b;
}
print adder(1, 2);
`
	gc := machine.NewGC()
	fn, err := compiler.Compile(gc, []byte(src))
	require.NoError(t, err)

	checkChunk(t, &fn.Chunk)
}

func checkChunk(t *testing.T, c *machine.Chunk) {
	t.Helper()
	offset := 0
	for offset < len(c.Code) {
		_, next := Instruction(c, offset)
		require.Greater(t, next, offset)
		offset = next
	}
	require.Equal(t, len(c.Code), offset)

	for _, v := range c.Constants {
		if nested, ok := v.(*machine.ObjFunction); ok {
			checkChunk(t, &nested.Chunk)
		}
	}
}

func TestChunkHeaderIncludesBuildID(t *testing.T) {
	gc := machine.NewGC()
	fn, err := compiler.Compile(gc, []byte("print 1;"))
	require.NoError(t, err)

	out := Chunk(&fn.Chunk, "script")
	require.Contains(t, out, fn.Chunk.BuildID.String())
}
