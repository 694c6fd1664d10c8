package maincmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/wisp/lang/compiler"
	"github.com/mna/wisp/lang/disasm"
	"github.com/mna/wisp/lang/machine"
)

// Disassemble compiles each file without running it and prints its
// bytecode, recursing into every nested function found in the constant
// pool (spec §1: the disassembly format itself is not a contract, just a
// debugging aid).
func (c *Cmd) Disassemble(_ context.Context, stdio mainer.Stdio, args []string) error {
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return &ioError{err: err}
		}

		gc := machine.NewGC()
		fn, cerr := compiler.Compile(gc, src)
		if cerr != nil {
			fmt.Fprintln(stdio.Stderr, cerr)
			return &compileError{err: cerr}
		}
		printChunk(stdio.Stdout, fn, "script")
	}
	return nil
}

func printChunk(w io.Writer, fn *machine.ObjFunction, name string) {
	fmt.Fprint(w, disasm.Chunk(&fn.Chunk, name))
	for _, v := range fn.Chunk.Constants {
		nested, ok := v.(*machine.ObjFunction)
		if !ok {
			continue
		}
		nm := "<script>"
		if nested.Name != nil {
			nm = nested.Name.String()
		}
		printChunk(w, nested, nm)
	}
}
