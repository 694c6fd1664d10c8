package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/wisp/internal/config"
	"github.com/mna/wisp/lang/compiler"
	"github.com/mna/wisp/lang/machine"
)

// Run compiles and executes each file in args in its own VM (spec §6's
// "one argument -> read that file and interpret it", generalized to more
// than one file for this driver's other subcommands' symmetry).
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	limits, err := config.Load(".wisprc.yaml")
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return &ioError{err: err}
	}

	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return &ioError{err: err}
		}

		vm := machine.New(limits, stdio.Stdout, stdio.Stderr)
		fn, cerr := compiler.Compile(vm.GC, src)
		if cerr != nil {
			fmt.Fprintln(stdio.Stderr, cerr)
			return &compileError{err: cerr}
		}
		if rerr := vm.Interpret(fn); rerr != nil {
			return &runtimeError{err: rerr}
		}
	}
	return nil
}
