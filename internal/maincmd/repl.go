package maincmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mna/mainer"

	"github.com/mna/wisp/internal/config"
	"github.com/mna/wisp/lang/compiler"
	"github.com/mna/wisp/lang/machine"
)

// Repl starts the interactive loop spec §6 requires for the zero-argument
// invocation: read one line, compile and run it, and keep going until EOF.
// Compile and runtime errors are reported to the error sink but never end
// the session; only EOF does.
func (c *Cmd) Repl(_ context.Context, stdio mainer.Stdio, _ []string) error {
	limits, err := config.Load(".wisprc.yaml")
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return &ioError{err: err}
	}
	vm := machine.New(limits, stdio.Stdout, stdio.Stderr)

	prompt := ""
	if f, ok := stdio.Stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		prompt = "> "
	}

	sc := bufio.NewScanner(stdio.Stdin)
	for {
		if prompt != "" {
			fmt.Fprint(stdio.Stdout, prompt)
		}
		if !sc.Scan() {
			return nil
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		fn, cerr := compiler.Compile(vm.GC, []byte(line))
		if cerr != nil {
			fmt.Fprintln(stdio.Stderr, cerr)
			continue
		}
		vm.Interpret(fn) //nolint:errcheck // the VM already reported the error to stdio.Stderr
	}
}
