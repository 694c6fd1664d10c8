// Package maincmd implements the wisp command-line driver: argument
// parsing and dispatch (in the style of github.com/mna/mainer's reflective
// command table), and the four entry points a host driver needs (spec §6):
// run a file, start an interactive loop, dump tokens, or dump bytecode.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "wisp"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<command>] [<path>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<path>]
       %[1]s <command> [<path>...]
       %[1]s -h|--help
       %[1]s -v|--version

With no arguments, starts an interactive read-eval-print loop. With a
single path, compiles and runs that file.

The <command> can be one of:
       run                       Compile and run the given file (the
                                 default when a single bare path is
                                 given).
       repl                      Start the interactive loop explicitly.
       tokenize                  Print the token stream for each file.
       disassemble               Print the compiled bytecode for each
                                 file, without running it.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
`, binName)
)

// Cmd is the flag/command target github.com/mna/mainer's Parser fills in
// and then dispatches through Main.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args    []string
	cmdArgs []string
	cmdFn   func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string)         { c.args = args }
func (c *Cmd) SetFlags(map[string]bool)      {}

// Validate resolves which command to run from the positional arguments,
// implementing spec §6's bare CLI contract (zero args: REPL; one arg: run
// that file; more than one bare arg: usage error) alongside the named
// subcommands this driver adds on top of it.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	commands := buildCmds(c)

	if len(c.args) == 0 {
		c.cmdFn = commands["repl"]
		c.cmdArgs = nil
		return nil
	}

	if fn, ok := commands[c.args[0]]; ok {
		c.cmdFn = fn
		c.cmdArgs = c.args[1:]
		if (c.args[0] == "tokenize" || c.args[0] == "disassemble" || c.args[0] == "run") && len(c.cmdArgs) == 0 {
			return fmt.Errorf("%s: at least one file must be provided", c.args[0])
		}
		return nil
	}

	if len(c.args) == 1 {
		c.cmdFn = commands["run"]
		c.cmdArgs = c.args
		return nil
	}

	return errors.New("too many arguments")
}

// Main is the sole entry point cmd/wisp/main.go calls. It maps every
// outcome to the exit codes spec §6 mandates.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: strings.ToUpper(binName) + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return usageExit
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return successExit
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return successExit
	}

	if c.cmdFn == nil {
		// Validate wasn't called (mainer is expected to call it, but guard
		// anyway so Main never dereferences a nil func).
		fmt.Fprintf(stdio.Stderr, "%s\n%s", "no command resolved", shortUsage)
		return usageExit
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	err := c.cmdFn(ctx, stdio, c.cmdArgs)
	return exitCodeFor(err)
}

// buildCmds mirrors the teacher's reflective command table: any exported
// method with signature (context.Context, mainer.Stdio, []string) error
// becomes a subcommand named after its lower-cased method name.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
