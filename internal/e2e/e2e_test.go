// Package e2e runs whole *.wisp scripts under testdata/ through the
// compiler and VM together and diffs their stdout/stderr against golden
// files, covering the literal end-to-end scenarios a single unit test
// can't: precedence, scoping, closures, inheritance, string interning, and
// a runtime error's stack trace.
package e2e

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/wisp/internal/filetest"
	"github.com/mna/wisp/lang/compiler"
	"github.com/mna/wisp/lang/machine"
	"github.com/stretchr/testify/require"
)

var updateTests = flag.Bool("test.update-e2e-tests", false, "update the e2e golden files")

const testdataDir = "testdata"

func TestScripts(t *testing.T) {
	files := filetest.SourceFiles(t, testdataDir, ".wisp")
	require.NotEmpty(t, files, "expected at least one testdata script")

	for _, fi := range files {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(testdataDir, fi.Name()))
			if err != nil {
				t.Fatal(err)
			}

			var stdout, stderr bytes.Buffer
			vm := machine.New(machine.DefaultLimits(), &stdout, &stderr)
			fn, cerr := compiler.Compile(vm.GC, src)
			if cerr != nil {
				stderr.WriteString(cerr.Error() + "\n")
			} else {
				vm.Interpret(fn) //nolint:errcheck // the VM reports to stderr itself
			}

			filetest.DiffOutput(t, fi, stdout.String(), testdataDir, updateTests)
			filetest.DiffErrors(t, fi, stderr.String(), testdataDir, updateTests)
		})
	}
}
