package maincmd

import "github.com/mna/mainer"

const (
	usageExit   = mainer.ExitCode(64)
	compileExit = mainer.ExitCode(65)
	runtimeExit = mainer.ExitCode(70)
	ioExit      = mainer.ExitCode(74)
)

var successExit = mainer.Success

// compileError wraps a failed compilation so Main can map it to exit code
// 65 (spec §6) without the run/tokenize/disassemble commands needing to
// know about exit codes themselves.
type compileError struct{ err error }

func (e *compileError) Error() string { return e.err.Error() }
func (e *compileError) Unwrap() error { return e.err }

// runtimeError wraps a failed VM run (exit code 70, spec §6). The VM has
// already written the diagnostic and stack trace to the error sink by the
// time this wrapper is constructed; it exists purely for the exit-code
// mapping.
type runtimeError struct{ err error }

func (e *runtimeError) Error() string { return e.err.Error() }
func (e *runtimeError) Unwrap() error { return e.err }

// ioError wraps a failure to read a source file (exit code 74, spec §6).
type ioError struct{ err error }

func (e *ioError) Error() string { return e.err.Error() }
func (e *ioError) Unwrap() error { return e.err }

func exitCodeFor(err error) mainer.ExitCode {
	switch err.(type) {
	case nil:
		return successExit
	case *compileError:
		return compileExit
	case *runtimeError:
		return runtimeExit
	case *ioError:
		return ioExit
	default:
		return mainer.Failure
	}
}
