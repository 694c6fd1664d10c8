package token

import (
	"fmt"
	gotoken "go/token"
)

// Position is a human-readable source position: a 1-based line and column
// plus an optional source name. It reuses the standard library's go/token
// representation rather than inventing an equivalent one.
type Position = gotoken.Position

// Error is a single diagnostic at a source position, in the spirit of the
// compile-error format required by spec §7: "[line L] Error at 'T': M".
type Error struct {
	Pos Position
	Msg string
}

func (e Error) Error() string {
	if e.Pos.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("[line %d] Error %s", e.Pos.Line, e.Msg)
}

// ErrorList accumulates diagnostics across an entire compilation. The
// compiler's panic-mode recovery (spec §4.2) still reports only the first
// error per statement, but successive statements each contribute their own
// entry here so the driver can report every diagnostic from one pass.
type ErrorList []*Error

// Add appends an error with the given position and message.
func (l *ErrorList) Add(pos Position, msg string) {
	*l = append(*l, &Error{Pos: pos, Msg: msg})
}

// Sort orders the errors by line, then column.
func (l ErrorList) Sort() {
	for i := 1; i < len(l); i++ {
		for j := i; j > 0 && less(l[j], l[j-1]); j-- {
			l[j], l[j-1] = l[j-1], l[j]
		}
	}
}

func less(a, b *Error) bool {
	if a.Pos.Line != b.Pos.Line {
		return a.Pos.Line < b.Pos.Line
	}
	return a.Pos.Column < b.Pos.Column
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns l as an error, or nil if l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
