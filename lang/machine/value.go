// Package machine implements the bytecode execution engine: the tagged value
// and object model, the append-only chunk format, the tri-colour garbage
// collector, and the stack-based virtual machine dispatch loop (spec §3,
// §4.3-§4.6).
package machine

import (
	"fmt"
	"strconv"
)

// Value is the interface implemented by every value the machine can put on
// its operand stack: nil, boolean, number, or a heap object handle (spec
// §3). There are exactly four cases; NaN-boxing is deliberately not used
// (spec §9) so a port stays portable across architectures.
type Value interface {
	// String returns the value's printed form, per spec §6's Host Output
	// table (nil -> "nil", booleans -> "true"/"false", numbers formatted
	// %g-equivalent, strings -> their raw contents, and so on for objects).
	String() string
	// Type returns a short type name, used in runtime error messages.
	Type() string
}

// Nil is the sole value of the nil type.
var Nil Value = nilValue{}

type nilValue struct{}

func (nilValue) String() string { return "nil" }
func (nilValue) Type() string   { return "nil" }

// Bool is the boolean value type.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (Bool) Type() string { return "bool" }

// Number is the single numeric value type (an IEEE-754 double, spec §3).
type Number float64

func (n Number) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }
func (Number) Type() string     { return "number" }

// Truth reports the truthiness of v. nil and false are the only falsey
// values (spec §3); everything else, including 0 and the empty string, is
// truthy.
func Truth(v Value) bool {
	switch v := v.(type) {
	case nilValue:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// Equal reports whether a and b are equal per spec §4.3: different value
// kinds are never equal; numbers and booleans compare by value; objects
// compare by identity, except strings (which compare by content, but since
// every string is interned, identity equality is sufficient and is what
// this implementation performs).
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case nilValue:
		_, ok := b.(nilValue)
		return ok
	case Bool:
		bb, ok := b.(Bool)
		return ok && a == bb
	case Number:
		bb, ok := b.(Number)
		return ok && a == bb
	case *ObjString:
		bb, ok := b.(*ObjString)
		return ok && a == bb // interned: pointer equality is content equality
	default:
		return a == b
	}
}

func typeMismatchErr(op string, a, b Value) error {
	if op != "+" {
		return fmt.Errorf("operands must be numbers for '%s', got %s and %s", op, a.Type(), b.Type())
	}
	return fmt.Errorf("operands must both be numbers or both be strings for '%s', got %s and %s", op, a.Type(), b.Type())
}

func undefinedPropertyErr(name *ObjString) error {
	return fmt.Errorf("Undefined property '%s'.", name.chars)
}
