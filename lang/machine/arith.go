package machine

// add implements the `add` opcode: number+number or string+string (spec
// §4.3). Concatenation leaves both operands on the stack until the result
// value exists, satisfying the allocator contract of spec §4.5 (the caller
// is responsible for that stack discipline; add itself just builds the
// value).
func (vm *VM) add(a, b Value) (Value, error) {
	switch a := a.(type) {
	case Number:
		if b, ok := b.(Number); ok {
			return a + b, nil
		}
	case *ObjString:
		if b, ok := b.(*ObjString); ok {
			return vm.GC.NewString(a.chars + b.chars), nil
		}
	}
	return nil, typeMismatchErr("+", a, b)
}

func numberBinary(op string, a, b Value, f func(x, y float64) float64) (Value, error) {
	an, ok1 := a.(Number)
	bn, ok2 := b.(Number)
	if !ok1 || !ok2 {
		return nil, typeMismatchErr(op, a, b)
	}
	return Number(f(float64(an), float64(bn))), nil
}

func numberCompare(a, b Value) (float64, float64, error) {
	an, ok1 := a.(Number)
	bn, ok2 := b.(Number)
	if !ok1 || !ok2 {
		return 0, 0, typeMismatchErr("compare", a, b)
	}
	return float64(an), float64(bn), nil
}
