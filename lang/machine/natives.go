package machine

import "time"

// start records process start time so clock() can report elapsed seconds
// (spec §6's sole built-in).
var start = time.Now()

func nativeClock(vm *VM, args []Value) (Value, error) {
	return Number(time.Since(start).Seconds()), nil
}

func (vm *VM) defineNative(name string, fn func(vm *VM, args []Value) (Value, error)) {
	s := vm.GC.NewString(name)
	n := &ObjNative{Name: name, Fn: fn}
	vm.GC.Track(n)
	vm.Globals.Set(s, n)
}
