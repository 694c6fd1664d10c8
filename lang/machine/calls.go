package machine

// callValue dispatches the `call` opcode's callee to the right kind of
// call: a plain closure, a native, a class (construction), or a bound
// method (spec §4.6).
func (vm *VM) callValue(callee Value, argCount int) error {
	switch c := callee.(type) {
	case *ObjBoundMethod:
		vm.stack[vm.stackTop-argCount-1] = c.Receiver
		return vm.call(c.Method, argCount)
	case *ObjClass:
		inst := NewInstance(c)
		vm.GC.Track(inst)
		vm.stack[vm.stackTop-argCount-1] = inst
		if init, ok := c.Methods.Get(vm.initString); ok {
			return vm.call(init.(*ObjClosure), argCount)
		}
		if argCount != 0 {
			return vm.runtimeError("Expected 0 arguments but got %d.", argCount)
		}
		return nil
	case *ObjClosure:
		return vm.call(c, argCount)
	case *ObjNative:
		args := vm.stack[vm.stackTop-argCount : vm.stackTop]
		res, err := c.Fn(vm, args)
		if err != nil {
			return vm.runtimeError("%s", err)
		}
		vm.stackTop -= argCount + 1
		vm.push(res)
		return nil
	default:
		return vm.runtimeError("Can only call functions and classes.")
	}
}

// call pushes a new frame for closure, checking arity and frame-stack
// depth (spec §4.6, §5).
func (vm *VM) call(closure *ObjClosure, argCount int) error {
	if argCount != closure.Function.Arity {
		return vm.runtimeError("Expected %d arguments but got %d.", closure.Function.Arity, argCount)
	}
	if vm.frameCount == len(vm.frames) {
		return vm.runtimeError("Stack overflow.")
	}
	frame := &vm.frames[vm.frameCount]
	vm.frameCount++
	frame.closure = closure
	frame.ip = 0
	frame.base = vm.stackTop - argCount - 1
	return nil
}

// getProperty reads a field first, then falls back to a bound method
// lookup (spec §4.6's property-access rule: fields shadow methods).
func (vm *VM) getProperty(instance *ObjInstance, name *ObjString) (Value, error) {
	if v, ok := instance.Fields.Get(name); ok {
		return v, nil
	}
	return vm.bindMethod(instance.Class, instance, name)
}

func (vm *VM) bindMethod(class *ObjClass, receiver Value, name *ObjString) (Value, error) {
	m, ok := class.Methods.Get(name)
	if !ok {
		return nil, undefinedPropertyErr(name)
	}
	bound := &ObjBoundMethod{Receiver: receiver, Method: m.(*ObjClosure)}
	vm.GC.Track(bound)
	return bound, nil
}

// invoke fuses `get-property` and `call` for the common `receiver.method(args)`
// shape, skipping the intermediate ObjBoundMethod allocation (spec §4.6).
func (vm *VM) invoke(name *ObjString, argCount int) error {
	receiver := vm.peek(argCount)
	inst, ok := receiver.(*ObjInstance)
	if !ok {
		return vm.runtimeError("Only instances have methods.")
	}
	if v, ok := inst.Fields.Get(name); ok {
		vm.stack[vm.stackTop-argCount-1] = v
		return vm.callValue(v, argCount)
	}
	return vm.invokeFromClass(inst.Class, name, argCount)
}

func (vm *VM) invokeFromClass(class *ObjClass, name *ObjString, argCount int) error {
	m, ok := class.Methods.Get(name)
	if !ok {
		return vm.runtimeError("%s", undefinedPropertyErr(name))
	}
	return vm.call(m.(*ObjClosure), argCount)
}

// captureUpvalue returns the open upvalue aliasing stack slot, creating one
// and inserting it into the VM's open-upvalue list (kept sorted by
// descending stack address, spec §4.1) if none exists yet.
func (vm *VM) captureUpvalue(slot int) *ObjUpvalue {
	var prev *ObjUpvalue
	cur := vm.openUpvalues
	for cur != nil && cur.slot > slot {
		prev = cur
		cur = cur.Next
	}
	if cur != nil && cur.slot == slot {
		return cur
	}

	uv := &ObjUpvalue{slot: slot}
	uv.Location = &vm.stack[slot]
	vm.GC.Track(uv)
	uv.Next = cur
	if prev == nil {
		vm.openUpvalues = uv
	} else {
		prev.Next = uv
	}
	return uv
}

// closeUpvalues closes every open upvalue aliasing a stack slot at or above
// fromSlot, copying its value out of the stack before the slot is reused or
// discarded (spec §4.6).
func (vm *VM) closeUpvalues(fromSlot int) {
	for vm.openUpvalues != nil && vm.openUpvalues.slot >= fromSlot {
		uv := vm.openUpvalues
		uv.close()
		vm.openUpvalues = uv.Next
		uv.Next = nil
	}
}
