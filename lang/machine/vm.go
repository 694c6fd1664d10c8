package machine

import (
	"fmt"
	"io"
)

// Limits bounds the VM's fixed-size resources (spec §5's resource
// discipline). They default to the sizes spec.md names explicitly
// (16384 stack slots, 64 call frames) but may be overridden by the driver
// (see internal/config).
type Limits struct {
	StackSlots int
	Frames     int
}

// DefaultLimits returns the sizes spec.md states: FRAMES_MAX x 256 stack
// slots, and 64 call frames.
func DefaultLimits() Limits {
	return Limits{StackSlots: 64 * 256, Frames: 64}
}

// RuntimeError is returned by VM.Interpret when execution fails at runtime (spec
// §7). Its Error() form is only the top-line message; the full diagnostic
// plus per-frame stack trace has already been written to the VM's Stderr
// sink by the time this error is returned, matching spec §7's "writes a
// diagnostic and a stack trace... then resets the stack".
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// VM owns the value stack, the call-frame stack, the global table, the
// interned-string table (via GC), and the open-upvalue list, and runs the
// dispatch loop (spec §2, §3).
type VM struct {
	stack      []Value
	stackTop   int
	frames     []CallFrame
	frameCount int

	Globals *Table
	GC      *GC

	openUpvalues *ObjUpvalue
	initString   *ObjString

	Stdout io.Writer
	Stderr io.Writer
}

// New creates a VM ready to run compiled functions. stdout/stderr are the
// host-owned sinks spec §6 describes (the `print` opcode and runtime error
// reporting are the only things that write to them; the console I/O
// mechanism itself is an external driver concern, spec §1).
func New(limits Limits, stdout, stderr io.Writer) *VM {
	vm := &VM{
		stack:   make([]Value, limits.StackSlots),
		frames:  make([]CallFrame, limits.Frames),
		Globals: NewTable(),
		Stdout:  stdout,
		Stderr:  stderr,
	}
	vm.GC = NewGC()
	vm.GC.AddRootSource(vm.roots)
	vm.initString = vm.GC.NewString("init")
	vm.defineNative("clock", nativeClock)
	return vm
}

// roots reports the five of spec §4.5's six root kinds that belong to the
// VM: stack values, frame closures, open upvalues, globals and the pinned
// "init" string (the compiler registers its own root source separately,
// for #5).
func (vm *VM) roots() []Obj {
	var out []Obj
	for i := 0; i < vm.stackTop; i++ {
		if o, ok := vm.stack[i].(Obj); ok {
			out = append(out, o)
		}
	}
	for i := 0; i < vm.frameCount; i++ {
		out = append(out, vm.frames[i].closure)
	}
	for uv := vm.openUpvalues; uv != nil; uv = uv.Next {
		out = append(out, uv)
	}
	out = append(out, vm.Globals.Roots()...)
	if vm.initString != nil {
		out = append(out, vm.initString)
	}
	return out
}

func (vm *VM) push(v Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) Value {
	return vm.stack[vm.stackTop-1-distance]
}

// Interpret runs the given top-level script function to completion (spec
// §4.6's call convention, applied to the implicit top-level call).
func (vm *VM) Interpret(fn *ObjFunction) error {
	vm.push(fn)
	closure := NewClosure(fn)
	vm.GC.Track(closure)
	vm.pop()
	vm.push(closure)
	if err := vm.call(closure, 0); err != nil {
		return err
	}
	return vm.run()
}

func (vm *VM) readByte(frame *CallFrame) byte {
	b := frame.closure.Function.Chunk.Code[frame.ip]
	frame.ip++
	return b
}

func (vm *VM) readShort(frame *CallFrame) uint16 {
	hi := vm.readByte(frame)
	lo := vm.readByte(frame)
	return uint16(hi)<<8 | uint16(lo)
}

func (vm *VM) readConstant(frame *CallFrame) Value {
	return frame.closure.Function.Chunk.Constants[vm.readByte(frame)]
}

func (vm *VM) readString(frame *CallFrame) *ObjString {
	return vm.readConstant(frame).(*ObjString)
}

// run is the bytecode dispatch loop (spec §4.3). The current frame and its
// instruction pointer are cached locally and refreshed after every opcode
// that may change frames, as spec §4.3 requires.
func (vm *VM) run() error {
	frame := &vm.frames[vm.frameCount-1]

	for {
		op := Opcode(vm.readByte(frame))
		switch op {
		case OpConstant:
			vm.push(vm.readConstant(frame))

		case OpNil:
			vm.push(Nil)
		case OpTrue:
			vm.push(Bool(true))
		case OpFalse:
			vm.push(Bool(false))
		case OpPop:
			vm.pop()

		case OpGetLocal:
			slot := int(vm.readByte(frame))
			vm.push(vm.stack[frame.base+slot])
		case OpSetLocal:
			slot := int(vm.readByte(frame))
			vm.stack[frame.base+slot] = vm.peek(0)

		case OpGetGlobal:
			name := vm.readString(frame)
			v, ok := vm.Globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.chars)
			}
			vm.push(v)
		case OpDefineGlobal:
			name := vm.readString(frame)
			vm.Globals.Set(name, vm.peek(0))
			vm.pop()
		case OpSetGlobal:
			name := vm.readString(frame)
			if vm.Globals.Set(name, vm.peek(0)) {
				vm.Globals.Delete(name) // was not already defined: undo the insert
				return vm.runtimeError("Undefined variable '%s'.", name.chars)
			}

		case OpGetUpvalue:
			idx := vm.readByte(frame)
			vm.push(frame.closure.Upvalues[idx].get())
		case OpSetUpvalue:
			idx := vm.readByte(frame)
			frame.closure.Upvalues[idx].set(vm.peek(0))

		case OpGetProperty:
			name := vm.readString(frame)
			inst, ok := vm.peek(0).(*ObjInstance)
			if !ok {
				return vm.runtimeError("Only instances have properties.")
			}
			v, err := vm.getProperty(inst, name)
			if err != nil {
				return vm.runtimeError("%s", err)
			}
			vm.pop()
			vm.push(v)
		case OpSetProperty:
			name := vm.readString(frame)
			inst, ok := vm.peek(1).(*ObjInstance)
			if !ok {
				return vm.runtimeError("Only instances have fields.")
			}
			inst.Fields.Set(name, vm.peek(0))
			v := vm.pop()
			vm.pop()
			vm.push(v)
		case OpGetSuper:
			name := vm.readString(frame)
			superclass := vm.pop().(*ObjClass)
			receiver := vm.pop()
			v, err := vm.bindMethod(superclass, receiver, name)
			if err != nil {
				return vm.runtimeError("%s", err)
			}
			vm.push(v)

		case OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(Bool(Equal(a, b)))
		case OpGreater:
			b, a := vm.pop(), vm.pop()
			x, y, err := numberCompare(a, b)
			if err != nil {
				return vm.runtimeError("%s", err)
			}
			vm.push(Bool(x > y))
		case OpLess:
			b, a := vm.pop(), vm.pop()
			x, y, err := numberCompare(a, b)
			if err != nil {
				return vm.runtimeError("%s", err)
			}
			vm.push(Bool(x < y))

		case OpAdd:
			// Keep both operands on the stack (so vm.roots sees them) while
			// add may allocate the concatenated string; only pop them once
			// the result exists and is about to take their place.
			a, b := vm.peek(1), vm.peek(0)
			res, err := vm.add(a, b)
			if err != nil {
				return vm.runtimeError("%s", err)
			}
			vm.pop()
			vm.pop()
			vm.push(res)
		case OpSubtract:
			b, a := vm.pop(), vm.pop()
			res, err := numberBinary("-", a, b, func(x, y float64) float64 { return x - y })
			if err != nil {
				return vm.runtimeError("%s", err)
			}
			vm.push(res)
		case OpMultiply:
			b, a := vm.pop(), vm.pop()
			res, err := numberBinary("*", a, b, func(x, y float64) float64 { return x * y })
			if err != nil {
				return vm.runtimeError("%s", err)
			}
			vm.push(res)
		case OpDivide:
			b, a := vm.pop(), vm.pop()
			res, err := numberBinary("/", a, b, func(x, y float64) float64 { return x / y })
			if err != nil {
				return vm.runtimeError("%s", err)
			}
			vm.push(res)

		case OpNot:
			vm.push(Bool(!Truth(vm.pop())))
		case OpNegate:
			n, ok := vm.peek(0).(Number)
			if !ok {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.pop()
			vm.push(-n)

		case OpPrint:
			fmt.Fprintln(vm.Stdout, vm.pop().String())

		case OpJump:
			off := vm.readShort(frame)
			frame.ip += int(off)
		case OpJumpIfFalse:
			off := vm.readShort(frame)
			if !Truth(vm.peek(0)) {
				frame.ip += int(off)
			}
		case OpLoop:
			off := vm.readShort(frame)
			frame.ip -= int(off)

		case OpCall:
			argCount := int(vm.readByte(frame))
			if err := vm.callValue(vm.peek(argCount), argCount); err != nil {
				return err
			}
			frame = &vm.frames[vm.frameCount-1]

		case OpInvoke:
			name := vm.readString(frame)
			argCount := int(vm.readByte(frame))
			if err := vm.invoke(name, argCount); err != nil {
				return err
			}
			frame = &vm.frames[vm.frameCount-1]

		case OpSuperInvoke:
			name := vm.readString(frame)
			argCount := int(vm.readByte(frame))
			superclass := vm.pop().(*ObjClass)
			if err := vm.invokeFromClass(superclass, name, argCount); err != nil {
				return err
			}
			frame = &vm.frames[vm.frameCount-1]

		case OpClosure:
			fn := vm.readConstant(frame).(*ObjFunction)
			closure := NewClosure(fn)
			vm.GC.Track(closure)
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := vm.readByte(frame)
				index := int(vm.readByte(frame))
				if isLocal != 0 {
					closure.Upvalues[i] = vm.captureUpvalue(frame.base + index)
				} else {
					closure.Upvalues[i] = frame.closure.Upvalues[index]
				}
			}
			vm.push(closure)

		case OpCloseUpvalue:
			vm.closeUpvalues(vm.stackTop - 1)
			vm.pop()

		case OpClass:
			name := vm.readString(frame)
			class := NewClass(name)
			vm.GC.Track(class)
			vm.push(class)

		case OpInherit:
			superVal := vm.peek(1)
			superclass, ok := superVal.(*ObjClass)
			if !ok {
				return vm.runtimeError("Superclass must be a class.")
			}
			sub := vm.peek(0).(*ObjClass)
			superclass.Methods.AddAll(sub.Methods)
			vm.pop() // subclass stays reachable via the enclosing declaration

		case OpMethod:
			name := vm.readString(frame)
			vm.defineMethod(name)

		case OpReturn:
			result := vm.pop()
			vm.closeUpvalues(frame.base)
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop() // the reserved top-level slot
				return nil
			}
			vm.stackTop = frame.base
			vm.push(result)
			frame = &vm.frames[vm.frameCount-1]

		default:
			return vm.runtimeError("unimplemented opcode %d", op)
		}
	}
}

func (vm *VM) defineMethod(name *ObjString) {
	method := vm.peek(0).(*ObjClosure)
	class := vm.peek(1).(*ObjClass)
	class.Methods.Set(name, method)
	vm.pop()
}

// runtimeError implements spec §7's runtime-error reporting contract:
// write a diagnostic and a one-line-per-frame stack trace to Stderr, then
// reset the stack and frame count.
func (vm *VM) runtimeError(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(vm.Stderr, msg)

	for i := vm.frameCount - 1; i >= 0; i-- {
		fr := &vm.frames[i]
		fn := fr.closure.Function
		line := 0
		if idx := fr.ip - 1; idx >= 0 && idx < len(fn.Chunk.Lines) {
			line = fn.Chunk.Lines[idx]
		}
		name := "script"
		if fn.Name != nil {
			name = fn.Name.chars + "()"
		}
		fmt.Fprintf(vm.Stderr, "[line %d] in %s\n", line, name)
	}

	vm.stackTop = 0
	vm.frameCount = 0
	vm.openUpvalues = nil
	return &RuntimeError{Message: msg}
}
