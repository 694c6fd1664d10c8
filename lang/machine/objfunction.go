package machine

import "fmt"

// ObjFunction is a compiled function: its arity, upvalue count, compiled
// chunk, and optional name (spec §3). It is immutable once the compiler
// finishes producing it.
type ObjFunction struct {
	header
	Name         *ObjString // nil for the implicit top-level script function
	Arity        int
	UpvalueCount int
	Chunk        Chunk
}

var _ Obj = (*ObjFunction)(nil)

func (f *ObjFunction) String() string {
	if f.Name == nil {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", f.Name.chars)
}
func (f *ObjFunction) Type() string  { return "function" }
func (f *ObjFunction) Kind() ObjKind { return KindFunction }

func (f *ObjFunction) trace(gray *[]Obj) {
	if f.Name != nil {
		*gray = append(*gray, f.Name)
	}
	for _, v := range f.Chunk.Constants {
		if o, ok := v.(Obj); ok {
			*gray = append(*gray, o)
		}
	}
}

func (f *ObjFunction) approxSize() int {
	return 64 + len(f.Chunk.Code) + len(f.Chunk.Constants)*8
}

// ObjNative wraps a host routine invokable from wisp code (spec §6's native
// ABI: a native receives (argc, args) and returns a single value).
type ObjNative struct {
	header
	Name string
	Fn   func(vm *VM, args []Value) (Value, error)
}

var _ Obj = (*ObjNative)(nil)

func (n *ObjNative) String() string  { return "<native>" }
func (n *ObjNative) Type() string    { return "native" }
func (n *ObjNative) Kind() ObjKind   { return KindNative }
func (n *ObjNative) trace(*[]Obj)    {}
func (n *ObjNative) approxSize() int { return 32 }
