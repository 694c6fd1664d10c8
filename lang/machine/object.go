package machine

// ObjKind identifies which of the eight heap object kinds a Value holds
// (spec §3's closed set: String, Function, Closure, Upvalue, Native, Class,
// Instance, BoundMethod).
type ObjKind uint8

const (
	KindString ObjKind = iota
	KindFunction
	KindClosure
	KindUpvalue
	KindNative
	KindClass
	KindInstance
	KindBoundMethod
)

func (k ObjKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindClosure:
		return "closure"
	case KindUpvalue:
		return "upvalue"
	case KindNative:
		return "native"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	case KindBoundMethod:
		return "bound method"
	default:
		return "unknown object"
	}
}

// Obj is implemented by every heap object kind. The garbage collector's
// owned registry (gc.go) replaces the source's intrusive "next object"
// linked list (spec §9): objects are referenced normally (as Go pointers)
// by the rest of the machine, but the GC tracks the set of allocated
// objects itself, in the order they were allocated, and removes entries
// from that set on sweep. The underlying Go runtime, not this package,
// performs the actual memory reclamation once an object is unreferenced;
// the mark-sweep pass here exists to enforce the VM-level allocation and
// collection invariants spec §4.5 and §8 require (byte accounting,
// threshold growth, stress mode), which is observable independently of
// when Go's own collector happens to run.
type Obj interface {
	Value
	Kind() ObjKind

	marked() bool
	setMarked(bool)
	// trace appends every Value this object directly references to gray,
	// implementing the blackening rules of spec §4.5.
	trace(gray *[]Obj)
	// approxSize is used for the GC's byte-accounting invariant; it need not
	// be exact, only consistent between allocation and collection.
	approxSize() int
}

// header is embedded by every concrete object type to provide the mark bit
// the collector needs without requiring callers to manage it directly.
type header struct {
	mark bool
}

func (h *header) marked() bool     { return h.mark }
func (h *header) setMarked(v bool) { h.mark = v }
