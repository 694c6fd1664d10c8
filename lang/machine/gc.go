package machine

// GC implements tri-colour mark-and-sweep collection over every heap object
// allocated through it (spec §4.5). It cooperates with the VM (which
// supplies most roots) and the compiler (which registers its own in-flight
// function objects as an extra root source while it is still compiling, per
// spec root #5).
type GC struct {
	objects []Obj // every live object, in allocation order (spec §9's owned vector)
	gray    []Obj // worklist of marked-but-untraced objects

	bytesAllocated int
	nextGC         int

	// Stress, when true, forces a collection before every allocation
	// (spec §4.5's debug-only stress mode).
	Stress bool

	// roots is consulted at the start of every collection to gather
	// additional root objects: the VM installs its stack/frames/globals/
	// open-upvalues roots here, and the compiler installs its own in-flight
	// function chain while compiling (spec §4.5's six enumerated root kinds).
	roots []func() []Obj

	// Strings is the interned-strings table (spec §3's invariant that every
	// string object lives in exactly one such table).
	Strings *Table
}

const gcGrowthFactor = 2

// NewGC returns a collector with the default initial threshold.
func NewGC() *GC {
	return &GC{
		nextGC:  1 << 20,
		Strings: NewTable(),
	}
}

// AddRootSource registers a function that returns additional GC roots each
// collection. The VM and the compiler both call this once, at setup.
func (gc *GC) AddRootSource(f func() []Obj) {
	gc.roots = append(gc.roots, f)
}

// Track registers a newly allocated object with the collector, running a
// collection first if the allocation policy calls for one.
func (gc *GC) Track(o Obj) {
	// Collect before o joins gc.objects, not after: o isn't reachable from
	// any root yet, so sweeping while it's already in the list would treat
	// it as garbage and free it out from under its caller (clox's
	// reallocate order).
	if gc.Stress || gc.bytesAllocated+o.approxSize() > gc.nextGC {
		gc.Collect()
	}

	gc.objects = append(gc.objects, o)
	gc.bytesAllocated += o.approxSize()
}

// Collect runs one full mark-and-sweep pass.
func (gc *GC) Collect() {
	gc.markRoots()
	gc.traceReferences()
	gc.Strings.removeWhite()
	gc.sweep()

	gc.nextGC = gc.bytesAllocated * gcGrowthFactor
	if gc.nextGC < 1<<16 {
		gc.nextGC = 1 << 16
	}
}

func (gc *GC) markRoots() {
	for _, src := range gc.roots {
		for _, o := range src() {
			gc.mark(o)
		}
	}
}

// mark adds o to the gray worklist if it is not already marked.
func (gc *GC) mark(o Obj) {
	if o == nil || o.marked() {
		return
	}
	o.setMarked(true)
	gc.gray = append(gc.gray, o)
}

// MarkValue marks v if it holds a heap object.
func (gc *GC) MarkValue(v Value) {
	if o, ok := v.(Obj); ok {
		gc.mark(o)
	}
}

func (gc *GC) traceReferences() {
	var children []Obj
	for len(gc.gray) > 0 {
		n := len(gc.gray) - 1
		o := gc.gray[n]
		gc.gray = gc.gray[:n]
		children = children[:0]
		o.trace(&children)
		for _, c := range children {
			gc.mark(c)
		}
	}
}

// sweep walks the allocation-ordered object list, drops every unmarked
// object (so nothing in this package still references it, letting the Go
// runtime reclaim its memory), and clears the mark bit on survivors.
func (gc *GC) sweep() {
	live := gc.objects[:0]
	bytes := 0
	for _, o := range gc.objects {
		if o.marked() {
			o.setMarked(false)
			live = append(live, o)
			bytes += o.approxSize()
		}
	}
	gc.objects = live
	gc.bytesAllocated = bytes
}

// NewString interns chars, returning the existing ObjString if one with the
// same content already exists, or allocating and registering a new one
// otherwise (spec §4.4's find-string operation, §3's interning invariant).
func (gc *GC) NewString(chars string) *ObjString {
	hash := fnvHash(chars)
	if existing := gc.Strings.FindString(chars, hash); existing != nil {
		return existing
	}

	s := &ObjString{chars: chars, hash: hash}
	gc.Track(s)
	// The new string is not yet reachable from any root other than the
	// interned table itself; inserting it before any further allocation
	// keeps it safe (spec §4.5's allocator contract).
	gc.Strings.Set(s, Nil)
	return s
}
