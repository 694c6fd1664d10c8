package machine

// ObjClosure pairs a compiled function with the concrete set of upvalues it
// closed over (spec §3).
type ObjClosure struct {
	header
	Function *ObjFunction
	Upvalues []*ObjUpvalue
}

var _ Obj = (*ObjClosure)(nil)

func NewClosure(fn *ObjFunction) *ObjClosure {
	return &ObjClosure{Function: fn, Upvalues: make([]*ObjUpvalue, fn.UpvalueCount)}
}

func (c *ObjClosure) String() string { return c.Function.String() }
func (c *ObjClosure) Type() string   { return "closure" }
func (c *ObjClosure) Kind() ObjKind  { return KindClosure }
func (c *ObjClosure) Name() string {
	if c.Function.Name == nil {
		return "script"
	}
	return c.Function.Name.chars
}

func (c *ObjClosure) trace(gray *[]Obj) {
	*gray = append(*gray, c.Function)
	for _, uv := range c.Upvalues {
		if uv != nil {
			*gray = append(*gray, uv)
		}
	}
}

func (c *ObjClosure) approxSize() int { return 16 + len(c.Upvalues)*8 }

// ObjUpvalue is the runtime representation of a captured local: open while
// it still aliases a live stack slot, closed once the slot it aliased has
// been popped (spec §3, §4.6).
type ObjUpvalue struct {
	header
	// Location points into the VM's value stack while the upvalue is open;
	// once closed, it points at Closed instead (spec invariant, §3). slot
	// holds the stack index Location aliases while open, so the VM can order
	// upvalues by descending stack address without comparing pointers (Go
	// forbids ordering comparisons on pointers).
	Location *Value
	slot     int
	Closed   Value
	// Next links this upvalue into the VM's open-upvalue list, which is kept
	// sorted by descending stack address (spec §4.1's Open-upvalue list).
	Next *ObjUpvalue
}

var _ Obj = (*ObjUpvalue)(nil)

func (u *ObjUpvalue) String() string  { return "<upvalue>" }
func (u *ObjUpvalue) Type() string    { return "upvalue" }
func (u *ObjUpvalue) Kind() ObjKind   { return KindUpvalue }
func (u *ObjUpvalue) approxSize() int { return 32 }

func (u *ObjUpvalue) get() Value  { return *u.Location }
func (u *ObjUpvalue) set(v Value) { *u.Location = v }

// close severs the upvalue from the stack slot it aliased, copying out the
// slot's current value so it survives the frame that owned it (spec §4.6).
func (u *ObjUpvalue) close() {
	u.Closed = *u.Location
	u.Location = &u.Closed
}

func (u *ObjUpvalue) trace(gray *[]Obj) {
	if o, ok := u.Closed.(Obj); ok {
		*gray = append(*gray, o)
	}
}
