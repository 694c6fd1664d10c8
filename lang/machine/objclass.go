package machine

import "fmt"

// ObjClass is a class value: its name and its method table (spec §3).
type ObjClass struct {
	header
	Name    *ObjString
	Methods *Table
}

var _ Obj = (*ObjClass)(nil)

func NewClass(name *ObjString) *ObjClass {
	return &ObjClass{Name: name, Methods: NewTable()}
}

func (c *ObjClass) String() string  { return fmt.Sprintf("<class '%s'>", c.Name.chars) }
func (c *ObjClass) Type() string    { return "class" }
func (c *ObjClass) Kind() ObjKind   { return KindClass }
func (c *ObjClass) approxSize() int { return 32 + c.Methods.count*16 }

func (c *ObjClass) trace(gray *[]Obj) {
	*gray = append(*gray, c.Name)
	c.Methods.trace(gray)
}

// ObjInstance is an instance of a class: a reference to its class and its
// own field table (spec §3).
type ObjInstance struct {
	header
	Class  *ObjClass
	Fields *Table
}

var _ Obj = (*ObjInstance)(nil)

func NewInstance(class *ObjClass) *ObjInstance {
	return &ObjInstance{Class: class, Fields: NewTable()}
}

func (i *ObjInstance) String() string  { return fmt.Sprintf("<'%s' object>", i.Class.Name.chars) }
func (i *ObjInstance) Type() string    { return "instance" }
func (i *ObjInstance) Kind() ObjKind   { return KindInstance }
func (i *ObjInstance) approxSize() int { return 32 + i.Fields.count*16 }

func (i *ObjInstance) trace(gray *[]Obj) {
	*gray = append(*gray, i.Class)
	i.Fields.trace(gray)
}

// ObjBoundMethod binds a receiver instance to a closure, produced by
// property access on a method name (spec §3, §4.6).
type ObjBoundMethod struct {
	header
	Receiver Value
	Method   *ObjClosure
}

var _ Obj = (*ObjBoundMethod)(nil)

func (b *ObjBoundMethod) String() string  { return b.Method.String() }
func (b *ObjBoundMethod) Type() string    { return "bound method" }
func (b *ObjBoundMethod) Kind() ObjKind   { return KindBoundMethod }
func (b *ObjBoundMethod) approxSize() int { return 24 }

func (b *ObjBoundMethod) trace(gray *[]Obj) {
	if o, ok := b.Receiver.(Obj); ok {
		*gray = append(*gray, o)
	}
	*gray = append(*gray, b.Method)
}
