package machine

// ObjString is an immutable, interned byte sequence with a cached hash
// (spec §3). Every ObjString in a running program is reachable from the
// interned-strings table in Strings, so string equality reduces to pointer
// equality (spec §3's invariants, §4.3's Equality rule).
type ObjString struct {
	header
	chars string
	hash  uint32
}

var (
	_ Obj   = (*ObjString)(nil)
	_ Value = (*ObjString)(nil)
)

func (s *ObjString) String() string  { return s.chars }
func (s *ObjString) Type() string    { return "string" }
func (s *ObjString) Kind() ObjKind   { return KindString }
func (s *ObjString) trace(*[]Obj)    {}
func (s *ObjString) approxSize() int { return 16 + len(s.chars) }

// fnvHash computes the 32-bit FNV-1a hash used to key interned strings,
// matching the hashing scheme clox uses for its string table.
func fnvHash(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}
