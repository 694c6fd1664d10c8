package machine

// bucketState distinguishes an empty slot from a tombstone from a live
// entry, as an explicit three-state enum (spec §9's recommendation for a
// strongly typed port, rather than the source's "truthy value = tombstone"
// aliasing trick).
type bucketState uint8

const (
	bucketEmpty bucketState = iota
	bucketTombstone
	bucketLive
)

type entry struct {
	key   *ObjString
	value Value
	state bucketState
}

// Table is an open-addressed hash table with linear probing and a 75% max
// load factor (spec §4.4). It is used for the global environment, the
// interned-strings set, and every class's method table and every
// instance's field table.
type Table struct {
	entries []entry
	count   int // live entries + tombstones, used to decide when to grow
}

const tableMaxLoad = 0.75

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Get returns the value stored for key, or (nil, false) if key is absent.
func (t *Table) Get(key *ObjString) (Value, bool) {
	if len(t.entries) == 0 {
		return nil, false
	}
	e := t.find(key)
	if e.state != bucketLive {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, growing the table first if needed. It
// reports whether key was not already present.
func (t *Table) Set(key *ObjString, value Value) bool {
	if float64(t.count+1) > float64(len(t.entries))*tableMaxLoad {
		t.grow(growCapacity(len(t.entries)))
	}

	e := t.find(key)
	isNew := e.state != bucketLive
	if isNew && e.state == bucketEmpty {
		t.count++
	}
	e.key = key
	e.value = value
	e.state = bucketLive
	return isNew
}

// Delete removes key from the table, leaving a tombstone behind so that
// later probes for other keys that hashed into the same run still succeed
// (spec §4.4).
func (t *Table) Delete(key *ObjString) bool {
	if len(t.entries) == 0 {
		return false
	}
	e := t.find(key)
	if e.state != bucketLive {
		return false
	}
	e.key = nil
	e.value = Bool(true) // tombstone marker value, per spec's bucket discriminator
	e.state = bucketTombstone
	return true
}

// AddAll copies every live entry of t into dst (used by the `inherit`
// opcode to copy a superclass's methods into a subclass, spec §4.6).
func (t *Table) AddAll(dst *Table) {
	for i := range t.entries {
		if t.entries[i].state == bucketLive {
			dst.Set(t.entries[i].key, t.entries[i].value)
		}
	}
}

// FindString looks up an interned string by content without allocating a
// temporary ObjString, used only during string interning (spec §4.4).
func (t *Table) FindString(chars string, hash uint32) *ObjString {
	if len(t.entries) == 0 {
		return nil
	}
	capacity := len(t.entries)
	idx := int(hash) % capacity
	for {
		e := &t.entries[idx]
		switch e.state {
		case bucketEmpty:
			return nil
		case bucketLive:
			if e.key.hash == hash && e.key.chars == chars {
				return e.key
			}
		}
		idx = (idx + 1) % capacity
	}
}

// removeWhite erases every entry whose key string is not marked, called by
// the collector before sweeping so the interned-strings table never keeps a
// dangling reference to a freed string (spec §4.4, §4.5).
func (t *Table) removeWhite() {
	for i := range t.entries {
		if t.entries[i].state == bucketLive && !t.entries[i].key.marked() {
			t.entries[i].key = nil
			t.entries[i].value = Bool(true)
			t.entries[i].state = bucketTombstone
		}
	}
}

// Roots returns every live key and value object in t, used to feed the
// collector's root set (the global environment is root #4 of spec §4.5).
func (t *Table) Roots() []Obj {
	var out []Obj
	t.trace(&out)
	return out
}

// trace marks every live key and value as roots for the collector (spec
// §4.5's tracing rule for Class/Instance: "strong on keys and values").
func (t *Table) trace(gray *[]Obj) {
	for i := range t.entries {
		if t.entries[i].state != bucketLive {
			continue
		}
		*gray = append(*gray, t.entries[i].key)
		if o, ok := t.entries[i].value.(Obj); ok {
			*gray = append(*gray, o)
		}
	}
}

func (t *Table) find(key *ObjString) *entry {
	capacity := len(t.entries)
	idx := int(key.hash) % capacity
	var tombstone *entry
	for {
		e := &t.entries[idx]
		switch e.state {
		case bucketEmpty:
			if tombstone != nil {
				return tombstone
			}
			return e
		case bucketTombstone:
			if tombstone == nil {
				tombstone = e
			}
		case bucketLive:
			if e.key == key {
				return e
			}
		}
		idx = (idx + 1) % capacity
	}
}

func (t *Table) grow(newCap int) {
	old := t.entries
	t.entries = make([]entry, newCap)
	t.count = 0
	for i := range old {
		if old[i].state != bucketLive {
			continue
		}
		e := t.find(old[i].key)
		e.key = old[i].key
		e.value = old[i].value
		e.state = bucketLive
		t.count++
	}
}

func growCapacity(capacity int) int {
	if capacity < 8 {
		return 8
	}
	return capacity * 2
}
