package manifest

import "strconv"

// Traversable is a navigable view over a manifest value. Lookups never fail:
// navigating through a missing or mistyped value yields an entry that reports
// Exists() == false.
type Traversable struct {
	value    *Value
	keyRange *Range
	want     ValueKind
	typed    bool
	path     Path
}

// AsTraversable returns a traversable view of a resource parse's root map.
func AsTraversable(p *ResourceParse) Traversable {
	if p == nil {
		return Traversable{want: KindMap, typed: true}
	}
	return Traversable{value: p.Root, want: KindMap, typed: true}
}

// TraversableOf wraps an arbitrary value.
func TraversableOf(v *Value) Traversable {
	return Traversable{value: v}
}

// Exists reports whether the navigated-to value is present.
func (t Traversable) Exists() bool {
	return t.value != nil
}

// Valid reports whether the value is present and of the requested type.
func (t Traversable) Valid() bool {
	if t.value == nil {
		return false
	}
	return !t.typed || t.value.Kind == t.want
}

// Value returns the underlying value, or nil.
func (t Traversable) Value() *Value {
	return t.value
}

// Kind returns the kind of the underlying value. Missing values are null.
func (t Traversable) Kind() ValueKind {
	if t.value == nil {
		return KindNull
	}
	return t.value.Kind
}

// Text returns the scalar text, or "" for collections and missing values.
func (t Traversable) Text() string {
	if t.value == nil || !t.value.IsScalar() {
		return ""
	}
	return t.value.Text
}

// Number parses a numeric scalar.
func (t Traversable) Number() (float64, bool) {
	if t.value == nil || t.value.Kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(t.value.Text, 64)
	return f, err == nil
}

// Bool parses a boolean scalar.
func (t Traversable) Bool() (bool, bool) {
	if t.value == nil || t.value.Kind != KindBool {
		return false, false
	}
	var b bool
	if err := t.value.Decode(&b); err != nil {
		return false, false
	}
	return b, true
}

// Range returns the value's range. Missing values have an empty range.
func (t Traversable) Range() Range {
	if t.value == nil {
		return Range{}
	}
	return t.value.Range
}

// KeyRange returns the range of the key this value was reached through.
func (t Traversable) KeyRange() (Range, bool) {
	if t.keyRange == nil {
		return Range{}, false
	}
	return *t.keyRange, true
}

// Path returns the keys and indexes leading to this value.
func (t Traversable) Path() Path {
	return t.path
}

// Child navigates to key without a type expectation.
func (t Traversable) Child(key string) Traversable {
	return t.child(key, 0, false)
}

// Map navigates to key, expecting a map.
func (t Traversable) Map(key string) Traversable {
	return t.child(key, KindMap, true)
}

// Array navigates to key, expecting an array.
func (t Traversable) Array(key string) Traversable {
	return t.child(key, KindArray, true)
}

// String navigates to key, expecting a string.
func (t Traversable) String(key string) Traversable {
	return t.child(key, KindString, true)
}

// Index navigates to an array item without a type expectation.
func (t Traversable) Index(i int) Traversable {
	return t.item(i, 0, false)
}

// MapAt navigates to an array item, expecting a map.
func (t Traversable) MapAt(i int) Traversable {
	return t.item(i, KindMap, true)
}

// Items returns the children of an array, or the values of a map.
func (t Traversable) Items() []Traversable {
	if t.value == nil {
		return nil
	}
	switch t.value.Kind {
	case KindArray:
		out := make([]Traversable, len(t.value.Items))
		for i := range t.value.Items {
			out[i] = t.Index(i)
		}
		return out
	case KindMap:
		out := make([]Traversable, len(t.value.Entries))
		for i, e := range t.value.Entries {
			out[i] = t.Child(e.Key)
		}
		return out
	default:
		return nil
	}
}

// Keys returns the keys of a map in source order.
func (t Traversable) Keys() []string {
	if t.value == nil || t.value.Kind != KindMap {
		return nil
	}
	keys := make([]string, len(t.value.Entries))
	for i, e := range t.value.Entries {
		keys[i] = e.Key
	}
	return keys
}

func (t Traversable) child(key string, want ValueKind, typed bool) Traversable {
	next := Traversable{want: want, typed: typed, path: t.path.Key(key)}
	if !t.Valid() || t.value.Kind != KindMap {
		return next
	}
	if e := t.value.Entry(key); e != nil {
		next.value = e.Value
		kr := e.KeyRange
		next.keyRange = &kr
	}
	return next
}

func (t Traversable) item(i int, want ValueKind, typed bool) Traversable {
	next := Traversable{want: want, typed: typed, path: t.path.Index(i)}
	if !t.Valid() || t.value.Kind != KindArray || i < 0 || i >= len(t.value.Items) {
		return next
	}
	next.value = t.value.Items[i]
	return next
}

// HighlightRange is the range to underline for an entry: its key when it was
// reached through a key, otherwise the value itself.
func HighlightRange(t Traversable) Range {
	if kr, ok := t.KeyRange(); ok {
		return kr
	}
	return t.Range()
}

// PathElement is one step of a Path: a map key or an array index.
type PathElement struct {
	Key     string
	Index   int
	IsIndex bool
}

func (e PathElement) String() string {
	if e.IsIndex {
		return "[" + strconv.Itoa(e.Index) + "]"
	}
	return e.Key
}

// Path locates a value within a resource parse.
type Path []PathElement

// Key returns a new path extended with a map key.
func (p Path) Key(key string) Path {
	return append(p[:len(p):len(p)], PathElement{Key: key})
}

// Index returns a new path extended with an array index.
func (p Path) Index(i int) Path {
	return append(p[:len(p):len(p)], PathElement{Index: i, IsIndex: true})
}

func (p Path) String() string {
	out := ""
	for i, e := range p {
		if i > 0 && !e.IsIndex {
			out += "."
		}
		out += e.String()
	}
	return out
}
