// Package manifest parses Kubernetes YAML and JSON manifests into range-tracked
// value trees. Ranges are character (rune) offsets into the source text, so a
// document can convert them to line/column positions itself.
package manifest

import (
	"gopkg.in/yaml.v3"
)

// Range is a half-open span of character offsets into a manifest's text.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether offset lies within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Len returns the number of characters the range spans.
func (r Range) Len() int {
	return r.End - r.Start
}

// ValueKind identifies the type of a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindMap
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is one node of a parsed manifest.
type Value struct {
	Kind  ValueKind
	Range Range

	// Text is the decoded scalar value. Empty for maps and arrays.
	Text string

	// Entries holds the keyed children of a map, in source order.
	Entries []*MapEntry

	// Items holds the children of an array, in source order.
	Items []*Value

	// Flow is set for collections written in flow ({...} or [...]) syntax,
	// which includes every JSON collection.
	Flow bool

	// column is the zero-based column the value starts at.
	column int
	node   *yaml.Node
}

// MapEntry is a keyed child of a map value.
type MapEntry struct {
	Key      string
	KeyRange Range
	Value    *Value

	keyColumn int
}

// Entry returns the entry for key, or nil if v is not a map or has no such key.
func (v *Value) Entry(key string) *MapEntry {
	if v == nil || v.Kind != KindMap {
		return nil
	}
	for _, e := range v.Entries {
		if e.Key == key {
			return e
		}
	}
	return nil
}

// IsScalar reports whether v is a string, number, boolean or null.
func (v *Value) IsScalar() bool {
	return v != nil && v.Kind != KindMap && v.Kind != KindArray
}

// Decode unmarshals the value into out using YAML decoding rules.
func (v *Value) Decode(out any) error {
	if v == nil || v.node == nil {
		return nil
	}
	return v.node.Decode(out)
}

// ResourceParse is one resource document of a manifest file.
type ResourceParse struct {
	// Root is the top-level map of the document.
	Root *Value

	// Index is the position of the document within its file, counting only
	// documents that parsed to a map.
	Index int
}

// Kind returns the resource's kind field, or "" if it has none.
func (p *ResourceParse) Kind() string {
	if p == nil {
		return ""
	}
	return AsTraversable(p).String("kind").Text()
}

// IsKind reports whether the parse describes a resource of the given manifest kind.
func IsKind(p *ResourceParse, kind string) bool {
	k := AsTraversable(p).String("kind")
	return k.Valid() && k.Text() == kind
}

// TextEdit replaces the text in Range with NewText. An insertion has an
// empty range.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}
