package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotMap is returned when a merge target is not a map.
var ErrNotMap = errors.New("merge target is not a map")

const blockIndentStep = 2

// Merge computes the edits that merge value into the target map of text.
// Existing scalars are replaced in place, nested maps are merged recursively
// and missing keys are appended after the target's last entry, in key order.
// Entries not named in value keep their text, order and formatting.
func Merge(text string, target *Value, value map[string]any) ([]TextEdit, error) {
	if target == nil || target.Kind != KindMap {
		return nil, ErrNotMap
	}
	m := &merger{src: newSource(text), newline: "\n"}
	if strings.Contains(text, "\r\n") {
		m.newline = "\r\n"
	}
	if err := m.merge(target, value); err != nil {
		return nil, err
	}
	return m.edits, nil
}

type merger struct {
	src     *source
	newline string
	edits   []TextEdit
}

func (m *merger) merge(target *Value, value map[string]any) error {
	keys := slices.Sorted(maps.Keys(value))

	var missing []string
	for _, key := range keys {
		e := target.Entry(key)
		if e == nil {
			missing = append(missing, key)
			continue
		}
		nv := value[key]
		if sub, ok := asMap(nv); ok && e.Value.Kind == KindMap {
			if err := m.merge(e.Value, sub); err != nil {
				return fmt.Errorf("merging %q: %w", key, err)
			}
			continue
		}
		text, err := m.inline(nv, target.Flow)
		if err != nil {
			return fmt.Errorf("rendering %q: %w", key, err)
		}
		r := e.Value.Range
		if e.Value.Kind == KindNull && r.Len() == 0 && !target.Flow {
			text = " " + text
		}
		m.edits = append(m.edits, TextEdit{Range: r, NewText: text})
	}

	if len(missing) == 0 {
		return nil
	}
	if target.Flow {
		return m.appendFlow(target, missing, value)
	}
	return m.appendBlock(target, missing, value)
}

func (m *merger) appendFlow(target *Value, keys []string, value map[string]any) error {
	var b strings.Builder
	for i, key := range keys {
		if i > 0 || len(target.Entries) > 0 {
			b.WriteString(", ")
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value[key])
		if err != nil {
			return fmt.Errorf("rendering %q: %w", key, err)
		}
		b.Write(k)
		b.WriteString(": ")
		b.Write(v)
	}

	// Insert after the last entry, or just inside the opening brace.
	at := target.Range.Start + 1
	if n := len(target.Entries); n > 0 {
		at = target.Entries[n-1].Value.Range.End
	}
	m.edits = append(m.edits, TextEdit{Range: Range{Start: at, End: at}, NewText: b.String()})
	return nil
}

func (m *merger) appendBlock(target *Value, keys []string, value map[string]any) error {
	last := target.Entries[len(target.Entries)-1]
	indent := strings.Repeat(" ", last.keyColumn)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(m.newline)
		b.WriteString(indent)
		b.WriteString(yamlKey(key))
		b.WriteString(":")

		nv := value[key]
		if isCollection(nv) {
			block, err := yamlBlock(nv)
			if err != nil {
				return fmt.Errorf("rendering %q: %w", key, err)
			}
			childIndent := indent + strings.Repeat(" ", blockIndentStep)
			for _, line := range block {
				b.WriteString(m.newline)
				b.WriteString(childIndent)
				b.WriteString(line)
			}
			continue
		}
		text, err := yamlScalar(nv)
		if err != nil {
			return fmt.Errorf("rendering %q: %w", key, err)
		}
		b.WriteString(" ")
		b.WriteString(text)
	}

	// Insert at the end of the line holding the last entry so that any trailing
	// comment stays with it.
	end := last.Value.Range.End
	if k := last.KeyRange.End; k > end {
		end = k
	}
	at := m.src.lineEnd(end)
	m.edits = append(m.edits, TextEdit{Range: Range{Start: at, End: at}, NewText: b.String()})
	return nil
}

// inline renders a replacement value: JSON inside flow collections, YAML
// scalars (or JSON-style flow collections) inside block ones.
func (m *merger) inline(v any, flow bool) (string, error) {
	if flow || isCollection(v) {
		b, err := json.Marshal(v)
		return string(b), err
	}
	return yamlScalar(v)
}

func yamlScalar(v any) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\n"), nil
}

func yamlKey(key string) string {
	s, err := yamlScalar(key)
	if err != nil {
		return key
	}
	return s
}

func yamlBlock(v any) ([]string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(blockIndentStep)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n"), nil
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func isCollection(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return rv.Len() > 0
	default:
		return false
	}
}

// ApplyEdits applies non-overlapping edits to text. Edits may be in any order.
func ApplyEdits(text string, edits []TextEdit) string {
	sorted := slices.Clone(edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Range.Start > sorted[j].Range.Start
	})
	runes := []rune(text)
	for _, e := range sorted {
		start := min(max(e.Range.Start, 0), len(runes))
		end := min(max(e.Range.End, start), len(runes))
		runes = append(runes[:start:start], append([]rune(e.NewText), runes[end:]...)...)
	}
	return string(runes)
}
