package manifest

import (
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses every document of a YAML stream. Documents that are empty,
// unparseable or whose root is not a map are skipped; parsing stops at the
// first syntax error. Parse failure is never reported as an error.
func ParseYAML(text string) []*ResourceParse {
	src := newSource(text)
	dec := yaml.NewDecoder(strings.NewReader(text))

	var parses []*ResourceParse
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			break
		}
		if p := src.document(&doc); p != nil {
			p.Index = len(parses)
			parses = append(parses, p)
		}
	}
	return parses
}

// ParseJSON parses a JSON manifest. JSON is read with the YAML parser, which
// accepts it as flow syntax, so ranges are computed the same way.
func ParseJSON(text string) []*ResourceParse {
	src := newSource(text)
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil
	}
	if p := src.document(&doc); p != nil {
		return []*ResourceParse{p}
	}
	return nil
}

// Parse dispatches on an editor language id. Languages other than yaml and
// json yield no parses.
func Parse(languageID, text string) []*ResourceParse {
	switch languageID {
	case "yaml":
		return ParseYAML(text)
	case "json":
		return ParseJSON(text)
	default:
		return nil
	}
}

// source maps yaml.v3 line/column marks (1-based, counted in characters)
// to character offsets.
type source struct {
	text       []rune
	lineStarts []int
}

func newSource(text string) *source {
	runes := []rune(text)
	starts := []int{0}
	for i, r := range runes {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &source{text: runes, lineStarts: starts}
}

func (s *source) offset(line, column int) int {
	if line < 1 {
		return 0
	}
	if line > len(s.lineStarts) {
		return len(s.text)
	}
	off := s.lineStarts[line-1] + column - 1
	if off < 0 {
		return 0
	}
	if off > len(s.text) {
		return len(s.text)
	}
	return off
}

// lineEnd returns the offset of the end of the line containing off,
// excluding the line terminator.
func (s *source) lineEnd(off int) int {
	for off < len(s.text) && s.text[off] != '\n' {
		off++
	}
	if off > 0 && off <= len(s.text) && s.text[off-1] == '\r' {
		off--
	}
	return off
}

func (s *source) document(doc *yaml.Node) *ResourceParse {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}
	return &ResourceParse{Root: s.value(root, -1)}
}

// value converts a yaml node. indent is the column of the owning key or
// sequence indicator, used to find where block scalars end.
func (s *source) value(n *yaml.Node, indent int) *Value {
	v := &Value{node: n, column: n.Column - 1}
	start := s.offset(n.Line, n.Column)

	switch n.Kind {
	case yaml.MappingNode:
		v.Kind = KindMap
		v.Flow = n.Style&yaml.FlowStyle != 0
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, val := n.Content[i], n.Content[i+1]
			entry := &MapEntry{
				Key:       k.Value,
				KeyRange:  s.scalarRange(k, indent),
				keyColumn: k.Column - 1,
			}
			if isEmptyNull(val) {
				at := s.afterColon(entry.KeyRange.End)
				entry.Value = &Value{Kind: KindNull, Range: Range{Start: at, End: at}, node: val, column: at - s.lineStartOf(at)}
			} else {
				entry.Value = s.value(val, k.Column-1)
			}
			v.Entries = append(v.Entries, entry)
		}
		v.Range = s.collectionRange(v, start)
	case yaml.SequenceNode:
		v.Kind = KindArray
		v.Flow = n.Style&yaml.FlowStyle != 0
		for _, item := range n.Content {
			v.Items = append(v.Items, s.value(item, n.Column-1))
		}
		v.Range = s.collectionRange(v, start)
	case yaml.AliasNode:
		v.Kind = KindString
		v.Text = "*" + n.Value
		v.Range = Range{Start: start, End: s.scanPlain(start, v.Text)}
	default:
		v.Kind = scalarKind(n)
		v.Text = n.Value
		v.Range = s.scalarRange(n, indent)
	}
	return v
}

func (s *source) collectionRange(v *Value, start int) Range {
	if v.Flow {
		return Range{Start: start, End: s.matchBracket(start)}
	}
	end := start
	switch {
	case len(v.Entries) > 0:
		end = v.Entries[len(v.Entries)-1].Value.Range.End
		if k := v.Entries[len(v.Entries)-1].KeyRange.End; k > end {
			end = k
		}
	case len(v.Items) > 0:
		end = v.Items[len(v.Items)-1].Range.End
	}
	return Range{Start: start, End: end}
}

func (s *source) lineStartOf(off int) int {
	for off > 0 && s.text[off-1] != '\n' {
		off--
	}
	return off
}

func (s *source) afterColon(off int) int {
	for off < len(s.text) && (s.text[off] == ' ' || s.text[off] == '\t') {
		off++
	}
	if off < len(s.text) && s.text[off] == ':' {
		off++
	}
	return off
}

func isEmptyNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Value == "" && n.ShortTag() == "!!null" && n.Style == 0
}

func scalarKind(n *yaml.Node) ValueKind {
	switch n.ShortTag() {
	case "!!int", "!!float":
		return KindNumber
	case "!!bool":
		return KindBool
	case "!!null":
		return KindNull
	default:
		return KindString
	}
}

func (s *source) scalarRange(n *yaml.Node, indent int) Range {
	start := s.offset(n.Line, n.Column)
	var end int
	switch {
	case n.Style&yaml.DoubleQuotedStyle != 0:
		end = s.scanQuoted(start, '"')
	case n.Style&yaml.SingleQuotedStyle != 0:
		end = s.scanQuoted(start, '\'')
	case n.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0:
		end = s.scanBlockScalar(start, indent)
	default:
		end = s.scanPlain(start, n.Value)
	}
	return Range{Start: start, End: end}
}

func (s *source) scanPlain(start int, value string) int {
	want := []rune(value)
	end := start + len(want)
	if end <= len(s.text) && string(s.text[start:end]) == value {
		return end
	}
	// Multi-line plain scalar or one the parser normalised; fall back to the
	// rest of the line without any trailing comment.
	lineEnd := s.lineEnd(start)
	end = lineEnd
	for i := start; i < lineEnd; i++ {
		if s.text[i] == '#' && i > start && (s.text[i-1] == ' ' || s.text[i-1] == '\t') {
			end = i
			break
		}
	}
	for end > start && (s.text[end-1] == ' ' || s.text[end-1] == '\t') {
		end--
	}
	return end
}

func (s *source) scanQuoted(start int, quote rune) int {
	i := start + 1
	for i < len(s.text) {
		c := s.text[i]
		switch {
		case quote == '"' && c == '\\':
			i += 2
			continue
		case c == quote:
			if quote == '\'' && i+1 < len(s.text) && s.text[i+1] == '\'' {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return len(s.text)
}

// scanBlockScalar finds the end of a literal or folded scalar: the last
// non-blank line indented deeper than the owning key.
func (s *source) scanBlockScalar(start, indent int) int {
	end := s.lineEnd(start)
	i := end
	for i < len(s.text) {
		if s.text[i] == '\r' {
			i++
		}
		if i < len(s.text) && s.text[i] == '\n' {
			i++
		}
		lineStart := i
		lineEnd := s.lineEnd(lineStart)
		if i >= len(s.text) {
			break
		}
		col := 0
		for lineStart+col < lineEnd && s.text[lineStart+col] == ' ' {
			col++
		}
		if lineStart+col == lineEnd {
			i = lineEnd
			continue
		}
		if col <= indent {
			break
		}
		end = lineEnd
		i = lineEnd
	}
	return end
}

// matchBracket returns the offset just past the bracket closing the one at start.
func (s *source) matchBracket(start int) int {
	depth := 0
	for i := start; i < len(s.text); i++ {
		switch c := s.text[i]; c {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		case '"', '\'':
			i = s.scanQuoted(i, c) - 1
		}
	}
	return len(s.text)
}
