// Package lint runs linters over Kubernetes manifests open in an editor and
// collects their diagnostics and code actions.
package lint

import (
	"sort"
	"strings"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/host"
)

// Language ids of documents that can be linted.
const (
	LanguageYAML = "yaml"
	LanguageJSON = "json"
)

// Position is a zero-based line and character. Characters count Unicode code
// points, the same unit as manifest offsets.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Before reports whether p is before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Character < other.Character
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Intersects reports whether r and other overlap or touch.
func (r Range) Intersects(other Range) bool {
	return !r.End.Before(other.Start) && !other.End.Before(r.Start)
}

// Document is an open text document.
type Document interface {
	URI() string
	LanguageID() string
	Text() string
	PositionAt(offset int) Position
	OffsetAt(pos Position) int
}

// IsLintable reports whether the document is a manifest format linters
// understand.
func IsLintable(doc Document) bool {
	switch doc.LanguageID() {
	case LanguageYAML, LanguageJSON:
		return true
	default:
		return false
	}
}

// TextDocument is an in-memory Document.
type TextDocument struct {
	uri        string
	languageID string
	text       string
	runes      []rune
	lineStarts []int
}

var _ Document = (*TextDocument)(nil)

func NewTextDocument(uri, languageID, text string) *TextDocument {
	runes := []rune(text)
	starts := []int{0}
	for i, r := range runes {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &TextDocument{uri: uri, languageID: languageID, text: text, runes: runes, lineStarts: starts}
}

func (d *TextDocument) URI() string        { return d.uri }
func (d *TextDocument) LanguageID() string { return d.languageID }
func (d *TextDocument) Text() string       { return d.text }

// PositionAt converts an offset to a position, clamping to the document.
func (d *TextDocument) PositionAt(offset int) Position {
	offset = min(max(offset, 0), len(d.runes))
	line := sort.Search(len(d.lineStarts), func(i int) bool { return d.lineStarts[i] > offset }) - 1
	return Position{Line: line, Character: offset - d.lineStarts[line]}
}

// OffsetAt converts a position to an offset, clamping to the line.
func (d *TextDocument) OffsetAt(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(d.lineStarts) {
		return len(d.runes)
	}
	start := d.lineStarts[pos.Line]
	end := len(d.runes)
	if pos.Line+1 < len(d.lineStarts) {
		end = d.lineStarts[pos.Line+1] - 1
	}
	return start + min(max(pos.Character, 0), end-start)
}

// LineCount returns the number of lines, counting a trailing empty line.
func (d *TextDocument) LineCount() int {
	return len(d.lineStarts)
}

// Line returns the text of a line without its terminator.
func (d *TextDocument) Line(n int) string {
	if n < 0 || n >= len(d.lineStarts) {
		return ""
	}
	end := len(d.runes)
	if n+1 < len(d.lineStarts) {
		end = d.lineStarts[n+1]
	}
	return strings.TrimRight(string(d.runes[d.lineStarts[n]:end]), "\r\n")
}

// Severity of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInformation
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "information"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Diagnostic is a finding shown in the editor. Data is opaque to the editor
// and comes back unchanged in code action requests.
type Diagnostic struct {
	Range    Range    `json:"range"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Code     string   `json:"code,omitempty"`
	Source   string   `json:"source,omitempty"`
	Data     any      `json:"-"`
}

// CodeActionContext carries the diagnostics at the requested range.
type CodeActionContext struct {
	Diagnostics []Diagnostic
	Only        []string
}

type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// WorkspaceEdit holds text edits keyed by document URI.
type WorkspaceEdit struct {
	Changes map[string][]TextEdit `json:"changes"`
}

// Add appends an edit for uri.
func (w *WorkspaceEdit) Add(uri string, edit TextEdit) {
	if w.Changes == nil {
		w.Changes = map[string][]TextEdit{}
	}
	w.Changes[uri] = append(w.Changes[uri], edit)
}

// Code action kinds.
const (
	CodeActionQuickFix = "quickfix"
)

// CodeAction is an edit, a command, or both, offered for a range. An action
// with only a command set is a bare command.
type CodeAction struct {
	Title       string         `json:"title"`
	Kind        string         `json:"kind,omitempty"`
	Diagnostics []Diagnostic   `json:"diagnostics,omitempty"`
	Edit        *WorkspaceEdit `json:"edit,omitempty"`
	Command     *host.Command  `json:"command,omitempty"`
}
