package lint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/manifest"
)

// Syntax reads a document in one manifest format.
type Syntax interface {
	// Load decodes every resource document in text.
	Load(text string) ([]any, error)
	// Parse returns the position-tracked parses of doc.
	Parse(doc Document) []*manifest.ResourceParse
}

// Impl is a linter written against a Syntax rather than a language id.
type Impl interface {
	Name() string
	Lint(ctx context.Context, doc Document, syntax Syntax) ([]Diagnostic, error)
	CodeActions(ctx context.Context, doc Document, rng Range, cac CodeActionContext, syntax Syntax) ([]CodeAction, error)
}

// Standard exposes impl as a Linter. It selects the syntax from the
// document's language id and returns nothing for other languages.
func Standard(impl Impl) Linter {
	return &standard{impl: impl}
}

type standard struct {
	impl Impl
}

func (s *standard) Name() string { return s.impl.Name() }

func (s *standard) Lint(ctx context.Context, doc Document) ([]Diagnostic, error) {
	syntax, ok := SyntaxFor(doc.LanguageID())
	if !ok {
		return nil, nil
	}
	return s.impl.Lint(ctx, doc, syntax)
}

func (s *standard) CodeActions(ctx context.Context, doc Document, rng Range, cac CodeActionContext) ([]CodeAction, error) {
	syntax, ok := SyntaxFor(doc.LanguageID())
	if !ok {
		return nil, nil
	}
	return s.impl.CodeActions(ctx, doc, rng, cac, syntax)
}

// SyntaxFor returns the syntax for a language id.
func SyntaxFor(languageID string) (Syntax, bool) {
	switch languageID {
	case LanguageYAML:
		return yamlSyntax{}, true
	case LanguageJSON:
		return jsonSyntax{}, true
	default:
		return nil, false
	}
}

type yamlSyntax struct{}

func (yamlSyntax) Load(text string) ([]any, error) {
	dec := yaml.NewDecoder(strings.NewReader(text))
	var out []any
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("loading yaml: %w", err)
		}
		out = append(out, v)
	}
}

func (yamlSyntax) Parse(doc Document) []*manifest.ResourceParse {
	return manifest.ParseYAML(doc.Text())
}

type jsonSyntax struct{}

// Load decodes with the YAML decoder, which accepts JSON as a subset.
func (jsonSyntax) Load(text string) ([]any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("loading json: %w", err)
	}
	return []any{v}, nil
}

func (jsonSyntax) Parse(doc Document) []*manifest.ResourceParse {
	return manifest.ParseJSON(doc.Text())
}

// RangeOf converts a manifest range to a document range.
func RangeOf(doc Document, r manifest.Range) Range {
	return Range{Start: doc.PositionAt(r.Start), End: doc.PositionAt(r.End)}
}

// WarningOn creates a warning highlighting t's key, or t itself when it has
// no key.
func WarningOn(doc Document, t manifest.Traversable, message string) Diagnostic {
	return Diagnostic{
		Range:    RangeOf(doc, manifest.HighlightRange(t)),
		Message:  message,
		Severity: SeverityWarning,
	}
}
