// Package diagnostics is version 2 of the diagnostics contract. Besides v1
// contributors it accepts contributors written against parsed manifests, in
// one of five shapes, which report simplified diagnostics and fixes.
package diagnostics

import (
	"context"
	"errors"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/lint"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/manifest"
)

var (
	// ErrUnclassifiableContributor is returned when a contributor does not
	// implement exactly one analysis shape.
	ErrUnclassifiableContributor = errors.New("contributor does not implement exactly one diagnostics shape")
	// ErrUnknownEditKind is returned when an action's edit is neither an
	// insert nor a merge.
	ErrUnknownEditKind = errors.New("unknown edit kind")
)

// Diagnostic is a finding located by character offsets in the analysed
// document. Metadata is returned to the contributor with code action
// requests.
type Diagnostic = manifest.Diagnostic

// Severity levels for Diagnostic.
const (
	SeverityError       = manifest.SeverityError
	SeverityWarning     = manifest.SeverityWarning
	SeverityInformation = manifest.SeverityInformation
	SeverityHint        = manifest.SeverityHint
)

// Contributor is any v2 diagnostics contributor. It must also implement
// exactly one of DocumentDiagnoser, ResourceParsesDiagnoser,
// ResourceParseDiagnoser, ResourceDiagnoser and ResourceParseEvaluatorDiagnoser.
type Contributor interface {
	Name() string
}

// DocumentDiagnoser analyses the raw document and reports editor diagnostics.
// It may also implement NativeCodeActioner.
type DocumentDiagnoser interface {
	Contributor
	AnalyseDocument(ctx context.Context, doc lint.Document) ([]lint.Diagnostic, error)
}

// ResourceParsesDiagnoser analyses every resource of a document at once.
type ResourceParsesDiagnoser interface {
	Contributor
	AnalyseResourceParses(ctx context.Context, doc lint.Document, parses []*manifest.ResourceParse) ([]Diagnostic, error)
}

// ResourceParseDiagnoser analyses one resource at a time.
type ResourceParseDiagnoser interface {
	Contributor
	AnalyseResourceParse(ctx context.Context, doc lint.Document, parse *manifest.ResourceParse) ([]Diagnostic, error)
}

// ResourceDiagnoser analyses one resource at a time through a traversable
// view of it.
type ResourceDiagnoser interface {
	Contributor
	AnalyseResource(ctx context.Context, doc lint.Document, resource manifest.Traversable) ([]Diagnostic, error)
}

// ResourceParseEvaluatorDiagnoser supplies callbacks evaluated against every
// value of every resource. Evaluation is synchronous and makes no other
// calls to the contributor.
type ResourceParseEvaluatorDiagnoser interface {
	Contributor
	Evaluator() manifest.Evaluator
}

// ManifestKindFilter restricts a per-resource contributor to one resource
// kind. It applies to ResourceParseDiagnoser, ResourceDiagnoser and
// ResourceParseEvaluatorDiagnoser; an empty kind matches everything.
type ManifestKindFilter interface {
	ManifestKind() string
}

// NativeCodeActioner offers editor code actions for a DocumentDiagnoser.
type NativeCodeActioner interface {
	CodeActions(ctx context.Context, doc lint.Document, rng lint.Range, cac lint.CodeActionContext) ([]lint.CodeAction, error)
}

// ActionProvider offers fixes for the parse-based shapes. It receives only
// the diagnostics at the range that this contributor reported, in their
// original form, and the document's resources after kind filtering.
type ActionProvider interface {
	ProvideActions(ctx context.Context, doc lint.Document, rng lint.Range, diagnostics []Diagnostic, parses []*manifest.ResourceParse) ([]Action, error)
}

// EditKind selects how an Edit is applied.
type EditKind string

const (
	EditInsert EditKind = "insert"
	EditMerge  EditKind = "merge"
)

// Edit is a simplified document edit.
type Edit struct {
	Kind EditKind

	// At and Text describe an insert.
	At   int
	Text string

	// Target and Value describe a merge of Value into the map Target.
	Target manifest.Traversable
	Value  map[string]any
}

// Insert creates an edit inserting text at offset at.
func Insert(at int, text string) Edit {
	return Edit{Kind: EditInsert, At: at, Text: text}
}

// Merge creates an edit merging value into the map target.
func Merge(target manifest.Traversable, value map[string]any) Edit {
	return Edit{Kind: EditMerge, Target: target, Value: value}
}

// Action is a fix offered by an ActionProvider. When Native carries an edit
// or a command it is offered as is and the other fields are ignored.
type Action struct {
	Title       string
	Diagnostics []Diagnostic
	Edit        Edit
	Native      *lint.CodeAction
}
