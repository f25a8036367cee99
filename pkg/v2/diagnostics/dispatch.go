package diagnostics

import (
	"context"
	"fmt"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/lint"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/manifest"
)

// shape is the analysis shape a contributor was classified as.
type shape int

const (
	shapeDocument shape = iota + 1
	shapeResourceParses
	shapeResourceParse
	shapeResource
	shapeEvaluator
)

func (s shape) String() string {
	switch s {
	case shapeDocument:
		return "document"
	case shapeResourceParses:
		return "resource-parses"
	case shapeResourceParse:
		return "resource-parse"
	case shapeResource:
		return "resource"
	case shapeEvaluator:
		return "evaluator"
	default:
		return "unknown"
	}
}

// classify determines c's shape. Exactly one shape must match.
func classify(c Contributor) (shape, error) {
	var matched []shape
	if _, ok := c.(DocumentDiagnoser); ok {
		matched = append(matched, shapeDocument)
	}
	if _, ok := c.(ResourceParsesDiagnoser); ok {
		matched = append(matched, shapeResourceParses)
	}
	if _, ok := c.(ResourceParseDiagnoser); ok {
		matched = append(matched, shapeResourceParse)
	}
	if _, ok := c.(ResourceDiagnoser); ok {
		matched = append(matched, shapeResource)
	}
	if _, ok := c.(ResourceParseEvaluatorDiagnoser); ok {
		matched = append(matched, shapeEvaluator)
	}
	if len(matched) != 1 {
		return 0, fmt.Errorf("%w: %s matches %v", ErrUnclassifiableContributor, c.Name(), matched)
	}
	return matched[0], nil
}

// AsLinter2 classifies c and adapts it to a linter.
func AsLinter2(c Contributor) (lint.Linter, error) {
	s, err := classify(c)
	if err != nil {
		return nil, err
	}
	l := &contributorLinter{c: c, shape: s}
	if f, ok := c.(ManifestKindFilter); ok && s != shapeDocument && s != shapeResourceParses {
		l.kind = f.ManifestKind()
	}
	return l, nil
}

// contributorLinter dispatches to a classified contributor.
type contributorLinter struct {
	c     Contributor
	shape shape
	kind  string
}

// producedBy marks editor diagnostics converted from a contributor's
// diagnostics, so that only they are offered back to it.
type producedBy struct {
	owner    *contributorLinter
	original Diagnostic
}

func (l *contributorLinter) Name() string { return l.c.Name() }

func (l *contributorLinter) Lint(ctx context.Context, doc lint.Document) ([]lint.Diagnostic, error) {
	if l.shape == shapeDocument {
		return l.c.(DocumentDiagnoser).AnalyseDocument(ctx, doc)
	}

	diags, err := l.analyse(ctx, doc)
	if err != nil {
		return nil, err
	}
	out := make([]lint.Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = toEditor(doc, d, producedBy{owner: l, original: d})
	}
	return out, nil
}

func (l *contributorLinter) analyse(ctx context.Context, doc lint.Document) ([]Diagnostic, error) {
	parses := manifest.Parse(doc.LanguageID(), doc.Text())
	if len(parses) == 0 {
		return nil, nil
	}

	switch l.shape {
	case shapeResourceParses:
		return l.c.(ResourceParsesDiagnoser).AnalyseResourceParses(ctx, doc, parses)
	case shapeResourceParse:
		d := l.c.(ResourceParseDiagnoser)
		var out []Diagnostic
		for _, p := range l.filter(parses) {
			diags, err := d.AnalyseResourceParse(ctx, doc, p)
			if err != nil {
				return nil, err
			}
			out = append(out, diags...)
		}
		return out, nil
	case shapeResource:
		d := l.c.(ResourceDiagnoser)
		var out []Diagnostic
		for _, p := range l.filter(parses) {
			diags, err := d.AnalyseResource(ctx, doc, manifest.AsTraversable(p))
			if err != nil {
				return nil, err
			}
			out = append(out, diags...)
		}
		return out, nil
	case shapeEvaluator:
		return manifest.Evaluate(l.filter(parses), l.c.(ResourceParseEvaluatorDiagnoser).Evaluator()), nil
	default:
		panic(fmt.Sprintf("diagnostics: unhandled contributor shape %v", l.shape))
	}
}

func (l *contributorLinter) filter(parses []*manifest.ResourceParse) []*manifest.ResourceParse {
	if l.kind == "" {
		return parses
	}
	var out []*manifest.ResourceParse
	for _, p := range parses {
		if manifest.IsKind(p, l.kind) {
			out = append(out, p)
		}
	}
	return out
}

func (l *contributorLinter) CodeActions(ctx context.Context, doc lint.Document, rng lint.Range, cac lint.CodeActionContext) ([]lint.CodeAction, error) {
	if l.shape == shapeDocument {
		if n, ok := l.c.(NativeCodeActioner); ok {
			return n.CodeActions(ctx, doc, rng, cac)
		}
		return nil, nil
	}

	p, ok := l.c.(ActionProvider)
	if !ok {
		return nil, nil
	}
	var own []Diagnostic
	for _, d := range cac.Diagnostics {
		if tag, ok := d.Data.(producedBy); ok && tag.owner == l {
			own = append(own, tag.original)
		}
	}
	parses := l.filter(manifest.Parse(doc.LanguageID(), doc.Text()))

	actions, err := p.ProvideActions(ctx, doc, rng, own, parses)
	if err != nil {
		return nil, err
	}
	out := make([]lint.CodeAction, 0, len(actions))
	for _, a := range actions {
		ca, err := Translate(doc, a)
		if err != nil {
			return nil, err
		}
		out = append(out, ca)
	}
	return out, nil
}
