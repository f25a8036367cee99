// Package diagnostics is version 1 of the diagnostics contract: contributors
// analyse whole documents and return editor diagnostics.
package diagnostics

import (
	"context"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/lint"
)

// DiagnosticsContributor analyses documents.
type DiagnosticsContributor interface {
	Name() string
	Analyse(ctx context.Context, doc lint.Document) ([]lint.Diagnostic, error)
}

// CodeActionsContributor is implemented by contributors that offer fixes.
type CodeActionsContributor interface {
	CodeActions(ctx context.Context, doc lint.Document, rng lint.Range, cac lint.CodeActionContext) ([]lint.CodeAction, error)
}

// API is the v1 diagnostics API.
type API struct {
	registry *lint.Registry
}

func New(registry *lint.Registry) *API {
	return &API{registry: registry}
}

// RegisterDiagnosticsContributor adds c to the linters run on every lintable
// document.
func (a *API) RegisterDiagnosticsContributor(c DiagnosticsContributor) {
	a.registry.Register(AsLinter(c))
}

// AsLinter adapts a contributor to a linter. The linter offers code actions
// only if the contributor does.
func AsLinter(c DiagnosticsContributor) lint.Linter {
	if ca, ok := c.(CodeActionsContributor); ok {
		return &actingLinter{contributorLinter: contributorLinter{c: c}, actions: ca}
	}
	return &contributorLinter{c: c}
}

type contributorLinter struct {
	c DiagnosticsContributor
}

func (l *contributorLinter) Name() string { return l.c.Name() }

func (l *contributorLinter) Lint(ctx context.Context, doc lint.Document) ([]lint.Diagnostic, error) {
	return l.c.Analyse(ctx, doc)
}

type actingLinter struct {
	contributorLinter
	actions CodeActionsContributor
}

func (l *actingLinter) CodeActions(ctx context.Context, doc lint.Document, rng lint.Range, cac lint.CodeActionContext) ([]lint.CodeAction, error) {
	return l.actions.CodeActions(ctx, doc, rng, cac)
}
