package diagnostics

import (
	"fmt"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/lint"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/manifest"
)

// Translate converts an action into an editor code action for doc. Offsets
// are resolved against doc, which must be the document the action's
// diagnostics and merge target were parsed from.
func Translate(doc lint.Document, a Action) (lint.CodeAction, error) {
	if a.Native != nil && (a.Native.Edit != nil || a.Native.Command != nil) {
		return *a.Native, nil
	}

	var edits []lint.TextEdit
	switch a.Edit.Kind {
	case EditInsert:
		at := doc.PositionAt(a.Edit.At)
		edits = []lint.TextEdit{{Range: lint.Range{Start: at, End: at}, NewText: a.Edit.Text}}
	case EditMerge:
		merged, err := manifest.Merge(doc.Text(), a.Edit.Target.Value(), a.Edit.Value)
		if err != nil {
			return lint.CodeAction{}, fmt.Errorf("translating %q: %w", a.Title, err)
		}
		edits = make([]lint.TextEdit, len(merged))
		for i, e := range merged {
			edits[i] = lint.TextEdit{Range: lint.RangeOf(doc, e.Range), NewText: e.NewText}
		}
	default:
		return lint.CodeAction{}, fmt.Errorf("translating %q: %w: %q", a.Title, ErrUnknownEditKind, a.Edit.Kind)
	}

	action := lint.CodeAction{
		Title: a.Title,
		Kind:  lint.CodeActionQuickFix,
		Edit:  &lint.WorkspaceEdit{},
	}
	for _, e := range edits {
		action.Edit.Add(doc.URI(), e)
	}
	for _, d := range a.Diagnostics {
		action.Diagnostics = append(action.Diagnostics, toEditor(doc, d, nil))
	}
	return action, nil
}

// toEditor converts a diagnostic using the document that produced it.
func toEditor(doc lint.Document, d Diagnostic, data any) lint.Diagnostic {
	return lint.Diagnostic{
		Range:    lint.RangeOf(doc, d.Range),
		Message:  d.Message,
		Severity: lint.Severity(d.Severity),
		Code:     d.Code,
		Data:     data,
	}
}
