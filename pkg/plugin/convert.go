package plugin

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/host"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/lint"
)

// ============================================================================
// Documents
// ============================================================================

func documentToValue(doc lint.Document) map[string]any {
	return map[string]any{
		"uri":        doc.URI(),
		"languageId": doc.LanguageID(),
		"text":       doc.Text(),
	}
}

func documentFromValue(m map[string]any) *lint.TextDocument {
	return lint.NewTextDocument(str(m, "uri"), str(m, "languageId"), str(m, "text"))
}

// ============================================================================
// Ranges and diagnostics
// ============================================================================

func positionToValue(p lint.Position) map[string]any {
	return map[string]any{"line": p.Line, "character": p.Character}
}

func positionFromValue(m map[string]any) lint.Position {
	return lint.Position{Line: num(m, "line"), Character: num(m, "character")}
}

func rangeToValue(r lint.Range) map[string]any {
	return map[string]any{"start": positionToValue(r.Start), "end": positionToValue(r.End)}
}

func rangeFromValue(m map[string]any) lint.Range {
	return lint.Range{Start: positionFromValue(obj(m, "start")), End: positionFromValue(obj(m, "end"))}
}

// diagnosticToValue drops Data, which is only meaningful in the process
// that produced it.
func diagnosticToValue(d lint.Diagnostic) map[string]any {
	return map[string]any{
		"range":    rangeToValue(d.Range),
		"message":  d.Message,
		"severity": int(d.Severity),
		"code":     d.Code,
		"source":   d.Source,
	}
}

func diagnosticFromValue(m map[string]any) lint.Diagnostic {
	return lint.Diagnostic{
		Range:    rangeFromValue(obj(m, "range")),
		Message:  str(m, "message"),
		Severity: lint.Severity(num(m, "severity")),
		Code:     str(m, "code"),
		Source:   str(m, "source"),
	}
}

func diagnosticsToValue(diags []lint.Diagnostic) []any {
	out := make([]any, len(diags))
	for i, d := range diags {
		out[i] = diagnosticToValue(d)
	}
	return out
}

func diagnosticsFromValue(items []any) []lint.Diagnostic {
	if len(items) == 0 {
		return nil
	}
	out := make([]lint.Diagnostic, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, diagnosticFromValue(m))
		}
	}
	return out
}

// ============================================================================
// Code actions
// ============================================================================

func codeActionToValue(a lint.CodeAction) map[string]any {
	m := map[string]any{
		"title":       a.Title,
		"kind":        a.Kind,
		"diagnostics": diagnosticsToValue(a.Diagnostics),
	}
	if a.Edit != nil {
		changes := make(map[string]any, len(a.Edit.Changes))
		for uri, edits := range a.Edit.Changes {
			items := make([]any, len(edits))
			for i, e := range edits {
				items[i] = map[string]any{"range": rangeToValue(e.Range), "newText": e.NewText}
			}
			changes[uri] = items
		}
		m["edit"] = map[string]any{"changes": changes}
	}
	if a.Command != nil {
		cmd := map[string]any{"title": a.Command.Title, "command": a.Command.Command}
		if len(a.Command.Arguments) > 0 {
			cmd["arguments"] = a.Command.Arguments
		}
		m["command"] = cmd
	}
	return m
}

func codeActionFromValue(m map[string]any) lint.CodeAction {
	a := lint.CodeAction{
		Title:       str(m, "title"),
		Kind:        str(m, "kind"),
		Diagnostics: diagnosticsFromValue(list(m, "diagnostics")),
	}
	if edit, ok := m["edit"].(map[string]any); ok {
		a.Edit = &lint.WorkspaceEdit{}
		for uri, items := range obj(edit, "changes") {
			edits, _ := items.([]any)
			for _, item := range edits {
				if e, ok := item.(map[string]any); ok {
					a.Edit.Add(uri, lint.TextEdit{Range: rangeFromValue(obj(e, "range")), NewText: str(e, "newText")})
				}
			}
		}
	}
	if cmd, ok := m["command"].(map[string]any); ok {
		a.Command = &host.Command{
			Title:     str(cmd, "title"),
			Command:   str(cmd, "command"),
			Arguments: list(cmd, "arguments"),
		}
	}
	return a
}

// ============================================================================
// Requests and responses
// ============================================================================

func analyseRequest(doc lint.Document) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"document": documentToValue(doc)})
}

func analyseResponse(diags []lint.Diagnostic) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"diagnostics": diagnosticsToValue(diags)})
}

func codeActionsRequest(doc lint.Document, rng lint.Range, cac lint.CodeActionContext) (*structpb.Struct, error) {
	only := make([]any, len(cac.Only))
	for i, k := range cac.Only {
		only[i] = k
	}
	return structpb.NewStruct(map[string]any{
		"document": documentToValue(doc),
		"range":    rangeToValue(rng),
		"context": map[string]any{
			"diagnostics": diagnosticsToValue(cac.Diagnostics),
			"only":        only,
		},
	})
}

func codeActionsRequestFrom(req *structpb.Struct) (*lint.TextDocument, lint.Range, lint.CodeActionContext) {
	m := req.AsMap()
	cacValue := obj(m, "context")
	cac := lint.CodeActionContext{Diagnostics: diagnosticsFromValue(list(cacValue, "diagnostics"))}
	for _, k := range list(cacValue, "only") {
		if s, ok := k.(string); ok {
			cac.Only = append(cac.Only, s)
		}
	}
	return documentFromValue(obj(m, "document")), rangeFromValue(obj(m, "range")), cac
}

func codeActionsResponse(actions []lint.CodeAction) (*structpb.Struct, error) {
	items := make([]any, len(actions))
	for i, a := range actions {
		items[i] = codeActionToValue(a)
	}
	s, err := structpb.NewStruct(map[string]any{"actions": items})
	if err != nil {
		return nil, fmt.Errorf("encoding code actions: %w", err)
	}
	return s, nil
}

func codeActionsFromResponse(resp *structpb.Struct) []lint.CodeAction {
	items := list(resp.AsMap(), "actions")
	out := make([]lint.CodeAction, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, codeActionFromValue(m))
		}
	}
	return out
}

// ============================================================================
// Value accessors; missing or mistyped fields read as zero values.
// ============================================================================

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func num(m map[string]any, key string) int {
	switch n := m[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

func obj(m map[string]any, key string) map[string]any {
	o, _ := m[key].(map[string]any)
	return o
}

func list(m map[string]any, key string) []any {
	l, _ := m[key].([]any)
	return l
}
