package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/lint"
)

func TestPinned(t *testing.T) {
	tests := map[string]bool{
		"nginx":                        false,
		"nginx:latest":                 false,
		"registry:5000/nginx":          false,
		"registry:5000/nginx:latest":   false,
		"nginx:1.27":                   true,
		"registry:5000/nginx:1.27":     true,
		"nginx@sha256:0123456789abcde": true,
	}
	for image, want := range tests {
		assert.Equal(t, want, pinned(image), image)
	}
}

func TestLatestTag_Analyse(t *testing.T) {
	text := `apiVersion: apps/v1
kind: Deployment
spec:
  template:
    spec:
      initContainers:
      - image: busybox:1.36
      containers:
      - image: nginx
      - image: redis:latest
`
	diags, err := latestTag{}.Analyse(context.Background(), lint.NewTextDocument("file:///d.yaml", lint.LanguageYAML, text))
	require.NoError(t, err)
	require.Len(t, diags, 2)
	assert.Equal(t, lint.Range{Start: lint.Position{Line: 8, Character: 15}, End: lint.Position{Line: 8, Character: 20}}, diags[0].Range)
	assert.Equal(t, lint.Range{Start: lint.Position{Line: 9, Character: 15}, End: lint.Position{Line: 9, Character: 27}}, diags[1].Range)
	for _, d := range diags {
		assert.Equal(t, codeLatestTag, d.Code)
		assert.Equal(t, lint.SeverityWarning, d.Severity)
	}
}

func TestLatestTag_Pod(t *testing.T) {
	text := "kind: Pod\nspec:\n  containers:\n  - image: nginx:1.27\n  - image: nginx\n"
	diags, err := latestTag{}.Analyse(context.Background(), lint.NewTextDocument("file:///p.yaml", lint.LanguageYAML, text))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, 4, diags[0].Range.Start.Line)
}

func TestLatestTag_IgnoresPlainText(t *testing.T) {
	diags, err := latestTag{}.Analyse(context.Background(), lint.NewTextDocument("file:///n.txt", "plaintext", "image: nginx"))
	require.NoError(t, err)
	assert.Empty(t, diags)
}
