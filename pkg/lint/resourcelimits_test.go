package lint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceLimits(t *testing.T) {
	tests := []struct {
		name     string
		language string
		text     string
		want     []string
	}{
		{
			name:     "pod without resources",
			language: LanguageYAML,
			text:     "kind: Pod\nspec:\n  containers:\n  - name: a\n",
			want:     []string{MsgNoContainerResources},
		},
		{
			name:     "pod without limits",
			language: LanguageYAML,
			text:     "kind: Pod\nspec:\n  containers:\n  - name: a\n    resources:\n      requests:\n        cpu: 1\n",
			want:     []string{MsgNoLimits},
		},
		{
			name:     "empty limits",
			language: LanguageYAML,
			text:     "kind: Pod\nspec:\n  containers:\n  - name: a\n    resources:\n      limits: {}\n",
			want:     []string{MsgNoCPULimit, MsgNoMemoryLimit},
		},
		{
			name:     "complete pod",
			language: LanguageYAML,
			text:     "kind: Pod\nspec:\n  containers:\n  - name: a\n    resources:\n      limits:\n        cpu: 1\n        memory: 1Gi\n",
		},
		{
			name:     "deployment template",
			language: LanguageYAML,
			text:     "kind: Deployment\nspec:\n  template:\n    spec:\n      containers:\n      - name: a\n      - name: b\n",
			want:     []string{MsgNoContainerResources, MsgNoContainerResources},
		},
		{
			name:     "service ignored",
			language: LanguageYAML,
			text:     "kind: Service\nspec:\n  containers:\n  - name: a\n",
		},
		{
			name:     "multi document",
			language: LanguageYAML,
			text:     "kind: Pod\nspec:\n  containers:\n  - name: a\n---\nkind: Pod\nspec:\n  containers:\n  - name: b\n",
			want:     []string{MsgNoContainerResources, MsgNoContainerResources},
		},
		{
			name:     "json pod",
			language: LanguageJSON,
			text:     `{"kind": "Pod", "spec": {"containers": [{"name": "a", "resources": {"limits": {"cpu": "1"}}}]}}`,
			want:     []string{MsgNoMemoryLimit},
		},
		{
			name:     "other language",
			language: "dockerfile",
			text:     "kind: Pod\nspec:\n  containers:\n  - name: a\n",
		},
	}
	l := Standard(ResourceLimits{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags, err := l.Lint(context.Background(), NewTextDocument("file:///x", tt.language, tt.text))
			require.NoError(t, err)
			var got []string
			for _, d := range diags {
				got = append(got, d.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResourceLimits_HighlightsContainersKey(t *testing.T) {
	doc := NewTextDocument("file:///x", LanguageYAML, "kind: Pod\nspec:\n  containers:\n  - name: a\n")
	diags, err := Standard(ResourceLimits{}).Lint(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, Range{Start: Position{2, 2}, End: Position{2, 12}}, diags[0].Range)
}

func TestSyntax_Load(t *testing.T) {
	s, ok := SyntaxFor(LanguageYAML)
	require.True(t, ok)
	docs, err := s.Load("a: 1\n---\nb: 2\n")
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"a": 1}, map[string]any{"b": 2}}, docs)

	s, ok = SyntaxFor(LanguageJSON)
	require.True(t, ok)
	docs, err = s.Load(`{"a": [1, 2]}`)
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"a": []any{1, 2}}}, docs)

	_, ok = SyntaxFor("helm")
	assert.False(t, ok)
}
