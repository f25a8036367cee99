package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slice(text string, r Range) string {
	return string([]rune(text)[r.Start:r.End])
}

func TestParseYAML_Ranges(t *testing.T) {
	text := "apiVersion: v1\nkind: Pod\nmetadata:\n  name: web\n"
	parses := ParseYAML(text)
	require.Len(t, parses, 1)

	root := AsTraversable(parses[0])
	kind := root.String("kind")
	require.True(t, kind.Valid())
	assert.Equal(t, "Pod", kind.Text())
	assert.Equal(t, "Pod", slice(text, kind.Range()))

	kr, ok := kind.KeyRange()
	require.True(t, ok)
	assert.Equal(t, Range{Start: 15, End: 19}, kr)

	meta := root.Map("metadata")
	require.True(t, meta.Valid())
	assert.Equal(t, "name: web", slice(text, meta.Range()))
	assert.Equal(t, "web", slice(text, meta.String("name").Range()))
}

func TestParseYAML_RuneOffsets(t *testing.T) {
	text := "name: héllo\nkind: Pod\n"
	parses := ParseYAML(text)
	require.Len(t, parses, 1)

	kr, ok := AsTraversable(parses[0]).Child("kind").KeyRange()
	require.True(t, ok)
	assert.Equal(t, 12, kr.Start)
	assert.Equal(t, "héllo", slice(text, AsTraversable(parses[0]).Child("name").Range()))
}

func TestParseYAML_MultiDocument(t *testing.T) {
	text := "kind: Pod\n---\nkind: Deployment\n---\n---\n- a\n- b\n"
	parses := ParseYAML(text)
	require.Len(t, parses, 2)
	assert.Equal(t, "Pod", parses[0].Kind())
	assert.Equal(t, "Deployment", parses[1].Kind())
	assert.Equal(t, 1, parses[1].Index)
	assert.True(t, IsKind(parses[1], "Deployment"))
	assert.False(t, IsKind(parses[1], "Pod"))
}

func TestParseYAML_Unparseable(t *testing.T) {
	assert.Empty(t, ParseYAML("key: [unclosed"))
	assert.Empty(t, ParseYAML(""))
	assert.Empty(t, ParseYAML("just a string"))
}

func TestParseYAML_BlockScalar(t *testing.T) {
	text := "data:\n  script: |\n    echo hi\n    echo bye\n  other: x\n"
	parses := ParseYAML(text)
	require.Len(t, parses, 1)

	script := AsTraversable(parses[0]).Map("data").String("script")
	require.True(t, script.Valid())
	assert.Equal(t, "|\n    echo hi\n    echo bye", slice(text, script.Range()))
}

func TestParseJSON(t *testing.T) {
	text := `{"kind": "Pod", "spec": {"containers": []}}`
	parses := ParseJSON(text)
	require.Len(t, parses, 1)

	root := AsTraversable(parses[0])
	assert.True(t, parses[0].Root.Flow)
	assert.Equal(t, Range{Start: 0, End: len(text)}, root.Range())
	assert.Equal(t, `"Pod"`, slice(text, root.String("kind").Range()))
	assert.Equal(t, `{"containers": []}`, slice(text, root.Map("spec").Range()))

	kr, _ := root.Child("kind").KeyRange()
	assert.Equal(t, `"kind"`, slice(text, kr))

	assert.Empty(t, ParseJSON(`{"kind": `))
}

func TestParse_DispatchesOnLanguage(t *testing.T) {
	assert.Len(t, Parse("yaml", "kind: Pod\n"), 1)
	assert.Len(t, Parse("json", `{"kind": "Pod"}`), 1)
	assert.Empty(t, Parse("plaintext", "kind: Pod\n"))
}

func TestTraversable_MissingPathsNeverPanic(t *testing.T) {
	parses := ParseYAML("kind: Pod\nspec: 3\n")
	require.Len(t, parses, 1)

	root := AsTraversable(parses[0])
	missing := root.Map("spec").Map("template").Array("containers").MapAt(3).Child("x")
	assert.False(t, missing.Exists())
	assert.False(t, missing.Valid())
	assert.Equal(t, "", missing.Text())
	assert.Nil(t, missing.Items())
	assert.Equal(t, Range{}, HighlightRange(missing))

	spec := root.Map("spec")
	assert.True(t, spec.Exists())
	assert.False(t, spec.Valid())
	n, ok := root.Child("spec").Number()
	assert.True(t, ok)
	assert.Equal(t, 3.0, n)

	var nilParse *ResourceParse
	assert.False(t, AsTraversable(nilParse).Exists())
}

func TestHighlightRange(t *testing.T) {
	text := "spec:\n  containers:\n  - name: a\n"
	parses := ParseYAML(text)
	require.Len(t, parses, 1)

	containers := AsTraversable(parses[0]).Map("spec").Array("containers")
	assert.Equal(t, "containers", slice(text, HighlightRange(containers)))

	item := containers.MapAt(0)
	assert.Equal(t, "name: a", slice(text, HighlightRange(item)))
	assert.Equal(t, "spec.containers[0]", item.Path().String())
}

func TestEvaluate(t *testing.T) {
	text := "kind: Pod\nspec:\n  containers:\n  - name: a\n"
	parses := ParseYAML(text)

	var maps, arrays int
	var scalars []string
	diags := Evaluate(parses, Evaluator{
		Map:   func(Path, Traversable) []Diagnostic { maps++; return nil },
		Array: func(Path, Traversable) []Diagnostic { arrays++; return nil },
		Scalar: func(p Path, e Traversable) []Diagnostic {
			scalars = append(scalars, p.String())
			if e.Text() == "a" {
				return []Diagnostic{{Range: e.Range(), Message: "found a", Severity: SeverityWarning}}
			}
			return nil
		},
	})

	assert.Equal(t, 3, maps)
	assert.Equal(t, 1, arrays)
	assert.Equal(t, []string{"kind", "spec.containers[0].name"}, scalars)
	require.Len(t, diags, 1)
	assert.Equal(t, "a", slice(text, diags[0].Range))

	assert.Empty(t, Evaluate(parses, Evaluator{}))
}
