package main

import (
	"context"
	"strings"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/lint"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/manifest"
)

const (
	codeLatestTag = "latest-tag"
	msgLatestTag  = "Image is not pinned to a tag or digest; pulls may change what runs"
)

type latestTag struct{}

func (latestTag) Name() string { return "latest-tag" }

func (latestTag) Analyse(_ context.Context, doc lint.Document) ([]lint.Diagnostic, error) {
	syntax, ok := lint.SyntaxFor(doc.LanguageID())
	if !ok {
		return nil, nil
	}
	var out []lint.Diagnostic
	for _, p := range syntax.Parse(doc) {
		for _, image := range images(manifest.AsTraversable(p)) {
			if pinned(image.Text()) {
				continue
			}
			out = append(out, lint.Diagnostic{
				Range:    lint.RangeOf(doc, image.Range()),
				Message:  msgLatestTag,
				Severity: lint.SeverityWarning,
				Code:     codeLatestTag,
			})
		}
	}
	return out, nil
}

// images returns the container image values of a workload resource.
func images(resource manifest.Traversable) []manifest.Traversable {
	podSpec := resource.Map("spec")
	if kind := resource.String("kind"); !kind.Valid() || kind.Text() != "Pod" {
		podSpec = podSpec.Map("template").Map("spec")
	}
	var out []manifest.Traversable
	for _, key := range []string{"initContainers", "containers"} {
		for _, c := range podSpec.Array(key).Items() {
			if image := c.String("image"); image.Exists() && image.Valid() {
				out = append(out, image)
			}
		}
	}
	return out
}

// pinned reports whether image names a digest or a tag other than latest.
// A colon before the last slash belongs to a registry port.
func pinned(image string) bool {
	if strings.Contains(image, "@") {
		return true
	}
	name := image[strings.LastIndex(image, "/")+1:]
	i := strings.LastIndex(name, ":")
	return i >= 0 && name[i+1:] != "latest"
}
