package lint

import (
	"context"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/manifest"
)

// Messages reported by the resource limits linter.
const (
	MsgNoContainerResources = "One or more containers does not have resource limits - this could starve critical processes"
	MsgNoLimits             = "Container does not have resource limits - this could starve critical processes"
	MsgNoCPULimit           = "Container does not specify a CPU limit - this could starve critical processes"
	MsgNoMemoryLimit        = "Container does not specify a memory limit - this could starve critical processes"
)

// ResourceLimits warns about Pod and Deployment containers without CPU and
// memory limits.
type ResourceLimits struct{}

func (ResourceLimits) Name() string { return "resource-limits" }

func (r ResourceLimits) Lint(_ context.Context, doc Document, syntax Syntax) ([]Diagnostic, error) {
	var out []Diagnostic
	for _, p := range syntax.Parse(doc) {
		out = append(out, r.lintOne(doc, p)...)
	}
	return out, nil
}

func (ResourceLimits) CodeActions(context.Context, Document, Range, CodeActionContext, Syntax) ([]CodeAction, error) {
	return nil, nil
}

func (ResourceLimits) lintOne(doc Document, p *manifest.ResourceParse) []Diagnostic {
	if p == nil {
		return nil
	}
	resource := manifest.AsTraversable(p)

	var podSpec manifest.Traversable
	switch kind := resource.String("kind"); {
	case kind.Valid() && kind.Text() == "Pod":
		podSpec = resource.Map("spec")
	case kind.Valid() && kind.Text() == "Deployment":
		podSpec = resource.Map("spec").Map("template").Map("spec")
	default:
		return nil
	}
	if !podSpec.Exists() || !podSpec.Valid() {
		return nil
	}
	containers := podSpec.Array("containers")
	if !containers.Exists() || !containers.Valid() {
		return nil
	}

	var warnings []Diagnostic
	warnOn := func(t manifest.Traversable, msg string) {
		warnings = append(warnings, WarningOn(doc, t, msg))
	}
	for i := range containers.Items() {
		container := containers.MapAt(i)
		if !container.Exists() || !container.Valid() {
			continue
		}
		resources := container.Map("resources")
		if !resources.Exists() || !resources.Valid() {
			warnOn(containers, MsgNoContainerResources)
			continue
		}
		limits := resources.Map("limits")
		if !limits.Exists() || !limits.Valid() {
			warnOn(resources, MsgNoLimits)
			continue
		}
		if !limits.Child("cpu").Exists() {
			warnOn(limits, MsgNoCPULimit)
		}
		if !limits.Child("memory").Exists() {
			warnOn(limits, MsgNoMemoryLimit)
		}
	}
	return warnings
}

// BuiltIn returns the linters that ship with the tools.
func BuiltIn() []Linter {
	return []Linter{Standard(ResourceLimits{})}
}
