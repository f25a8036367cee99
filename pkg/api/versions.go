package api

import (
	"go.uber.org/zap"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/explorer"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/lint"
	v1ce "github.com/itowlson/vscode-kubernetes-tools/pkg/v1/clusterexplorer"
	v1diag "github.com/itowlson/vscode-kubernetes-tools/pkg/v1/diagnostics"
	v11ce "github.com/itowlson/vscode-kubernetes-tools/pkg/v1_1/clusterexplorer"
	v12ce "github.com/itowlson/vscode-kubernetes-tools/pkg/v1_2/clusterexplorer"
	v2diag "github.com/itowlson/vscode-kubernetes-tools/pkg/v2/diagnostics"
)

// Components served by the broker.
const (
	ComponentClusterExplorer = "clusterexplorer"
	ComponentDiagnostics     = "diagnostics"
)

// ClusterExplorerVersion returns the cluster explorer API for version.
func ClusterExplorerVersion(version string, e *explorer.Explorer) API[any] {
	switch version {
	case "v1":
		return Available[any](v1ce.New(e))
	case "v1_1":
		return Available[any](v11ce.New(e))
	case "v1_2":
		return Available[any](v12ce.New(e))
	default:
		return VersionUnknown[any]()
	}
}

// DiagnosticsVersion returns the diagnostics API for version. Contributors
// registered through it are added to registry. A nil log discards output.
func DiagnosticsVersion(version string, registry *lint.Registry, log *zap.Logger) API[any] {
	if log == nil {
		log = zap.NewNop()
	}
	switch version {
	case "v1":
		return Available[any](v1diag.New(registry))
	case "v2":
		return Available[any](v2diag.New(registry, v2diag.WithLogger(log)))
	default:
		return VersionUnknown[any]()
	}
}

// LegacyVersion resolves the whole-extension API versions served before
// the per-component broker. All of them are retired.
func LegacyVersion(version string) API[any] {
	switch version {
	case "1.0", "2.0":
		return VersionRemoved[any]()
	default:
		return VersionUnknown[any]()
	}
}
