package api

import (
	"go.uber.org/zap"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/explorer"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/lint"
)

// Broker hands out component APIs bound to one explorer and linter registry.
type Broker struct {
	explorer *explorer.Explorer
	linters  *lint.Registry
	log      *zap.Logger
}

// Option configures a Broker.
type Option func(*Broker)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Broker) { b.log = l }
}

func NewBroker(e *explorer.Explorer, linters *lint.Registry, opts ...Option) *Broker {
	b := &Broker{explorer: e, linters: linters, log: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Get returns version of component. Unknown components and versions are
// reported as unknown.
func (b *Broker) Get(component, version string) API[any] {
	var result API[any]
	switch component {
	case ComponentClusterExplorer:
		result = ClusterExplorerVersion(version, b.explorer)
	case ComponentDiagnostics:
		result = DiagnosticsVersion(version, b.linters, b.log)
	default:
		result = VersionUnknown[any]()
	}
	b.log.Debug("api requested",
		zap.String("component", component),
		zap.String("version", version),
		zap.Stringer("status", result.Status))
	return result
}

// Components returns the components the broker serves.
func (b *Broker) Components() []string {
	return []string{ComponentClusterExplorer, ComponentDiagnostics}
}
