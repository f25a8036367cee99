package diagnostics

import (
	"go.uber.org/zap"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/lint"
	v1 "github.com/itowlson/vscode-kubernetes-tools/pkg/v1/diagnostics"
)

// API is the v2 diagnostics API.
type API struct {
	registry *lint.Registry
	log      *zap.Logger
}

// Option configures an API.
type Option func(*API)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *API) { a.log = l }
}

func New(registry *lint.Registry, opts ...Option) *API {
	a := &API{registry: registry, log: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RegisterDiagnosticsContributor registers a v1 contributor.
func (a *API) RegisterDiagnosticsContributor(c v1.DiagnosticsContributor) {
	a.registry.Register(v1.AsLinter(c))
}

// RegisterDiagnosticsContributor2 classifies c and registers it. A
// contributor matching no shape, or several, is rejected with
// ErrUnclassifiableContributor and not registered.
func (a *API) RegisterDiagnosticsContributor2(c Contributor) error {
	l, err := AsLinter2(c)
	if err != nil {
		a.log.Error("rejected diagnostics contributor", zap.String("contributor", c.Name()), zap.Error(err))
		return err
	}
	a.log.Debug("registered diagnostics contributor",
		zap.String("contributor", c.Name()),
		zap.Stringer("shape", l.(*contributorLinter).shape))
	a.registry.Register(l)
	return nil
}
