package lint

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Settings decides which linters run.
type Settings interface {
	LintDisabled() bool
	LinterDisabled(name string) bool
}

type enableAll struct{}

func (enableAll) LintDisabled() bool          { return false }
func (enableAll) LinterDisabled(string) bool { return false }

// Service lints documents with every enabled linter in a registry. A linter
// that fails or panics contributes nothing and never affects the others.
type Service struct {
	registry *Registry
	settings Settings
	metrics  *Metrics
	log      *zap.Logger
	tracer   trace.Tracer
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) { s.log = l }
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) ServiceOption {
	return func(s *Service) { s.tracer = tp.Tracer("lint") }
}

// WithSettings sets the enablement settings. Defaults to all linters enabled.
func WithSettings(settings Settings) ServiceOption {
	return func(s *Service) { s.settings = settings }
}

// WithMetrics sets the metrics to record. Defaults to unregistered metrics.
func WithMetrics(m *Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

func NewService(registry *Registry, opts ...ServiceOption) *Service {
	s := &Service{
		registry: registry,
		settings: enableAll{},
		log:      zap.NewNop(),
		tracer:   otel.Tracer("lint"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}
	return s
}

// Registry returns the service's registry.
func (s *Service) Registry() *Registry {
	return s.registry
}

// Lint runs every enabled linter over doc and concatenates their diagnostics
// in registration order.
func (s *Service) Lint(ctx context.Context, doc Document) []Diagnostic {
	linters := s.enabled(doc)
	if len(linters) == 0 {
		return nil
	}
	ctx, span := s.startPass(ctx, "lint.Lint", doc, len(linters))
	defer span.End()

	passID := uuid.NewString()
	results := make([][]Diagnostic, len(linters))
	var g errgroup.Group
	for i, l := range linters {
		g.Go(func() error {
			diags, err := s.run(ctx, l.Name(), "lint", func() ([]Diagnostic, error) {
				return l.Lint(ctx, doc)
			})
			if err != nil {
				span.RecordError(err)
				s.log.Warn("linter failed",
					zap.String("pass", passID),
					zap.String("linter", l.Name()),
					zap.String("uri", doc.URI()),
					zap.Error(err))
				return nil
			}
			diags = slices.Clone(diags)
			for j := range diags {
				if diags[j].Source == "" {
					diags[j].Source = l.Name()
				}
			}
			results[i] = diags
			return nil
		})
	}
	_ = g.Wait()

	var out []Diagnostic
	for _, r := range results {
		out = append(out, r...)
	}
	span.SetAttributes(attribute.Int("diagnostics", len(out)))
	return out
}

// CodeActions collects fixes for rng from every enabled linter that offers
// them.
func (s *Service) CodeActions(ctx context.Context, doc Document, rng Range, cac CodeActionContext) []CodeAction {
	linters := s.enabled(doc)
	if len(linters) == 0 {
		return nil
	}
	ctx, span := s.startPass(ctx, "lint.CodeActions", doc, len(linters))
	defer span.End()

	results := make([][]CodeAction, len(linters))
	var g errgroup.Group
	for i, l := range linters {
		ca, ok := l.(CodeActioner)
		if !ok {
			continue
		}
		g.Go(func() error {
			var actions []CodeAction
			_, err := s.run(ctx, l.Name(), "codeActions", func() ([]Diagnostic, error) {
				var err error
				actions, err = ca.CodeActions(ctx, doc, rng, cac)
				return nil, err
			})
			if err != nil {
				span.RecordError(err)
				s.log.Warn("linter code actions failed",
					zap.String("linter", l.Name()),
					zap.String("uri", doc.URI()),
					zap.Error(err))
				return nil
			}
			results[i] = actions
			return nil
		})
	}
	_ = g.Wait()

	var out []CodeAction
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

func (s *Service) enabled(doc Document) []Linter {
	if s.settings.LintDisabled() || !IsLintable(doc) {
		return nil
	}
	var out []Linter
	for _, l := range s.registry.Snapshot() {
		if !s.settings.LinterDisabled(l.Name()) {
			out = append(out, l)
		}
	}
	return out
}

func (s *Service) startPass(ctx context.Context, name string, doc Document, linters int) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("document.uri", doc.URI()),
		attribute.String("document.language", doc.LanguageID()),
		attribute.Int("linters", linters),
	))
}

// run calls fn, converting a panic into an error, and records metrics.
func (s *Service) run(ctx context.Context, linter, op string, fn func() ([]Diagnostic, error)) (diags []Diagnostic, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic in linter",
				zap.String("linter", linter),
				zap.Any("panic", r),
				zap.Stack("stack"))
			diags, err = nil, fmt.Errorf("linter %s: panic: %v", linter, r)
		}
		s.metrics.Runs.WithLabelValues(linter, op).Inc()
		s.metrics.Duration.WithLabelValues(linter, op).Observe(time.Since(start).Seconds())
		if err != nil {
			s.metrics.Failures.WithLabelValues(linter, op).Inc()
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fn()
}
