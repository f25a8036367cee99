package explorer

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/kubectl"
)

// ContextLister returns the kubeconfig contexts shown at the tree root.
type ContextLister func() ([]kubectl.Context, error)

// Explorer is the cluster tree: kubeconfig contexts at the root, built-in
// folders under the active context, plus whatever registered extenders
// contribute. Extenders and customizers are append-only; every listing reads
// a snapshot so registration never disturbs an in-flight walk.
type Explorer struct {
	mu          sync.RWMutex
	extenders   []Extender
	customizers []UICustomizer
	subscribers map[int]func()
	nextSubID   int

	env      Env
	contexts ContextLister
	log      *zap.Logger
	tracer   trace.Tracer
}

// Option configures an Explorer.
type Option func(*Explorer)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Explorer) { e.log = l }
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Explorer) { e.tracer = tp.Tracer("explorer") }
}

// New creates an Explorer.
func New(env Env, contexts ContextLister, opts ...Option) *Explorer {
	e := &Explorer{
		env:         env,
		contexts:    contexts,
		subscribers: make(map[int]func()),
		log:         zap.NewNop(),
		tracer:      otel.Tracer("explorer"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Env returns the collaborators the explorer hands to nodes.
func (e *Explorer) Env() Env {
	return e.env
}

// RegisterExtender adds an extender.
func (e *Explorer) RegisterExtender(x Extender) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.extenders = append(e.extenders, x)
}

// RegisterUICustomizer adds a UI customizer.
func (e *Explorer) RegisterUICustomizer(c UICustomizer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.customizers = append(e.customizers, c)
}

// OnRefresh subscribes to refresh notifications. The returned function
// unsubscribes.
func (e *Explorer) OnRefresh(fn func()) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextSubID
	e.nextSubID++
	e.subscribers[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subscribers, id)
	}
}

// Refresh notifies subscribers that the tree should be re-read.
func (e *Explorer) Refresh() {
	e.mu.RLock()
	subs := make([]func(), 0, len(e.subscribers))
	for _, fn := range e.subscribers {
		subs = append(subs, fn)
	}
	e.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

func (e *Explorer) snapshot() ([]Extender, []UICustomizer) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.extenders), slices.Clone(e.customizers)
}

// Children returns the children of parent, or the roots when parent is nil.
// Failures never propagate: they are shown to the user and rendered as an
// error node in place of the failing contribution.
func (e *Explorer) Children(ctx context.Context, parent Node) []Node {
	ctx, span := e.tracer.Start(ctx, "explorer.Children")
	defer span.End()
	if parent != nil {
		span.SetAttributes(attribute.String("parent.type", string(parent.NodeType())))
	}

	var nodes []Node
	if parent == nil {
		nodes = e.roots()
	} else {
		own, err := e.guard("listing "+parent.TreeItem().Label, func() ([]Node, error) {
			return parent.Children(ctx, e.env)
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			nodes = append(nodes, e.failure(err))
		} else {
			nodes = append(nodes, own...)
		}
	}

	extenders, _ := e.snapshot()
	for _, x := range extenders {
		if !e.contributes(x, parent) {
			continue
		}
		contributed, err := e.guard("extender", func() ([]Node, error) {
			return x.Children(ctx, e.env, parent)
		})
		if err != nil {
			span.RecordError(err)
			nodes = append(nodes, e.failure(err))
			continue
		}
		nodes = append(nodes, contributed...)
	}
	span.SetAttributes(attribute.Int("children", len(nodes)))
	return nodes
}

// TreeItem renders a node and applies every registered customizer in
// registration order. A failing customizer is skipped.
func (e *Explorer) TreeItem(ctx context.Context, node Node) TreeItem {
	item := node.TreeItem()
	_, customizers := e.snapshot()
	for _, c := range customizers {
		err := func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("panic: %v", r)
				}
			}()
			return c.Customize(ctx, node, &item)
		}()
		if err != nil {
			e.log.Warn("node UI customizer failed",
				zap.String("nodeType", string(node.NodeType())),
				zap.Error(err))
		}
	}
	return item
}

func (e *Explorer) roots() []Node {
	if e.contexts == nil {
		return nil
	}
	contexts, err := e.contexts()
	if err != nil {
		return []Node{e.failure(err)}
	}
	nodes := make([]Node, len(contexts))
	for i, c := range contexts {
		nodes[i] = &ContextNode{Name: c.Name, Cluster: c.Cluster, Active: c.Active}
	}
	return nodes
}

func (e *Explorer) contributes(x Extender, parent Node) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("extender panicked deciding contribution", zap.Any("panic", r))
			ok = false
		}
	}()
	return x.ContributesChildren(parent)
}

// guard runs fn, converting a panic into an error.
func (e *Explorer) guard(what string, fn func() ([]Node, error)) (nodes []Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("panic in explorer node listing",
				zap.String("source", what),
				zap.Any("panic", r),
				zap.Stack("stack"))
			nodes, err = nil, fmt.Errorf("%s: panic: %v", what, r)
		}
	}()
	return fn()
}

func (e *Explorer) failure(err error) Node {
	e.log.Warn("explorer listing failed", zap.Error(err))
	if e.env.Host != nil {
		e.env.Host.ShowErrorMessage(err.Error())
	}
	return NewErrorNode("Error", err.Error())
}
