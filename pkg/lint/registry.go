package lint

import (
	"context"
	"slices"
	"sync"
)

// Linter produces diagnostics for a document.
type Linter interface {
	Name() string
	Lint(ctx context.Context, doc Document) ([]Diagnostic, error)
}

// CodeActioner is implemented by linters that offer fixes. It is optional;
// linters without it contribute no code actions.
type CodeActioner interface {
	CodeActions(ctx context.Context, doc Document, rng Range, cac CodeActionContext) ([]CodeAction, error)
}

// Registry holds the registered linters. It only grows; readers take a
// snapshot so a registration during a lint pass does not affect that pass.
type Registry struct {
	mu        sync.RWMutex
	linters   []Linter
	listeners []func(Linter)
}

// NewRegistry creates a registry holding the given linters.
func NewRegistry(linters ...Linter) *Registry {
	return &Registry{linters: slices.Clone(linters)}
}

// Register appends a linter and notifies change listeners.
func (r *Registry) Register(l Linter) {
	r.mu.Lock()
	r.linters = append(r.linters, l)
	listeners := slices.Clone(r.listeners)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(l)
	}
}

// OnRegister adds a listener called after each registration, typically to
// re-lint open documents.
func (r *Registry) OnRegister(fn func(Linter)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Snapshot returns the linters in registration order.
func (r *Registry) Snapshot() []Linter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.linters)
}

// Len returns the number of registered linters.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.linters)
}
