package explorer

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/kubectl"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/kuberesources"
)

// NodeSource is a lazy, immutable description of nodes to contribute. The
// combinators return new sources and never modify the receiver. The zero
// value produces no nodes.
type NodeSource struct {
	nodes func(ctx context.Context, env Env) ([]Node, error)
}

// Condition decides whether a conditional source produces its nodes.
type Condition func(ctx context.Context) (bool, error)

// Predicate selects nodes for a filtered source.
type Predicate func(Node) bool

// FuncSource creates a source from a function.
func FuncSource(fn func(ctx context.Context, env Env) ([]Node, error)) NodeSource {
	return NodeSource{nodes: fn}
}

// StaticSource always produces the given nodes.
func StaticSource(nodes ...Node) NodeSource {
	return FuncSource(func(context.Context, Env) ([]Node, error) {
		out := make([]Node, len(nodes))
		copy(out, nodes)
		return out, nil
	})
}

// Nodes produces the source's nodes. It is safe to call repeatedly.
func (s NodeSource) Nodes(ctx context.Context, env Env) ([]Node, error) {
	if s.nodes == nil {
		return nil, nil
	}
	return s.nodes(ctx, env)
}

// At attaches the source to the tree. An empty parentKey attaches it under the
// active context; otherwise under grouping folders with that display name.
func (s NodeSource) At(parentKey string) Extender {
	return &sourceExtender{under: parentKey, source: s}
}

// If makes the source conditional. The condition is evaluated on every Nodes
// call; a false condition or a condition error yields no nodes.
func (s NodeSource) If(cond Condition) NodeSource {
	return FuncSource(func(ctx context.Context, env Env) ([]Node, error) {
		ok, err := cond(ctx)
		if err != nil {
			return nil, fmt.Errorf("evaluating node source condition: %w", err)
		}
		if !ok {
			return nil, nil
		}
		return s.Nodes(ctx, env)
	})
}

// Filter keeps only the produced nodes that satisfy pred.
func (s NodeSource) Filter(pred Predicate) NodeSource {
	return FuncSource(func(ctx context.Context, env Env) ([]Node, error) {
		nodes, err := s.Nodes(ctx, env)
		if err != nil {
			return nil, err
		}
		kept := nodes[:0:0]
		for _, n := range nodes {
			if pred(n) {
				kept = append(kept, n)
			}
		}
		return kept, nil
	})
}

// Concat runs every source concurrently and concatenates their nodes in
// argument order.
func Concat(sources ...NodeSource) NodeSource {
	return FuncSource(func(ctx context.Context, env Env) ([]Node, error) {
		results := make([][]Node, len(sources))
		g, gctx := errgroup.WithContext(ctx)
		for i, src := range sources {
			g.Go(func() error {
				nodes, err := src.Nodes(gctx, env)
				if err != nil {
					return err
				}
				results[i] = nodes
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		var out []Node
		for _, r := range results {
			out = append(out, r...)
		}
		return out, nil
	})
}

// ResourceFolderSource produces a single folder listing objects of kind.
func ResourceFolderSource(kind kuberesources.ResourceKind) NodeSource {
	return FuncSource(func(context.Context, Env) ([]Node, error) {
		return []Node{&ResourceFolderNode{Kind: kind}}, nil
	})
}

// GroupingFolderSource produces a single grouping folder whose children come
// from the given sources.
func GroupingFolderSource(displayName, contextValue string, children ...NodeSource) NodeSource {
	return FuncSource(func(context.Context, Env) ([]Node, error) {
		return []Node{&GroupingFolderNode{
			DisplayName:  displayName,
			ContextValue: contextValue,
			Sources:      children,
		}}, nil
	})
}

// AllResourcesSource produces one node per live object of kind. A listing
// failure is reported to the host and rendered as a single error node.
func AllResourcesSource(kind kuberesources.ResourceKind) NodeSource {
	return FuncSource(func(ctx context.Context, env Env) ([]Node, error) {
		if env.Kubectl == nil {
			return nil, fmt.Errorf("no cluster connection to list %s", kind.PluralDisplayName)
		}
		res := env.Kubectl.AsLines(ctx, "get "+kind.Abbreviation)
		if !res.Succeeded() {
			msg := res.Error()
			if env.Host != nil {
				env.Host.ShowErrorMessage(msg)
			}
			return []Node{NewErrorNode("Error", msg)}, nil
		}
		nodes := make([]Node, 0, len(res.Result()))
		for _, line := range res.Result() {
			name := kubectl.NameOf(line)
			if name == "" {
				continue
			}
			nodes = append(nodes, &ResourceNode{Kind: kind, Name: name})
		}
		return nodes, nil
	})
}

// QuerySource produces one node per object returned by a custom kubectl get
// query, such as "get pods -l app=web".
func QuerySource(kind kuberesources.ResourceKind, query string) NodeSource {
	return FuncSource(func(ctx context.Context, env Env) ([]Node, error) {
		if env.Kubectl == nil {
			return nil, fmt.Errorf("no cluster connection to list %s", kind.PluralDisplayName)
		}
		command := "get " + kind.Abbreviation
		if q := strings.TrimSpace(query); q != "" {
			command += " " + q
		}
		res := env.Kubectl.AsLines(ctx, command)
		if !res.Succeeded() {
			if env.Host != nil {
				env.Host.ShowErrorMessage(res.Error())
			}
			return []Node{NewErrorNode("Error", res.Error())}, nil
		}
		var nodes []Node
		for _, line := range res.Result() {
			if name := kubectl.NameOf(line); name != "" {
				nodes = append(nodes, &ResourceNode{Kind: kind, Name: name})
			}
		}
		return nodes, nil
	})
}

// HelmReleasesSource produces one node per Helm release.
func HelmReleasesSource() NodeSource {
	return FuncSource(func(ctx context.Context, env Env) ([]Node, error) {
		if env.Helm == nil {
			return nil, nil
		}
		releases, err := env.Helm.HelmReleases(ctx)
		if err != nil {
			return nil, err
		}
		nodes := make([]Node, len(releases))
		for i, r := range releases {
			nodes[i] = &HelmReleaseNode{ReleaseName: r}
		}
		return nodes, nil
	})
}

// sourceExtender attaches a node source to the tree.
type sourceExtender struct {
	under  string
	source NodeSource
}

// ContributesChildren implements the attachment rule: a keyed source attaches
// to grouping folders with that display name, an unkeyed one to the active
// context only.
func (e *sourceExtender) ContributesChildren(parent Node) bool {
	if parent == nil {
		return false
	}
	if e.under != "" {
		folder, ok := parent.(*GroupingFolderNode)
		return ok && folder.DisplayName == e.under
	}
	c, ok := parent.(*ContextNode)
	return ok && c.Active
}

func (e *sourceExtender) Children(ctx context.Context, env Env, _ Node) ([]Node, error) {
	return e.source.Nodes(ctx, env)
}
