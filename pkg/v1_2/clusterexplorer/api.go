package clusterexplorer

import (
	"context"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/explorer"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/kuberesources"
)

// API is the v1.2 cluster explorer API.
type API struct {
	explorer *explorer.Explorer
}

// New returns the v1.2 API over e.
func New(e *explorer.Explorer) *API {
	return &API{explorer: e}
}

// ResolveCommandTarget returns the v1.2 view of a command target, or nil if
// the target is not an explorer node.
func (a *API) ResolveCommandTarget(target any) *ClusterExplorerNode {
	var n explorer.Node
	switch t := target.(type) {
	case *builtInNode:
		if t == nil {
			return nil
		}
		n = t.impl
	case explorer.Node:
		n = t
	}
	if explorer.IsNil(n) {
		return nil
	}
	node := FromInternal(n)
	return &node
}

// RegisterNodeContributor adds c to the tree.
func (a *API) RegisterNodeContributor(c NodeContributor) {
	a.explorer.RegisterExtender(extenderOf(c))
}

// RegisterNodeUICustomizer registers c to adjust every rendered node.
func (a *API) RegisterNodeUICustomizer(c NodeUICustomizer) {
	a.explorer.RegisterUICustomizer(explorer.UICustomizerFunc(func(ctx context.Context, n explorer.Node, item *explorer.TreeItem) error {
		return c.Customize(ctx, FromInternal(n), item)
	}))
}

// NodeSources returns constructors for built-in node sources.
func (a *API) NodeSources() NodeSources {
	return NodeSources{env: a.explorer.Env}
}

// Refresh asks the tree to redraw.
func (a *API) Refresh() {
	a.explorer.Refresh()
}

// NodeSources constructs built-in node sources.
type NodeSources struct {
	env func() explorer.Env
}

// ResourceFolder is a folder listing every object of a resource kind. An
// empty apiName defaults to the lower-cased plural display name.
func (s NodeSources) ResourceFolder(displayName, pluralDisplayName, manifestKind, abbreviation, apiName string) NodeSource {
	kind := kuberesources.NewResourceKind(displayName, pluralDisplayName, manifestKind, abbreviation, apiName)
	return &builtInNodeSource{impl: explorer.ResourceFolderSource(kind), env: s.env}
}

// GroupingFolder is a folder whose children come from other sources.
func (s NodeSources) GroupingFolder(displayName, contextValue string, children ...NodeSource) NodeSource {
	internal := make([]explorer.NodeSource, len(children))
	for i, c := range children {
		internal[i] = internalNodeSourceOf(c)
	}
	return &builtInNodeSource{impl: explorer.GroupingFolderSource(displayName, contextValue, internal...), env: s.env}
}
