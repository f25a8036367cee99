package clusterexplorer

import (
	"github.com/itowlson/vscode-kubernetes-tools/pkg/explorer"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/kuberesources"
)

// API is the v1 cluster explorer API.
type API struct {
	explorer *explorer.Explorer
	bridge   Bridge
}

// New creates the v1 API over an explorer.
func New(e *explorer.Explorer) *API {
	return &API{explorer: e, bridge: NewBridge(e)}
}

// ResolveCommandTarget returns the v1 view of a command target, or nil if the
// target is not an explorer node.
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
	default:
		return nil
	}
	if explorer.IsNil(n) {
		return nil
	}
	node := FromInternal(n)
	return &node
}

// RegisterNodeContributor adds a contributor to the explorer.
func (a *API) RegisterNodeContributor(c NodeContributor) {
	a.explorer.RegisterExtender(Extender(c))
}

// RegisterNodeUICustomizer adds a UI customizer to the explorer.
func (a *API) RegisterNodeUICustomizer(c NodeUICustomizer) {
	a.explorer.RegisterUICustomizer(UICustomizer(c))
}

// NodeSources returns the built-in node source constructors.
func (a *API) NodeSources() NodeSources {
	return NodeSources{bridge: a.bridge}
}

// Refresh asks the explorer to re-read the tree.
func (a *API) Refresh() {
	a.explorer.Refresh()
}

// NodeSources constructs built-in node sources.
type NodeSources struct {
	bridge Bridge
}

// ResourceFolder is a folder listing every object of a resource kind.
func (s NodeSources) ResourceFolder(displayName, pluralDisplayName, manifestKind, abbreviation string) NodeSource {
	kind := kuberesources.NewResourceKind(displayName, pluralDisplayName, manifestKind, abbreviation, "")
	return s.bridge.NodeSource(explorer.ResourceFolderSource(kind))
}

// GroupingFolder is a folder whose children come from other sources.
func (s NodeSources) GroupingFolder(displayName, contextValue string, children ...NodeSource) NodeSource {
	internal := make([]explorer.NodeSource, len(children))
	for i, c := range children {
		internal[i] = s.bridge.InternalNodeSource(c)
	}
	return s.bridge.NodeSource(explorer.GroupingFolderSource(displayName, contextValue, internal...))
}

// Resources returns sources that list objects of a kind directly, without an
// enclosing folder.
func (s NodeSources) Resources(manifestKind, abbreviation string) ResourcesSources {
	return ResourcesSources{bridge: s.bridge, kind: kindFor(manifestKind, abbreviation)}
}

// ResourcesSources lists objects of one kind.
type ResourcesSources struct {
	bridge Bridge
	kind   kuberesources.ResourceKind
}

// All lists every object of the kind.
func (r ResourcesSources) All() NodeSource {
	return r.bridge.NodeSource(explorer.AllResourcesSource(r.kind))
}

// FromQuery lists the objects matched by extra kubectl get arguments, such
// as a label selector.
func (r ResourcesSources) FromQuery(kubectlGetOptions string) NodeSource {
	return r.bridge.NodeSource(explorer.QuerySource(r.kind, kubectlGetOptions))
}

func kindFor(manifestKind, abbreviation string) kuberesources.ResourceKind {
	if k, ok := kuberesources.Lookup(abbreviation); ok && k.ManifestKind == manifestKind {
		return k
	}
	return kuberesources.NewResourceKind(manifestKind, manifestKind, manifestKind, abbreviation, "")
}
