// Package clusterexplorer is version 1.1 of the cluster explorer contract.
// It shares version 1's node shapes and mapping, and lets resource folders
// name the API resource explicitly.
package clusterexplorer

import (
	"github.com/itowlson/vscode-kubernetes-tools/pkg/explorer"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/kuberesources"
	v1 "github.com/itowlson/vscode-kubernetes-tools/pkg/v1/clusterexplorer"
)

type (
	NodeType            = v1.NodeType
	ResourceKind        = v1.ResourceKind
	ClusterExplorerNode = v1.ClusterExplorerNode
	Node                = v1.Node
	NodeContributor     = v1.NodeContributor
	NodeUICustomizer    = v1.NodeUICustomizer
	NodeSource          = v1.NodeSource
)

const (
	NodeTypeError           = v1.NodeTypeError
	NodeTypeContext         = v1.NodeTypeContext
	NodeTypeContextInactive = v1.NodeTypeContextInactive
	NodeTypeGroupingFolder  = v1.NodeTypeGroupingFolder
	NodeTypeResourceFolder  = v1.NodeTypeResourceFolder
	NodeTypeResource        = v1.NodeTypeResource
	NodeTypeConfigItem      = v1.NodeTypeConfigItem
	NodeTypeHelmRelease     = v1.NodeTypeHelmRelease
	NodeTypeExtension       = v1.NodeTypeExtension
)

// FromInternal maps an explorer node to its v1.1 view, which is its v1 view.
func FromInternal(node explorer.Node) ClusterExplorerNode {
	return v1.FromInternal(node)
}

// API is the v1.1 cluster explorer API. Apart from NodeSources it behaves
// exactly as v1.
type API struct {
	v1     *v1.API
	bridge v1.Bridge
}

// New creates the v1.1 API over an explorer.
func New(e *explorer.Explorer) *API {
	return &API{v1: v1.New(e), bridge: v1.NewBridge(e)}
}

// ResolveCommandTarget returns the v1.1 view of a command target, or nil if
// the target is not an explorer node.
func (a *API) ResolveCommandTarget(target any) *ClusterExplorerNode {
	return a.v1.ResolveCommandTarget(target)
}

// RegisterNodeContributor adds a contributor to the explorer.
func (a *API) RegisterNodeContributor(c NodeContributor) {
	a.v1.RegisterNodeContributor(c)
}

// RegisterNodeUICustomizer adds a UI customizer to the explorer.
func (a *API) RegisterNodeUICustomizer(c NodeUICustomizer) {
	a.v1.RegisterNodeUICustomizer(c)
}

// NodeSources returns the built-in node source constructors.
func (a *API) NodeSources() NodeSources {
	return NodeSources{bridge: a.bridge}
}

// Refresh asks the explorer to re-read the tree.
func (a *API) Refresh() {
	a.v1.Refresh()
}

// NodeSources constructs built-in node sources.
type NodeSources struct {
	bridge v1.Bridge
}

// ResourceFolder is a folder listing every object of a resource kind. An
// empty apiName defaults to the lower-cased plural display name.
func (s NodeSources) ResourceFolder(displayName, pluralDisplayName, manifestKind, abbreviation, apiName string) NodeSource {
	kind := kuberesources.NewResourceKind(displayName, pluralDisplayName, manifestKind, abbreviation, apiName)
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
