// Package clusterexplorer is version 1 of the cluster explorer contract.
// Consumers use it to inspect explorer nodes, contribute nodes of their own,
// and customise how nodes render. Its behavior is frozen: later contract
// versions add capabilities instead of changing this one.
package clusterexplorer

import (
	"context"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/explorer"
)

// NodeType discriminates the v1 node shapes.
type NodeType string

const (
	NodeTypeError           NodeType = "error"
	NodeTypeContext         NodeType = "context"
	NodeTypeContextInactive NodeType = "context.inactive"
	NodeTypeGroupingFolder  NodeType = "folder.grouping"
	NodeTypeResourceFolder  NodeType = "folder.resource"
	NodeTypeResource        NodeType = "resource"
	NodeTypeConfigItem      NodeType = "configitem"
	NodeTypeHelmRelease     NodeType = "helm.release"
	NodeTypeExtension       NodeType = "extension"
)

// ResourceKind describes a kind of Kubernetes resource.
type ResourceKind struct {
	DisplayName       string `json:"displayName"`
	PluralDisplayName string `json:"pluralDisplayName"`
	ManifestKind      string `json:"manifestKind"`
	Abbreviation      string `json:"abbreviation"`
}

// ClusterExplorerNode is the v1 view of an explorer node. Which fields are
// set depends on NodeType:
//
//	context, context.inactive: Name
//	folder.resource:           ResourceKind
//	resource:                  ResourceKind, Name, Namespace, Metadata
//	configitem:                Name (the data key)
//	helm.release:              Name (the release name)
type ClusterExplorerNode struct {
	NodeType     NodeType       `json:"nodeType"`
	Name         string         `json:"name,omitempty"`
	Namespace    string         `json:"namespace,omitempty"`
	ResourceKind *ResourceKind  `json:"resourceKind,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// Node is a node supplied by a consumer.
type Node interface {
	GetChildren(ctx context.Context) ([]Node, error)
	GetTreeItem() explorer.TreeItem
}

// NodeContributor adds children to explorer nodes. A nil parent is the
// tree root.
type NodeContributor interface {
	ContributesChildren(parent *ClusterExplorerNode) bool
	GetChildren(ctx context.Context, parent *ClusterExplorerNode) ([]Node, error)
}

// NodeUICustomizer adjusts the rendering of explorer nodes.
type NodeUICustomizer interface {
	Customize(ctx context.Context, node ClusterExplorerNode, item *explorer.TreeItem) error
}

// NodeSource is a composable description of nodes to contribute. Sources
// obtained from NodeSources are built in; consumers may also implement it.
type NodeSource interface {
	// At attaches the source under grouping folders named parentFolder, or
	// under the active context when parentFolder is empty.
	At(parentFolder string) NodeContributor
	// If makes the source conditional.
	If(condition func(ctx context.Context) (bool, error)) NodeSource
	Nodes(ctx context.Context) ([]Node, error)
}
