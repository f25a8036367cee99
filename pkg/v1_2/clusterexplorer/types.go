// Package clusterexplorer is version 1.2 of the cluster explorer contract.
// It adds Helm history nodes and an unrenderable shape for nodes the contract
// cannot describe.
package clusterexplorer

import (
	"context"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/explorer"
)

// NodeType discriminates the v1.2 node shapes.
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
	NodeTypeHelmHistory     NodeType = "helm.history"
	NodeTypeExtension       NodeType = "extension"
	NodeTypeUnrenderable    NodeType = "unrenderable"
)

// ResourceKind describes a kind of Kubernetes resource.
type ResourceKind struct {
	DisplayName       string `json:"displayName"`
	PluralDisplayName string `json:"pluralDisplayName"`
	ManifestKind      string `json:"manifestKind"`
	Abbreviation      string `json:"abbreviation"`
	APIName           string `json:"apiName,omitempty"`
}

// ClusterExplorerNode is the v1.2 view of an explorer node. Field use by
// NodeType is as in v1; helm.history and unrenderable carry no fields.
type ClusterExplorerNode struct {
	NodeType     NodeType       `json:"nodeType"`
	Name         string         `json:"name,omitempty"`
	Namespace    string         `json:"namespace,omitempty"`
	ResourceKind *ResourceKind  `json:"resourceKind,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// Node is a consumer-implemented tree node.
type Node interface {
	GetChildren(ctx context.Context) ([]Node, error)
	GetTreeItem() explorer.TreeItem
}

// NodeContributor adds children beneath matching parent nodes.
type NodeContributor interface {
	ContributesChildren(parent *ClusterExplorerNode) bool
	GetChildren(ctx context.Context, parent *ClusterExplorerNode) ([]Node, error)
}

// NodeUICustomizer adjusts the tree item rendered for a node.
type NodeUICustomizer interface {
	Customize(ctx context.Context, node ClusterExplorerNode, item *explorer.TreeItem) error
}

// NodeSource yields nodes and can be placed under a folder or made conditional.
type NodeSource interface {
	At(parentFolder string) NodeContributor
	If(condition func(ctx context.Context) (bool, error)) NodeSource
	Nodes(ctx context.Context) ([]Node, error)
}
