package clusterexplorer

import (
	"context"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/explorer"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/kuberesources"
)

// FromInternal maps an explorer node to its v1.2 view. Node types the
// contract does not define map to unrenderable.
func FromInternal(node explorer.Node) ClusterExplorerNode {
	switch n := node.(type) {
	case *explorer.ErrorNode:
		return ClusterExplorerNode{NodeType: NodeTypeError}
	case *explorer.ContextNode:
		if n.Active {
			return ClusterExplorerNode{NodeType: NodeTypeContext, Name: n.Name}
		}
		return ClusterExplorerNode{NodeType: NodeTypeContextInactive, Name: n.Name}
	case *explorer.GroupingFolderNode:
		return ClusterExplorerNode{NodeType: NodeTypeGroupingFolder}
	case *explorer.ResourceFolderNode:
		return ClusterExplorerNode{NodeType: NodeTypeResourceFolder, ResourceKind: resourceKindOf(n.Kind)}
	case *explorer.ResourceNode:
		return ClusterExplorerNode{
			NodeType:     NodeTypeResource,
			Name:         n.Name,
			Namespace:    n.Namespace,
			ResourceKind: resourceKindOf(n.Kind),
			Metadata:     n.Metadata,
		}
	case *explorer.ConfigItemNode:
		return ClusterExplorerNode{NodeType: NodeTypeConfigItem, Name: n.Key}
	case *explorer.HelmReleaseNode:
		return ClusterExplorerNode{NodeType: NodeTypeHelmRelease, Name: n.ReleaseName}
	case *explorer.HelmHistoryNode:
		return ClusterExplorerNode{NodeType: NodeTypeHelmHistory}
	case *explorer.ExtensionNode:
		return ClusterExplorerNode{NodeType: NodeTypeExtension}
	default:
		return ClusterExplorerNode{NodeType: NodeTypeUnrenderable}
	}
}

func resourceKindOf(k kuberesources.ResourceKind) *ResourceKind {
	return &ResourceKind{
		DisplayName:       k.DisplayName,
		PluralDisplayName: k.PluralDisplayName,
		ManifestKind:      k.ManifestKind,
		Abbreviation:      k.Abbreviation,
		APIName:           k.APIName,
	}
}

// wrapper types for internal values handed to consumers; recognised by type
// when they come back so round trips return the original value.
type (
	builtInNode struct {
		impl explorer.Node
		env  func() explorer.Env
	}
	builtInNodeSource struct {
		impl explorer.NodeSource
		env  func() explorer.Env
	}
	builtInContributor struct {
		impl explorer.Extender
	}
)

func (n *builtInNode) GetChildren(ctx context.Context) ([]Node, error) {
	children, err := n.impl.Children(ctx, n.env())
	if err != nil {
		return nil, err
	}
	return wrapNodes(children, n.env), nil
}

func (n *builtInNode) GetTreeItem() explorer.TreeItem { return n.impl.TreeItem() }

func (s *builtInNodeSource) At(parentFolder string) NodeContributor {
	return &builtInContributor{impl: s.impl.At(parentFolder)}
}

func (s *builtInNodeSource) If(condition func(ctx context.Context) (bool, error)) NodeSource {
	return &builtInNodeSource{impl: s.impl.If(condition), env: s.env}
}

func (s *builtInNodeSource) Nodes(ctx context.Context) ([]Node, error) {
	nodes, err := s.impl.Nodes(ctx, s.env())
	if err != nil {
		return nil, err
	}
	return wrapNodes(nodes, s.env), nil
}

func (c *builtInContributor) ContributesChildren(*ClusterExplorerNode) bool { return false }

func (c *builtInContributor) GetChildren(context.Context, *ClusterExplorerNode) ([]Node, error) {
	return nil, nil
}

func wrapNodes(nodes []explorer.Node, env func() explorer.Env) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = &builtInNode{impl: n, env: env}
	}
	return out
}

func internalNodeOf(n Node) explorer.Node {
	if bi, ok := n.(*builtInNode); ok {
		return bi.impl
	}
	return explorer.ContributedNode(n, internalNodeOf)
}

func internalNodeSourceOf(src NodeSource) explorer.NodeSource {
	if bi, ok := src.(*builtInNodeSource); ok {
		return bi.impl
	}
	return explorer.FuncSource(func(ctx context.Context, _ explorer.Env) ([]explorer.Node, error) {
		nodes, err := src.Nodes(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]explorer.Node, len(nodes))
		for i, n := range nodes {
			out[i] = internalNodeOf(n)
		}
		return out, nil
	})
}

func extenderOf(c NodeContributor) explorer.Extender {
	if bi, ok := c.(*builtInContributor); ok {
		return bi.impl
	}
	return explorer.ContributorExtender[ClusterExplorerNode, Node](c, FromInternal, internalNodeOf)
}
