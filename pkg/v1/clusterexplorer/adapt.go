package clusterexplorer

import (
	"github.com/itowlson/vscode-kubernetes-tools/pkg/explorer"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/kuberesources"
)

// FromInternal maps an explorer node to its v1 view. It is total: node types
// v1 has no shape for, including Helm history, are folded into extension.
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
		return ClusterExplorerNode{NodeType: NodeTypeExtension}
	case *explorer.ExtensionNode:
		return ClusterExplorerNode{NodeType: NodeTypeExtension}
	default:
		return ClusterExplorerNode{NodeType: NodeTypeExtension}
	}
}

func resourceKindOf(k kuberesources.ResourceKind) *ResourceKind {
	return &ResourceKind{
		DisplayName:       k.DisplayName,
		PluralDisplayName: k.PluralDisplayName,
		ManifestKind:      k.ManifestKind,
		Abbreviation:      k.Abbreviation,
	}
}
