// Package explorer holds the internal cluster explorer model: the node
// variants, composable node sources, and the registry of tree extenders and
// UI customizers. Versioned contract packages translate to and from it.
package explorer

import (
	"context"
	"reflect"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/host"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/kubectl"
)

// NodeType discriminates the explorer node variants.
type NodeType string

const (
	NodeTypeError          NodeType = "error"
	NodeTypeContext        NodeType = "context"
	NodeTypeGroupingFolder NodeType = "folder.grouping"
	NodeTypeResourceFolder NodeType = "folder.resource"
	NodeTypeResource       NodeType = "resource"
	NodeTypeConfigItem     NodeType = "configitem"
	NodeTypeHelmRelease    NodeType = "helm.release"
	NodeTypeHelmHistory    NodeType = "helm.history"
	NodeTypeExtension      NodeType = "extension"
)

// AllNodeTypes returns every node type the explorer produces.
func AllNodeTypes() []NodeType {
	return []NodeType{
		NodeTypeError,
		NodeTypeContext,
		NodeTypeGroupingFolder,
		NodeTypeResourceFolder,
		NodeTypeResource,
		NodeTypeConfigItem,
		NodeTypeHelmRelease,
		NodeTypeHelmHistory,
		NodeTypeExtension,
	}
}

// Node is an explorer tree node.
type Node interface {
	NodeType() NodeType
	Children(ctx context.Context, env Env) ([]Node, error)
	TreeItem() TreeItem
}

// IsNil reports whether n is nil or a nil pointer held in a Node.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// HelmLister reads Helm releases for the Helm Releases folder.
type HelmLister interface {
	HelmReleases(ctx context.Context) ([]string, error)
	HelmHistory(ctx context.Context, release string) ([]kubectl.HelmRevision, error)
}

// Env carries the collaborators nodes use to produce their children.
type Env struct {
	Kubectl kubectl.Kubectl
	Host    host.Host

	// Helm is optional. When nil the Helm Releases folder is not shown.
	Helm HelmLister
}

// CollapsibleState says whether a tree item can be expanded.
type CollapsibleState int

const (
	CollapsibleNone CollapsibleState = iota
	CollapsibleCollapsed
	CollapsibleExpanded
)

// TreeItem is the rendering of a node.
type TreeItem struct {
	Label        string           `json:"label"`
	ID           string           `json:"id,omitempty"`
	Description  string           `json:"description,omitempty"`
	Tooltip      string           `json:"tooltip,omitempty"`
	ContextValue string           `json:"contextValue,omitempty"`
	IconPath     string           `json:"iconPath,omitempty"`
	Collapsible  CollapsibleState `json:"collapsibleState"`
	Command      *host.Command    `json:"command,omitempty"`
}
