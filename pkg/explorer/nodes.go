package explorer

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/kubectl"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/kuberesources"
)

const (
	contextValueCluster         = "vsKubernetes.cluster"
	contextValueClusterInactive = "vsKubernetes.cluster.inactive"
	contextValueFolderResource  = "vsKubernetes.kind"
	contextValueFolderGrouping  = "vsKubernetes.folder"
	contextValueResource        = "vsKubernetes.resource"
	contextValueConfigItem      = "vsKubernetes.file"
	contextValueHelmRelease     = "vsKubernetes.helmRelease"
	contextValueHelmHistory     = "vsKubernetes.helmHistory"
)

// ErrorNode is a placeholder rendered where children could not be listed.
type ErrorNode struct {
	Message string
	Detail  string
}

func NewErrorNode(message, detail string) *ErrorNode {
	return &ErrorNode{Message: message, Detail: detail}
}

func (n *ErrorNode) NodeType() NodeType { return NodeTypeError }

func (n *ErrorNode) Children(context.Context, Env) ([]Node, error) { return nil, nil }

func (n *ErrorNode) TreeItem() TreeItem {
	return TreeItem{Label: n.Message, Tooltip: n.Detail}
}

// ContextNode is a kubeconfig context. Only the active context is expanded
// into resource folders.
type ContextNode struct {
	Name    string
	Cluster string
	Active  bool
}

func (n *ContextNode) NodeType() NodeType { return NodeTypeContext }

func (n *ContextNode) Children(ctx context.Context, env Env) ([]Node, error) {
	if !n.Active {
		return nil, nil
	}
	return BuiltInFolders(env).Nodes(ctx, env)
}

func (n *ContextNode) TreeItem() TreeItem {
	item := TreeItem{
		Label:        n.Name,
		ID:           "context:" + n.Name,
		Tooltip:      n.Cluster,
		ContextValue: contextValueClusterInactive,
	}
	if n.Active {
		item.ContextValue = contextValueCluster
		item.Collapsible = CollapsibleExpanded
	}
	return item
}

// BuiltInFolders is the source of an active context's standard folders.
func BuiltInFolders(env Env) NodeSource {
	sources := []NodeSource{
		ResourceFolderSource(kuberesources.Namespace),
		ResourceFolderSource(kuberesources.Node),
		GroupingFolderSource("Workloads", "",
			ResourceFolderSource(kuberesources.Deployment),
			ResourceFolderSource(kuberesources.StatefulSet),
			ResourceFolderSource(kuberesources.DaemonSet),
			ResourceFolderSource(kuberesources.Job),
			ResourceFolderSource(kuberesources.CronJob),
			ResourceFolderSource(kuberesources.Pod),
		),
		GroupingFolderSource("Network", "",
			ResourceFolderSource(kuberesources.Service),
			ResourceFolderSource(kuberesources.Endpoint),
			ResourceFolderSource(kuberesources.Ingress),
		),
		GroupingFolderSource("Storage", "",
			ResourceFolderSource(kuberesources.PersistentVolume),
			ResourceFolderSource(kuberesources.PersistentVolumeClaim),
			ResourceFolderSource(kuberesources.StorageClass),
		),
		GroupingFolderSource("Configuration", "",
			ResourceFolderSource(kuberesources.ConfigMap),
			ResourceFolderSource(kuberesources.Secret),
		),
		ResourceFolderSource(kuberesources.CRD),
	}
	if env.Helm != nil {
		sources = append(sources, GroupingFolderSource("Helm Releases", contextValueHelmRelease+".folder", HelmReleasesSource()))
	}
	return Concat(sources...)
}

// GroupingFolderNode is a folder whose children come from node sources.
type GroupingFolderNode struct {
	DisplayName  string
	ContextValue string
	Sources      []NodeSource
}

func (n *GroupingFolderNode) NodeType() NodeType { return NodeTypeGroupingFolder }

// Children fetches every source concurrently and concatenates the results in
// declaration order.
func (n *GroupingFolderNode) Children(ctx context.Context, env Env) ([]Node, error) {
	return Concat(n.Sources...).Nodes(ctx, env)
}

func (n *GroupingFolderNode) TreeItem() TreeItem {
	cv := n.ContextValue
	if cv == "" {
		cv = contextValueFolderGrouping
	}
	return TreeItem{
		Label:        n.DisplayName,
		ID:           "folder.grouping:" + n.DisplayName,
		ContextValue: cv,
		Collapsible:  CollapsibleCollapsed,
	}
}

// ResourceFolderNode lists the live objects of one resource kind.
type ResourceFolderNode struct {
	Kind kuberesources.ResourceKind
}

func (n *ResourceFolderNode) NodeType() NodeType { return NodeTypeResourceFolder }

func (n *ResourceFolderNode) Children(ctx context.Context, env Env) ([]Node, error) {
	return AllResourcesSource(n.Kind).Nodes(ctx, env)
}

func (n *ResourceFolderNode) TreeItem() TreeItem {
	return TreeItem{
		Label:        n.Kind.PluralDisplayName,
		ID:           "folder.resource:" + n.Kind.APIName,
		ContextValue: contextValueFolderResource + "." + n.Kind.Abbreviation,
		Collapsible:  CollapsibleCollapsed,
	}
}

// ObjectGetter is implemented by Kubectl ports that can fetch a single object.
// Config maps and secrets use it to show their data keys.
type ObjectGetter interface {
	Get(ctx context.Context, kind kuberesources.ResourceKind, namespace, name string) (map[string]any, error)
}

// ResourceNode is one live Kubernetes object.
type ResourceNode struct {
	Kind      kuberesources.ResourceKind
	Name      string
	Namespace string
	Metadata  map[string]any
	ExtraInfo any
}

func (n *ResourceNode) NodeType() NodeType { return NodeTypeResource }

// Children lists the data keys of config maps and secrets. Other kinds have
// no children.
func (n *ResourceNode) Children(ctx context.Context, env Env) ([]Node, error) {
	if n.Kind.ManifestKind != kuberesources.ConfigMap.ManifestKind && n.Kind.ManifestKind != kuberesources.Secret.ManifestKind {
		return nil, nil
	}
	getter, ok := env.Kubectl.(ObjectGetter)
	if !ok {
		return nil, nil
	}
	obj, err := getter.Get(ctx, n.Kind, n.Namespace, n.Name)
	if err != nil {
		return nil, err
	}
	data, _ := obj["data"].(map[string]any)
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	children := make([]Node, len(keys))
	for i, k := range keys {
		children[i] = &ConfigItemNode{Key: k, Parent: n}
	}
	return children, nil
}

func (n *ResourceNode) TreeItem() TreeItem {
	collapsible := CollapsibleNone
	if n.Kind.ManifestKind == kuberesources.ConfigMap.ManifestKind || n.Kind.ManifestKind == kuberesources.Secret.ManifestKind {
		collapsible = CollapsibleCollapsed
	}
	return TreeItem{
		Label:        n.Name,
		ID:           n.ResourceID(),
		ContextValue: contextValueResource + "." + n.Kind.Abbreviation,
		Collapsible:  collapsible,
	}
}

// ResourceID is the kubectl-style identifier of the object (kind/name).
func (n *ResourceNode) ResourceID() string {
	return n.Kind.Abbreviation + "/" + n.Name
}

// ConfigItemNode is one data key of a config map or secret.
type ConfigItemNode struct {
	Key    string
	Parent *ResourceNode
}

func (n *ConfigItemNode) NodeType() NodeType { return NodeTypeConfigItem }

func (n *ConfigItemNode) Children(context.Context, Env) ([]Node, error) { return nil, nil }

func (n *ConfigItemNode) TreeItem() TreeItem {
	item := TreeItem{Label: n.Key, ContextValue: contextValueConfigItem}
	if n.Parent != nil {
		item.ID = n.Parent.ResourceID() + "/" + n.Key
	}
	return item
}

// HelmReleaseNode is an installed Helm release.
type HelmReleaseNode struct {
	ReleaseName string
}

func (n *HelmReleaseNode) NodeType() NodeType { return NodeTypeHelmRelease }

func (n *HelmReleaseNode) Children(ctx context.Context, env Env) ([]Node, error) {
	if env.Helm == nil {
		return nil, nil
	}
	history, err := env.Helm.HelmHistory(ctx, n.ReleaseName)
	if err != nil {
		return nil, err
	}
	children := make([]Node, len(history))
	for i, h := range history {
		children[i] = &HelmHistoryNode{ReleaseName: n.ReleaseName, Revision: h.Revision, Status: h.Status}
	}
	return children, nil
}

func (n *HelmReleaseNode) TreeItem() TreeItem {
	return TreeItem{
		Label:        n.ReleaseName,
		ID:           "helmrelease:" + n.ReleaseName,
		ContextValue: contextValueHelmRelease,
		Collapsible:  CollapsibleCollapsed,
	}
}

// HelmHistoryNode is one revision of a Helm release.
type HelmHistoryNode struct {
	ReleaseName string
	Revision    int
	Status      string
}

func (n *HelmHistoryNode) NodeType() NodeType { return NodeTypeHelmHistory }

func (n *HelmHistoryNode) Children(context.Context, Env) ([]Node, error) { return nil, nil }

func (n *HelmHistoryNode) TreeItem() TreeItem {
	return TreeItem{
		Label:        strconv.Itoa(n.Revision),
		ID:           fmt.Sprintf("helmhistory:%s:%d", n.ReleaseName, n.Revision),
		Description:  n.Status,
		ContextValue: contextValueHelmHistory,
	}
}

// ExtensionNode is a node supplied by a consumer. The explorer renders it and
// asks it for children but never interprets it.
type ExtensionNode struct {
	// Payload is the consumer's own node value.
	Payload any

	children func(ctx context.Context) ([]Node, error)
	treeItem func() TreeItem
}

// NewExtensionNode wraps a consumer node given its children and rendering.
func NewExtensionNode(payload any, children func(ctx context.Context) ([]Node, error), treeItem func() TreeItem) *ExtensionNode {
	return &ExtensionNode{Payload: payload, children: children, treeItem: treeItem}
}

func (n *ExtensionNode) NodeType() NodeType { return NodeTypeExtension }

func (n *ExtensionNode) Children(ctx context.Context, _ Env) ([]Node, error) {
	if n.children == nil {
		return nil, nil
	}
	return n.children(ctx)
}

func (n *ExtensionNode) TreeItem() TreeItem {
	if n.treeItem == nil {
		return TreeItem{}
	}
	return n.treeItem()
}

var (
	_ Node = (*ErrorNode)(nil)
	_ Node = (*ContextNode)(nil)
	_ Node = (*GroupingFolderNode)(nil)
	_ Node = (*ResourceFolderNode)(nil)
	_ Node = (*ResourceNode)(nil)
	_ Node = (*ConfigItemNode)(nil)
	_ Node = (*HelmReleaseNode)(nil)
	_ Node = (*HelmHistoryNode)(nil)
	_ Node = (*ExtensionNode)(nil)
)

var _ HelmLister = (*kubectl.Dynamic)(nil)
