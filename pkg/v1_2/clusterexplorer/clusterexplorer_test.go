package clusterexplorer

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/explorer"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/explorer/explorertest"
)

func TestFromInternal_DowngradeTable(t *testing.T) {
	want := map[string]NodeType{
		"error":            NodeTypeError,
		"context active":   NodeTypeContext,
		"context inactive": NodeTypeContextInactive,
		"grouping folder":  NodeTypeGroupingFolder,
		"resource folder":  NodeTypeResourceFolder,
		"resource":         NodeTypeResource,
		"config item":      NodeTypeConfigItem,
		"helm release":     NodeTypeHelmRelease,
		"helm history":     NodeTypeHelmHistory,
		"extension":        NodeTypeExtension,
		"unrecognized":     NodeTypeUnrenderable,
	}
	samples := explorertest.Samples()
	require.Len(t, samples, len(want))

	for _, s := range samples {
		t.Run(s.Name, func(t *testing.T) {
			got := FromInternal(s.Node)
			assert.Equal(t, want[s.Name], got.NodeType)
			if diff := cmp.Diff(got, FromInternal(s.Node)); diff != "" {
				t.Errorf("FromInternal not deterministic (-first +second):\n%s", diff)
			}
		})
	}
}

func TestFromInternal_ResourceKindCarriesAPIName(t *testing.T) {
	for _, s := range explorertest.Samples() {
		if s.Name != "resource folder" {
			continue
		}
		got := FromInternal(s.Node)
		require.NotNil(t, got.ResourceKind)
		assert.Equal(t, "deployments", got.ResourceKind.APIName)
	}
}

func TestIdentityRoundTrip(t *testing.T) {
	env := func() explorer.Env { return explorer.Env{} }
	for _, s := range explorertest.Samples() {
		wrapped := wrapNodes([]explorer.Node{s.Node}, env)[0]
		assert.Same(t, s.Node, internalNodeOf(wrapped), s.Name)
	}

	x := explorer.StaticSource().At("")
	assert.Same(t, x, extenderOf(&builtInContributor{impl: x}))
}

type historyWatcher struct {
	seen []NodeType
}

func (w *historyWatcher) ContributesChildren(parent *ClusterExplorerNode) bool {
	if parent == nil {
		return false
	}
	w.seen = append(w.seen, parent.NodeType)
	return parent.NodeType == NodeTypeHelmHistory
}

func (w *historyWatcher) GetChildren(ctx context.Context, parent *ClusterExplorerNode) ([]Node, error) {
	return []Node{leaf("manifest")}, nil
}

type leaf string

func (l leaf) GetChildren(context.Context) ([]Node, error) { return nil, nil }

func (l leaf) GetTreeItem() explorer.TreeItem { return explorer.TreeItem{Label: string(l)} }

func TestAPI_ContributorSeesHelmHistory(t *testing.T) {
	e := explorertest.Explorer(explorer.Env{})
	api := New(e)
	w := &historyWatcher{}
	api.RegisterNodeContributor(w)
	ctx := context.Background()

	children := e.Children(ctx, &explorer.HelmHistoryNode{ReleaseName: "web", Revision: 2})
	require.Len(t, children, 1)
	assert.Equal(t, "manifest", children[0].TreeItem().Label)

	assert.Empty(t, e.Children(ctx, &explorertest.Unrecognized{}))
	assert.Equal(t, []NodeType{NodeTypeHelmHistory, NodeTypeUnrenderable}, w.seen)
}

func TestAPI_NodeSourcesAndCustomizer(t *testing.T) {
	e := explorertest.Explorer(explorer.Env{Kubectl: explorertest.Kubectl("a")})
	api := New(e)
	ns := api.NodeSources()
	ctx := context.Background()

	api.RegisterNodeContributor(ns.GroupingFolder("Extras", "extras",
		ns.ResourceFolder("Widget", "Widgets", "Widget", "wd", "widgets"),
	).At(""))
	api.RegisterNodeUICustomizer(customizerFunc(func(node ClusterExplorerNode, item *explorer.TreeItem) {
		if node.NodeType == NodeTypeGroupingFolder {
			item.Tooltip = "grouped"
		}
	}))

	top := e.Children(ctx, &explorer.ContextNode{Name: "prod", Active: true})
	extras := top[len(top)-1]
	item := e.TreeItem(ctx, extras)
	assert.Equal(t, "Extras", item.Label)
	assert.Equal(t, "extras", item.ContextValue)
	assert.Equal(t, "grouped", item.Tooltip)

	target := api.ResolveCommandTarget(extras)
	require.NotNil(t, target)
	assert.Equal(t, NodeTypeGroupingFolder, target.NodeType)
	assert.Nil(t, api.ResolveCommandTarget(42))
	assert.Nil(t, api.ResolveCommandTarget((*explorer.ResourceNode)(nil)))
	assert.Nil(t, api.ResolveCommandTarget((*builtInNode)(nil)))
}

type customizerFunc func(node ClusterExplorerNode, item *explorer.TreeItem)

func (f customizerFunc) Customize(_ context.Context, node ClusterExplorerNode, item *explorer.TreeItem) error {
	f(node, item)
	return nil
}
