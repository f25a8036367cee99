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
		"helm history":     NodeTypeExtension,
		"extension":        NodeTypeExtension,
		"unrecognized":     NodeTypeExtension,
	}
	samples := explorertest.Samples()
	require.Len(t, samples, len(want))

	for _, s := range samples {
		t.Run(s.Name, func(t *testing.T) {
			first := FromInternal(s.Node)
			assert.Equal(t, want[s.Name], first.NodeType)
			if diff := cmp.Diff(first, FromInternal(s.Node)); diff != "" {
				t.Errorf("FromInternal not deterministic (-first +second):\n%s", diff)
			}
		})
	}
}

func TestFromInternal_Fields(t *testing.T) {
	byName := map[string]explorer.Node{}
	for _, s := range explorertest.Samples() {
		byName[s.Name] = s.Node
	}

	res := FromInternal(byName["resource"])
	want := ClusterExplorerNode{
		NodeType:  NodeTypeResource,
		Name:      "web-1",
		Namespace: "default",
		ResourceKind: &ResourceKind{
			DisplayName:       "Pod",
			PluralDisplayName: "Pods",
			ManifestKind:      "Pod",
			Abbreviation:      "pod",
		},
		Metadata: map[string]any{"uid": "1234"},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("resource node mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "prod", FromInternal(byName["context active"]).Name)
	assert.Equal(t, "dev", FromInternal(byName["context inactive"]).Name)
	assert.Equal(t, "app.conf", FromInternal(byName["config item"]).Name)
	assert.Equal(t, "web", FromInternal(byName["helm release"]).Name)
	assert.Equal(t, "Deployment", FromInternal(byName["resource folder"]).ResourceKind.ManifestKind)
}

func TestBridge_IdentityRoundTrip(t *testing.T) {
	b := NewBridge(explorertest.Explorer(explorer.Env{}))
	for _, s := range explorertest.Samples() {
		assert.Same(t, s.Node, InternalNode(b.Node(s.Node)), s.Name)
	}

	folder := &explorer.GroupingFolderNode{DisplayName: "Workloads"}
	src := explorer.StaticSource(folder)
	wrapped := b.NodeSource(src)
	_, builtIn := wrapped.(*builtInNodeSource)
	require.True(t, builtIn)
	nodes, err := b.InternalNodeSource(wrapped).Nodes(context.Background(), explorer.Env{})
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Same(t, folder, nodes[0])

	attached := src.At("Workloads")
	assert.Same(t, attached, Extender(&builtInContributor{impl: attached}))
}

type consumerNode struct {
	label string
}

func (n consumerNode) GetChildren(context.Context) ([]Node, error) { return nil, nil }

func (n consumerNode) GetTreeItem() explorer.TreeItem { return explorer.TreeItem{Label: n.label} }

type consumerContributor struct {
	parents []*ClusterExplorerNode
}

func (c *consumerContributor) ContributesChildren(parent *ClusterExplorerNode) bool {
	c.parents = append(c.parents, parent)
	return parent != nil && parent.NodeType == NodeTypeExtension
}

func (c *consumerContributor) GetChildren(context.Context, *ClusterExplorerNode) ([]Node, error) {
	return []Node{consumerNode{label: "mine"}}, nil
}

func TestAPI_RegisterNodeContributor(t *testing.T) {
	e := explorertest.Explorer(explorer.Env{})
	api := New(e)
	c := &consumerContributor{}
	api.RegisterNodeContributor(c)
	ctx := context.Background()

	// Helm history has no v1 shape, so the contributor sees it as an extension.
	children := e.Children(ctx, &explorer.HelmHistoryNode{ReleaseName: "web", Revision: 1})
	require.Len(t, children, 1)
	assert.Equal(t, explorer.NodeTypeExtension, children[0].NodeType())
	assert.Equal(t, "mine", children[0].TreeItem().Label)

	require.NotEmpty(t, c.parents)
	assert.Equal(t, NodeTypeExtension, c.parents[0].NodeType)
}

func TestAPI_NodeSources(t *testing.T) {
	e := explorertest.Explorer(explorer.Env{Kubectl: explorertest.Kubectl("web-1", "web-2")})
	api := New(e)
	ns := api.NodeSources()
	ctx := context.Background()

	folder := ns.GroupingFolder("My Things", "",
		ns.ResourceFolder("Widget", "Widgets", "Widget", "wd"),
		ns.Resources("Pod", "pod").All(),
	)
	api.RegisterNodeContributor(folder.At(""))
	api.RegisterNodeContributor(ns.Resources("Pod", "pod").FromQuery("-l app=web").At("My Things"))

	top := e.Children(ctx, &explorer.ContextNode{Name: "prod", Active: true})
	mine := top[len(top)-1]
	require.Equal(t, "My Things", mine.TreeItem().Label)

	inside := e.Children(ctx, mine)
	var got []string
	for _, n := range inside {
		got = append(got, n.TreeItem().Label)
	}
	assert.Equal(t, []string{"Widgets", "web-1", "web-2", "web-1", "web-2"}, got)
}

func TestAPI_ConditionalSourceAndConsumerSource(t *testing.T) {
	e := explorertest.Explorer(explorer.Env{})
	api := New(e)
	ns := api.NodeSources()
	ctx := context.Background()

	enabled := false
	cond := ns.ResourceFolder("Widget", "Widgets", "Widget", "wd").If(func(context.Context) (bool, error) {
		return enabled, nil
	})
	nodes, err := cond.Nodes(ctx)
	require.NoError(t, err)
	assert.Empty(t, nodes)

	enabled = true
	nodes, err = cond.Nodes(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Widgets", nodes[0].GetTreeItem().Label)

	folder := ns.GroupingFolder("Outer", "", consumerSource{})
	api.RegisterNodeContributor(folder.At(""))
	top := e.Children(ctx, &explorer.ContextNode{Name: "prod", Active: true})
	outer := top[len(top)-1]
	inside := e.Children(ctx, outer)
	require.Len(t, inside, 1)
	assert.Equal(t, "consumer", inside[0].TreeItem().Label)
}

type consumerSource struct{}

func (consumerSource) At(string) NodeContributor { return nil }

func (s consumerSource) If(func(context.Context) (bool, error)) NodeSource { return s }

func (consumerSource) Nodes(context.Context) ([]Node, error) {
	return []Node{consumerNode{label: "consumer"}}, nil
}

type customizer struct{}

func (customizer) Customize(_ context.Context, node ClusterExplorerNode, item *explorer.TreeItem) error {
	item.Description = string(node.NodeType)
	return nil
}

func TestAPI_CustomizerAndResolve(t *testing.T) {
	e := explorertest.Explorer(explorer.Env{})
	api := New(e)
	api.RegisterNodeUICustomizer(customizer{})

	item := e.TreeItem(context.Background(), &explorer.ContextNode{Name: "dev"})
	assert.Equal(t, "context.inactive", item.Description)

	target := api.ResolveCommandTarget(&explorer.ResourceNode{Name: "web"})
	require.NotNil(t, target)
	assert.Equal(t, NodeTypeResource, target.NodeType)

	b := NewBridge(e)
	target = api.ResolveCommandTarget(b.Node(&explorer.HelmReleaseNode{ReleaseName: "web"}))
	require.NotNil(t, target)
	assert.Equal(t, NodeTypeHelmRelease, target.NodeType)

	assert.Nil(t, api.ResolveCommandTarget("not a node"))
	assert.Nil(t, api.ResolveCommandTarget(nil))
	assert.Nil(t, api.ResolveCommandTarget((*explorer.ResourceNode)(nil)))
	assert.Nil(t, api.ResolveCommandTarget((*builtInNode)(nil)))

	var refreshed bool
	e.OnRefresh(func() { refreshed = true })
	api.Refresh()
	assert.True(t, refreshed)
}
