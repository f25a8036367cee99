package explorer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parentView struct {
	Kind string
	Name string
}

type externalNode struct {
	label    string
	children []*externalNode
}

func (n *externalNode) GetChildren(context.Context) ([]*externalNode, error) { return n.children, nil }

func (n *externalNode) GetTreeItem() TreeItem { return TreeItem{Label: n.label} }

type recordingContributor struct {
	seen []*parentView
}

func (c *recordingContributor) ContributesChildren(parent *parentView) bool {
	c.seen = append(c.seen, parent)
	return parent != nil && parent.Kind == string(NodeTypeContext)
}

func (c *recordingContributor) GetChildren(_ context.Context, parent *parentView) ([]*externalNode, error) {
	return []*externalNode{{label: "child of " + parent.Name, children: []*externalNode{{label: "grandchild"}}}}, nil
}

func downgradeForTest(n Node) parentView {
	v := parentView{Kind: string(n.NodeType())}
	if c, ok := n.(*ContextNode); ok {
		v.Name = c.Name
	}
	return v
}

func upgradeForTest(n *externalNode) Node {
	return ContributedNode(n, upgradeForTest)
}

func TestContributorExtender(t *testing.T) {
	impl := &recordingContributor{}
	x := ContributorExtender[parentView, *externalNode](impl, downgradeForTest, upgradeForTest)

	assert.False(t, x.ContributesChildren(nil))
	assert.False(t, x.ContributesChildren(&GroupingFolderNode{DisplayName: "g"}))
	assert.True(t, x.ContributesChildren(&ContextNode{Name: "prod", Active: true}))
	require.Len(t, impl.seen, 3)
	assert.Nil(t, impl.seen[0])
	assert.Equal(t, &parentView{Kind: "folder.grouping"}, impl.seen[1])

	children, err := x.Children(context.Background(), Env{}, &ContextNode{Name: "prod", Active: true})
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, NodeTypeExtension, children[0].NodeType())
	assert.Equal(t, "child of prod", children[0].TreeItem().Label)

	grandchildren, err := children[0].Children(context.Background(), Env{})
	require.NoError(t, err)
	require.Len(t, grandchildren, 1)
	assert.Equal(t, "grandchild", grandchildren[0].TreeItem().Label)

	ext := children[0].(*ExtensionNode)
	assert.IsType(t, &externalNode{}, ext.Payload)
}
