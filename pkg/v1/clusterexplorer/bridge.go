package clusterexplorer

import (
	"context"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/explorer"
)

// Bridge converts between v1 contract values and the internal explorer
// model. Values the bridge hands out are recognised when a consumer passes
// them back, so wrapping then unwrapping returns the original internal value.
// Contract versions that share v1's shapes build on it.
type Bridge struct {
	env func() explorer.Env
}

// NewBridge creates a bridge whose built-in nodes and sources list their
// children with the explorer's collaborators.
func NewBridge(e *explorer.Explorer) Bridge {
	return Bridge{env: e.Env}
}

// Node wraps an internal node.
func (b Bridge) Node(n explorer.Node) Node {
	return &builtInNode{impl: n, env: b.env}
}

// NodeSource wraps an internal node source.
func (b Bridge) NodeSource(src explorer.NodeSource) NodeSource {
	return &builtInNodeSource{impl: src, bridge: b}
}

// InternalNodeSource unwraps a built-in source, or adapts a consumer's own
// source so that its nodes are fetched lazily on every listing.
func (b Bridge) InternalNodeSource(src NodeSource) explorer.NodeSource {
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
			out[i] = InternalNode(n)
		}
		return out, nil
	})
}

// InternalNode unwraps a built-in node, or wraps a consumer node as an
// extension node.
func InternalNode(n Node) explorer.Node {
	if bi, ok := n.(*builtInNode); ok {
		return bi.impl
	}
	return explorer.ContributedNode(n, InternalNode)
}

// Extender unwraps a built-in contributor, or adapts a consumer contributor
// so that it sees parents in their v1 shape.
func Extender(c NodeContributor) explorer.Extender {
	if bi, ok := c.(*builtInContributor); ok {
		return bi.impl
	}
	return explorer.ContributorExtender[ClusterExplorerNode, Node](c, FromInternal, InternalNode)
}

// UICustomizer adapts a consumer customizer so that it sees nodes in their
// v1 shape.
func UICustomizer(c NodeUICustomizer) explorer.UICustomizer {
	return explorer.UICustomizerFunc(func(ctx context.Context, n explorer.Node, item *explorer.TreeItem) error {
		return c.Customize(ctx, FromInternal(n), item)
	})
}

// builtInNode is an internal node handed to a consumer.
type builtInNode struct {
	impl explorer.Node
	env  func() explorer.Env
}

func (n *builtInNode) GetChildren(ctx context.Context) ([]Node, error) {
	children, err := n.impl.Children(ctx, n.env())
	if err != nil {
		return nil, err
	}
	out := make([]Node, len(children))
	for i, c := range children {
		out[i] = &builtInNode{impl: c, env: n.env}
	}
	return out, nil
}

func (n *builtInNode) GetTreeItem() explorer.TreeItem {
	return n.impl.TreeItem()
}

// builtInNodeSource is an internal node source handed to a consumer.
type builtInNodeSource struct {
	impl   explorer.NodeSource
	bridge Bridge
}

func (s *builtInNodeSource) At(parentFolder string) NodeContributor {
	return &builtInContributor{impl: s.impl.At(parentFolder)}
}

func (s *builtInNodeSource) If(condition func(ctx context.Context) (bool, error)) NodeSource {
	return s.bridge.NodeSource(s.impl.If(condition))
}

func (s *builtInNodeSource) Nodes(ctx context.Context) ([]Node, error) {
	nodes, err := s.impl.Nodes(ctx, s.bridge.env())
	if err != nil {
		return nil, err
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = s.bridge.Node(n)
	}
	return out, nil
}

// builtInContributor is an attached node source handed to a consumer. It is
// only meaningful when registered; called directly it contributes nothing.
type builtInContributor struct {
	impl explorer.Extender
}

func (c *builtInContributor) ContributesChildren(*ClusterExplorerNode) bool { return false }

func (c *builtInContributor) GetChildren(context.Context, *ClusterExplorerNode) ([]Node, error) {
	return nil, nil
}
