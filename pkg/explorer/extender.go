package explorer

import "context"

// Extender contributes children to nodes it recognises. A nil parent means
// the tree root.
type Extender interface {
	ContributesChildren(parent Node) bool
	Children(ctx context.Context, env Env, parent Node) ([]Node, error)
}

// UICustomizer adjusts the tree item of any node before it is rendered.
type UICustomizer interface {
	Customize(ctx context.Context, node Node, item *TreeItem) error
}

// UICustomizerFunc adapts a function to UICustomizer.
type UICustomizerFunc func(ctx context.Context, node Node, item *TreeItem) error

func (f UICustomizerFunc) Customize(ctx context.Context, node Node, item *TreeItem) error {
	return f(ctx, node, item)
}

// Contributor is the shape of an external node contributor whose view of a
// parent node is P and whose contributed nodes are C. A nil parent means the
// tree root.
type Contributor[P, C any] interface {
	ContributesChildren(parent *P) bool
	GetChildren(ctx context.Context, parent *P) ([]C, error)
}

// ContributorExtender bridges an external contributor into the tree. Before
// every call the parent is downgraded to the contributor's view; every node it
// returns is upgraded back to an internal node.
func ContributorExtender[P, C any](impl Contributor[P, C], downgrade func(Node) P, upgrade func(C) Node) Extender {
	return &contributorExtender[P, C]{impl: impl, downgrade: downgrade, upgrade: upgrade}
}

type contributorExtender[P, C any] struct {
	impl      Contributor[P, C]
	downgrade func(Node) P
	upgrade   func(C) Node
}

func (e *contributorExtender[P, C]) parentView(parent Node) *P {
	if parent == nil {
		return nil
	}
	p := e.downgrade(parent)
	return &p
}

func (e *contributorExtender[P, C]) ContributesChildren(parent Node) bool {
	return e.impl.ContributesChildren(e.parentView(parent))
}

func (e *contributorExtender[P, C]) Children(ctx context.Context, _ Env, parent Node) ([]Node, error) {
	children, err := e.impl.GetChildren(ctx, e.parentView(parent))
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, len(children))
	for i, c := range children {
		nodes[i] = e.upgrade(c)
	}
	return nodes, nil
}

// NodeLike is the shape of an external node whose children are of its own type.
type NodeLike[N any] interface {
	GetChildren(ctx context.Context) ([]N, error)
	GetTreeItem() TreeItem
}

// ContributedNode wraps an external node as an ExtensionNode. Its children
// are upgraded with the same function, so built-in nodes handed back by the
// consumer are recovered rather than wrapped again.
func ContributedNode[N NodeLike[N]](n N, upgrade func(N) Node) *ExtensionNode {
	return NewExtensionNode(n,
		func(ctx context.Context) ([]Node, error) {
			children, err := n.GetChildren(ctx)
			if err != nil {
				return nil, err
			}
			nodes := make([]Node, len(children))
			for i, c := range children {
				nodes[i] = upgrade(c)
			}
			return nodes, nil
		},
		n.GetTreeItem,
	)
}
