// Package explorertest provides explorer nodes and collaborators for tests of
// packages built on the explorer.
package explorertest

import (
	"context"
	"sync"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/explorer"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/kubectl"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/kuberesources"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/types"
)

// Sample is a labelled internal node.
type Sample struct {
	Name string
	Node explorer.Node
}

// Samples returns one node for every explorer node variant, plus both
// context states and a node of a type the explorer does not define.
func Samples() []Sample {
	return []Sample{
		{"error", explorer.NewErrorNode("Error", "boom")},
		{"context active", &explorer.ContextNode{Name: "prod", Active: true}},
		{"context inactive", &explorer.ContextNode{Name: "dev"}},
		{"grouping folder", &explorer.GroupingFolderNode{DisplayName: "Workloads"}},
		{"resource folder", &explorer.ResourceFolderNode{Kind: kuberesources.Deployment}},
		{"resource", &explorer.ResourceNode{
			Kind:      kuberesources.Pod,
			Name:      "web-1",
			Namespace: "default",
			Metadata:  map[string]any{"uid": "1234"},
		}},
		{"config item", &explorer.ConfigItemNode{Key: "app.conf"}},
		{"helm release", &explorer.HelmReleaseNode{ReleaseName: "web"}},
		{"helm history", &explorer.HelmHistoryNode{ReleaseName: "web", Revision: 3}},
		{"extension", explorer.NewExtensionNode("payload", nil, nil)},
		{"unrecognized", &Unrecognized{Tag: "future"}},
	}
}

// Unrecognized is a node of a type no contract version knows.
type Unrecognized struct {
	Tag string
}

func (Unrecognized) NodeType() explorer.NodeType { return "future.thing" }

func (Unrecognized) Children(context.Context, explorer.Env) ([]explorer.Node, error) {
	return nil, nil
}

func (Unrecognized) TreeItem() explorer.TreeItem { return explorer.TreeItem{Label: "?"} }

// Host records error messages.
type Host struct {
	mu       sync.Mutex
	messages []string
}

func (h *Host) ShowErrorMessage(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, message)
}

// Messages returns the recorded messages.
func (h *Host) Messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.messages...)
}

// Kubectl answers every command with the given lines.
func Kubectl(lines ...string) kubectl.Kubectl {
	return kubectl.Func(func(context.Context, string) types.Errorable[[]string] {
		return types.Succeeded(lines)
	})
}

// Explorer creates an explorer with an active "prod" and an inactive "dev"
// context.
func Explorer(env explorer.Env) *explorer.Explorer {
	return explorer.New(env, func() ([]kubectl.Context, error) {
		return []kubectl.Context{{Name: "dev"}, {Name: "prod", Active: true}}, nil
	})
}
