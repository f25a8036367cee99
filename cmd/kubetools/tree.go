package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/explorer"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/host"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/kubectl"
)

func newTreeCmd(a *app) *cobra.Command {
	var (
		contextName string
		depth       int
	)
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the cluster explorer tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kubeconfig := a.cfg.Explorer.Kubeconfig
			dyn, err := kubectl.NewForContext(kubeconfig, contextName,
				kubectl.WithLogger(a.log),
				kubectl.WithNamespace(a.cfg.Explorer.Namespace),
			)
			if err != nil {
				return err
			}
			e := explorer.New(
				explorer.Env{Kubectl: dyn, Host: host.NewLogHost(a.log), Helm: dyn},
				func() ([]kubectl.Context, error) { return kubectl.KubeconfigContexts(kubeconfig) },
				explorer.WithLogger(a.log),
				explorer.WithTracerProvider(a.tel.TracerProvider()),
			)
			printTree(cmd.Context(), cmd.OutOrStdout(), e, depth)
			return nil
		},
	}
	cmd.Flags().StringVar(&contextName, "context", "", "kubeconfig context to list resources from (default: current)")
	cmd.Flags().IntVar(&depth, "depth", 3, "levels to expand below the contexts")
	return cmd
}

// printTree walks e from the roots, expanding collapsible nodes up to
// maxDepth levels below them.
func printTree(ctx context.Context, w io.Writer, e *explorer.Explorer, maxDepth int) {
	var walk func(parent explorer.Node, depth int)
	walk = func(parent explorer.Node, depth int) {
		for _, n := range e.Children(ctx, parent) {
			item := e.TreeItem(ctx, n)
			line := strings.Repeat("  ", depth) + item.Label
			if item.Description != "" {
				line += " (" + item.Description + ")"
			}
			fmt.Fprintln(w, line)
			if depth < maxDepth && item.Collapsible != explorer.CollapsibleNone {
				walk(n, depth+1)
			}
		}
	}
	walk(nil, 0)
}
