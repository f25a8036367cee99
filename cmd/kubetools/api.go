package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/api"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/explorer"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/host"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/lint"
)

func newAPICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "api [COMPONENT VERSION | VERSION]",
		Short: "Resolve an extension API version",
		Long: `Resolves a component API version the way an extension requesting it would.
With no arguments, lists the components. With a single argument, resolves a
whole-extension API version.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			broker := api.NewBroker(
				explorer.New(explorer.Env{Host: host.NewLogHost(a.log)}, nil),
				lint.NewRegistry(lint.BuiltIn()...),
				api.WithLogger(a.log),
			)
			w := cmd.OutOrStdout()
			switch len(args) {
			case 0:
				for _, c := range broker.Components() {
					fmt.Fprintln(w, c)
				}
			case 1:
				fmt.Fprintln(w, api.LegacyVersion(args[0]).Status)
			default:
				result := broker.Get(args[0], args[1])
				if result.Available() {
					fmt.Fprintf(w, "%s (%T)\n", result.Status, result.Payload)
				} else {
					fmt.Fprintln(w, result.Status)
				}
			}
			return nil
		},
	}
}
