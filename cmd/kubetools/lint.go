package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/api"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/explorer"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/host"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/lifecycle"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/lint"
	v1diag "github.com/itowlson/vscode-kubernetes-tools/pkg/v1/diagnostics"
)

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint FILE...",
		Short: "Lint Kubernetes manifests with the built-in linters and configured plugins",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			registry := lint.NewRegistry(lint.BuiltIn()...)

			broker := api.NewBroker(explorer.New(explorer.Env{Host: host.NewLogHost(a.log)}, nil), registry, api.WithLogger(a.log))
			diagnostics := broker.Get(api.ComponentDiagnostics, "v1")
			if !diagnostics.Available() {
				return fmt.Errorf("diagnostics API v1 is %s", diagnostics.Status)
			}
			v1 := diagnostics.Payload.(*v1diag.API)
			for _, pc := range a.cfg.Plugins {
				launched, err := lifecycle.Launch(ctx, pc, a.pluginLogger())
				if err != nil {
					return err
				}
				defer launched.Kill()
				a.log.Debug("plugin started",
					zap.String("plugin", launched.Info.Name),
					zap.String("version", launched.Info.Version))
				v1.RegisterDiagnosticsContributor(launched.Contributor)
			}

			svc := lint.NewService(registry,
				lint.WithLogger(a.log),
				lint.WithTracerProvider(a.tel.TracerProvider()),
				lint.WithSettings(a.cfg),
				lint.WithMetrics(lint.NewMetrics(prometheus.NewRegistry())),
			)

			errorCount := 0
			for _, path := range args {
				text, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				doc := lint.NewTextDocument(fileURI(path), languageFor(path), string(text))
				for _, d := range svc.Lint(ctx, doc) {
					printDiagnostic(cmd.OutOrStdout(), path, d)
					if d.Severity == lint.SeverityError {
						errorCount++
					}
				}
			}
			if errorCount > 0 {
				return fmt.Errorf("%d error(s) found", errorCount)
			}
			return nil
		},
	}
}

// languageFor picks a language id from a file extension. Unknown extensions
// are plain text, which no linter reads.
func languageFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return lint.LanguageYAML
	case ".json":
		return lint.LanguageJSON
	default:
		return "plaintext"
	}
}

func fileURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "file://" + filepath.ToSlash(path)
}

// printDiagnostic writes d in the file:line:col form editors can jump to.
func printDiagnostic(w io.Writer, path string, d lint.Diagnostic) {
	fmt.Fprintf(w, "%s:%d:%d: %s: %s", path, d.Range.Start.Line+1, d.Range.Start.Character+1, d.Severity, d.Message)
	if d.Source != "" {
		fmt.Fprintf(w, " [%s]", d.Source)
	}
	fmt.Fprintln(w)
}
