package main

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/config"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/telemetry"
)

// app is what every subcommand runs against. It is populated by the root
// command's PersistentPreRunE.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *zap.Logger
	tel *telemetry.Telemetry
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:          "kubetools",
		Short:        "Kubernetes manifest linting and cluster exploration",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close(cmd.Context())
		},
	}
	cmd.SetVersionTemplate(`{{printf "kubetools version %s\n" .Version}}`)
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to the kubetools config file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")

	cmd.AddCommand(
		newLintCmd(a),
		newTreeCmd(a),
		newAPICmd(a),
	)
	return cmd
}

func (a *app) setup(ctx context.Context) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	a.log, err = newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	a.tel, err = telemetry.Setup(ctx, cfg.Telemetry, telemetry.WithLogger(a.log))
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	return nil
}

func (a *app) close(ctx context.Context) error {
	var err error
	if a.tel != nil {
		err = multierr.Append(err, a.tel.Shutdown(ctx))
	}
	if a.log != nil {
		// Sync fails on terminals; the error carries no information.
		_ = a.log.Sync()
	}
	return err
}

// pluginLogger returns the hclog logger handed to plugin processes.
func (a *app) pluginLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "plugin",
		Level:  hclog.LevelFromString(a.cfg.Log.Level),
		Output: stderr,
	})
}
