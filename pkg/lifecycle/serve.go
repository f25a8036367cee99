// Package lifecycle starts and connects to out-of-process diagnostics
// plugins.
package lifecycle

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/config"
	diagplugin "github.com/itowlson/vscode-kubernetes-tools/pkg/plugin"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/sdk"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/utils"
	v1diag "github.com/itowlson/vscode-kubernetes-tools/pkg/v1/diagnostics"
)

// ProtocolVersion is bumped whenever the plugin wire contract changes.
const ProtocolVersion = 1

// Plugin names dispensed by the host.
const (
	PluginDiagnostics = "diagnostics"
	PluginLifecycle   = "lifecycle"
)

// Capabilities advertised through GetCapabilities.
const (
	CapabilityDiagnostics = "diagnostics"
	CapabilityCodeActions = "codeActions"
)

// Handshake is shared by the host and every plugin binary.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  ProtocolVersion,
	MagicCookieKey:   "KUBETOOLS_PLUGIN",
	MagicCookieValue: "diagnostics",
}

// PluginSet returns the plugins served for impl. The host side passes a nil
// impl and a nil server.
func PluginSet(impl v1diag.DiagnosticsContributor, srv *Server) plugin.PluginSet {
	return plugin.PluginSet{
		PluginDiagnostics: &diagplugin.GRPCPlugin{Impl: impl},
		PluginLifecycle:   &Plugin{Impl: srv},
	}
}

// ServeOpts configures Serve.
type ServeOpts struct {
	Version string
	Logger  hclog.Logger
}

// Serve runs impl as a plugin until the host disconnects. It is meant to be
// the whole of a plugin binary's main.
func Serve(impl v1diag.DiagnosticsContributor, opts ServeOpts) {
	log := opts.Logger
	if log == nil {
		log = hclog.New(&hclog.LoggerOptions{
			Name:       impl.Name(),
			Level:      hclog.Info,
			JSONFormat: true,
		})
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins:         PluginSet(impl, NewServer(impl, opts.Version)),
		GRPCServer: func(serverOpts []grpc.ServerOption) *grpc.Server {
			return grpc.NewServer(utils.RegisterServerOpts(serverOpts, log)...)
		},
		Logger: log,
	})
}

// NewServer builds the lifecycle server describing impl.
func NewServer(impl v1diag.DiagnosticsContributor, version string) *Server {
	caps := []string{CapabilityDiagnostics}
	if _, ok := impl.(v1diag.CodeActionsContributor); ok {
		caps = append(caps, CapabilityCodeActions)
	}
	return &Server{
		Name:            impl.Name(),
		Version:         version,
		ProtocolVersion: ProtocolVersion,
		Capabilities:    caps,
	}
}

// Launched is a running plugin process.
type Launched struct {
	Info        Info
	Contributor v1diag.DiagnosticsContributor

	client *plugin.Client
}

// Kill stops the plugin process.
func (l *Launched) Kill() {
	l.client.Kill()
}

// Launch starts the plugin described by cfg and connects to it. The plugin
// must report the name cfg gives it.
func Launch(ctx context.Context, cfg config.PluginConfig, log hclog.Logger) (*Launched, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  Handshake,
		Plugins:          PluginSet(nil, nil),
		Cmd:              exec.CommandContext(ctx, cfg.Path, cfg.Args...),
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Logger:           log.Named(cfg.Name),
		GRPCDialOptions:  sdk.WithClientOpts(nil),
	})

	launched, err := connect(ctx, client, cfg.Name)
	if err != nil {
		client.Kill()
		return nil, fmt.Errorf("launching plugin %s: %w", cfg.Name, err)
	}
	return launched, nil
}

func connect(ctx context.Context, client *plugin.Client, name string) (*Launched, error) {
	rpc, err := client.Client()
	if err != nil {
		return nil, err
	}

	raw, err := rpc.Dispense(PluginLifecycle)
	if err != nil {
		return nil, err
	}
	lc := raw.(*Client)
	info, err := lc.GetInfo(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkInfo(info, name); err != nil {
		return nil, err
	}
	if status, err := lc.HealthCheck(ctx); err != nil {
		return nil, err
	} else if status != ServingStatus {
		return nil, fmt.Errorf("plugin is %s", status)
	}

	raw, err = rpc.Dispense(PluginDiagnostics)
	if err != nil {
		return nil, err
	}
	return &Launched{
		Info:        info,
		Contributor: raw.(v1diag.DiagnosticsContributor),
		client:      client,
	}, nil
}

func checkInfo(info Info, name string) error {
	if info.ProtocolVersion != ProtocolVersion {
		return fmt.Errorf("plugin speaks protocol %d, want %d", info.ProtocolVersion, ProtocolVersion)
	}
	if info.Name != name {
		return fmt.Errorf("plugin reports name %q", info.Name)
	}
	return nil
}
