// Package plugin carries diagnostics contributors across a process boundary
// using hashicorp/go-plugin over gRPC.
package plugin

import (
	"context"

	goplugin "github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"

	v1diag "github.com/itowlson/vscode-kubernetes-tools/pkg/v1/diagnostics"
)

// GRPCPlugin implements hashicorp/go-plugin.GRPCPlugin for diagnostics
// contributors.
type GRPCPlugin struct {
	goplugin.Plugin
	Impl v1diag.DiagnosticsContributor
}

// GRPCServer registers the contributor on the given gRPC server.
func (p *GRPCPlugin) GRPCServer(_ *goplugin.GRPCBroker, s *grpc.Server) error {
	RegisterDiagnosticsServer(s, NewServer(p.Impl))
	return nil
}

// GRPCClient returns a contributor backed by the given connection.
func (p *GRPCPlugin) GRPCClient(ctx context.Context, _ *goplugin.GRPCBroker, c *grpc.ClientConn) (interface{}, error) {
	return NewClient(ctx, c)
}
