// Package utils holds gRPC server wiring shared by plugin entry points.
package utils

import (
	"github.com/hashicorp/go-hclog"
	"google.golang.org/grpc"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/interceptors"
)

// RegisterServerOpts appends the default interceptor chains to opts.
func RegisterServerOpts(opts []grpc.ServerOption, log hclog.Logger) []grpc.ServerOption {
	unary, stream := NewServerInterceptors(log)
	return append(opts,
		grpc.ChainUnaryInterceptor(unary...),
		grpc.ChainStreamInterceptor(stream...),
	)
}

// NewServerInterceptors returns the default unary and stream interceptor
// chains for a plugin's gRPC server.
func NewServerInterceptors(log hclog.Logger) ([]grpc.UnaryServerInterceptor, []grpc.StreamServerInterceptor) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return interceptors.DefaultUnaryInterceptors(log), interceptors.DefaultStreamInterceptors(log)
}
