// Package interceptors provides the gRPC server interceptors installed in
// diagnostics plugins.
package interceptors

import (
	"github.com/hashicorp/go-hclog"
	"google.golang.org/grpc"
)

// DefaultUnaryInterceptors returns, outermost first: panic recovery, request
// context extraction and logging.
func DefaultUnaryInterceptors(log hclog.Logger) []grpc.UnaryServerInterceptor {
	return []grpc.UnaryServerInterceptor{
		UnaryPanicRecovery(log),
		UnaryRequestContext(log),
		UnaryLogging(log),
	}
}

// DefaultStreamInterceptors is the stream form of DefaultUnaryInterceptors.
func DefaultStreamInterceptors(log hclog.Logger) []grpc.StreamServerInterceptor {
	return []grpc.StreamServerInterceptor{
		StreamPanicRecovery(log),
		StreamRequestContext(log),
		StreamLogging(log),
	}
}
