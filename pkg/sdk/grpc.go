// Package sdk holds client-side gRPC wiring for talking to diagnostics
// plugins.
package sdk

import (
	"context"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/metadata"
	"google.golang.org/grpc"
	grpcMetadata "google.golang.org/grpc/metadata"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/interceptors"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/types"
)

// NewRequestContext creates a request context with a fresh request id.
func NewRequestContext(requester, documentURI string) *types.RequestContext {
	return &types.RequestContext{
		RequestID:   uuid.NewString(),
		Requester:   requester,
		DocumentURI: documentURI,
	}
}

// UseClientRequestContext copies the request context of ctx into outgoing
// gRPC metadata. A context without one gets a fresh request id so that
// plugin logs can always be correlated.
func UseClientRequestContext(ctx context.Context) context.Context {
	rc := types.RequestContextFrom(ctx)
	if rc == nil {
		rc = NewRequestContext("", "")
	}

	pairs := []string{
		interceptors.MDKeyRequestID, rc.RequestID,
		interceptors.MDKeyProtocolVersion, interceptors.ProtocolVersion,
	}
	if rc.Requester != "" {
		pairs = append(pairs, interceptors.MDKeyRequester, rc.Requester)
	}
	if rc.DocumentURI != "" {
		pairs = append(pairs, interceptors.MDKeyDocumentURI, rc.DocumentURI)
	}

	md := metadata.MD(grpcMetadata.Pairs(pairs...))
	return md.ToOutgoing(ctx)
}

// ClientRequestContextInterceptor attaches the request context to every
// unary call.
func ClientRequestContextInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(UseClientRequestContext(ctx), method, req, reply, cc, opts...)
}

// WithClientOpts appends the client interceptors to opts.
func WithClientOpts(opts []grpc.DialOption) []grpc.DialOption {
	return append(opts, grpc.WithUnaryInterceptor(ClientRequestContextInterceptor))
}
