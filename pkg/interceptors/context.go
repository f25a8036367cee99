package interceptors

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/metadata"
	"github.com/hashicorp/go-hclog"
	"google.golang.org/grpc"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/types"
)

// Metadata keys carrying the request context.
const (
	MDKeyRequestID       = "kubetools-request-id"
	MDKeyRequester       = "kubetools-requester"
	MDKeyDocumentURI     = "kubetools-document-uri"
	MDKeyProtocolVersion = "kubetools-protocol-version"
)

// ProtocolVersion is the metadata protocol the host sends.
const ProtocolVersion = "1"

// useServerRequestContext extracts the request context from gRPC metadata
// and attaches it to ctx. Requests without a request id carry none.
func useServerRequestContext(ctx context.Context) (context.Context, error) {
	incoming := metadata.ExtractIncoming(ctx)

	requestID := incoming.Get(MDKeyRequestID)
	if requestID == "" {
		return ctx, nil
	}
	if v := incoming.Get(MDKeyProtocolVersion); v != "" && v != ProtocolVersion {
		return ctx, fmt.Errorf("unsupported metadata protocol version %q", v)
	}
	return types.WithRequestContext(ctx, &types.RequestContext{
		RequestID:   requestID,
		Requester:   incoming.Get(MDKeyRequester),
		DocumentURI: incoming.Get(MDKeyDocumentURI),
	}), nil
}

// UnaryRequestContext returns a unary server interceptor that attaches the
// request context from gRPC metadata.
func UnaryRequestContext(log hclog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		_ *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		ctx, err := useServerRequestContext(ctx)
		if err != nil {
			log.Warn("ignoring request metadata", "error", err)
		}
		return handler(ctx, req)
	}
}

// StreamRequestContext is the stream form of UnaryRequestContext.
func StreamRequestContext(log hclog.Logger) grpc.StreamServerInterceptor {
	return func(
		srv any,
		ss grpc.ServerStream,
		_ *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		ctx, err := useServerRequestContext(ss.Context())
		if err != nil {
			log.Warn("ignoring request metadata", "error", err)
		}
		return handler(srv, &wrappedServerStream{ServerStream: ss, ctx: ctx})
	}
}

// wrappedServerStream overrides the stream's context.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}
