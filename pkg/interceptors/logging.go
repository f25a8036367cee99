package interceptors

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/types"
)

func requestFields(ctx context.Context, method string, started time.Time, err error) []any {
	fields := []any{"method", method, "duration", time.Since(started)}
	if rc := types.RequestContextFrom(ctx); rc != nil {
		fields = append(fields, "request_id", rc.RequestID)
		if rc.DocumentURI != "" {
			fields = append(fields, "document", rc.DocumentURI)
		}
	}
	if err != nil {
		fields = append(fields, "code", status.Code(err).String(), "error", err)
	}
	return fields
}

// UnaryLogging logs every call at debug level, and failed calls at warn.
func UnaryLogging(log hclog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		started := time.Now()
		resp, err := handler(ctx, req)
		if err != nil {
			log.Warn("rpc failed", requestFields(ctx, info.FullMethod, started, err)...)
		} else {
			log.Debug("rpc", requestFields(ctx, info.FullMethod, started, nil)...)
		}
		return resp, err
	}
}

// StreamLogging is the stream form of UnaryLogging.
func StreamLogging(log hclog.Logger) grpc.StreamServerInterceptor {
	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		started := time.Now()
		err := handler(srv, ss)
		if err != nil {
			log.Warn("stream failed", requestFields(ss.Context(), info.FullMethod, started, err)...)
		} else {
			log.Debug("stream", requestFields(ss.Context(), info.FullMethod, started, nil)...)
		}
		return err
	}
}
