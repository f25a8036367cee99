package interceptors

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	grpcmd "google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/types"
)

func ctxWithMD(pairs ...string) context.Context {
	return grpcmd.NewIncomingContext(context.Background(), grpcmd.Pairs(pairs...))
}

func testLogger(buf *bytes.Buffer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{Output: buf, Level: hclog.Debug})
}

// ---------------------------------------------------------------------------
// Request context
// ---------------------------------------------------------------------------

func TestUseServerRequestContext(t *testing.T) {
	ctx, err := useServerRequestContext(ctxWithMD(
		MDKeyRequestID, "req-1",
		MDKeyRequester, "lint",
		MDKeyDocumentURI, "file:///pod.yaml",
		MDKeyProtocolVersion, ProtocolVersion,
	))
	require.NoError(t, err)

	rc := types.RequestContextFrom(ctx)
	require.NotNil(t, rc)
	assert.Equal(t, "req-1", rc.RequestID)
	assert.Equal(t, "lint", rc.Requester)
	assert.Equal(t, "file:///pod.yaml", rc.DocumentURI)
}

func TestUseServerRequestContext_NoMetadata(t *testing.T) {
	ctx, err := useServerRequestContext(context.Background())
	require.NoError(t, err)
	assert.Nil(t, types.RequestContextFrom(ctx))
}

func TestUseServerRequestContext_UnsupportedProtocol(t *testing.T) {
	ctx, err := useServerRequestContext(ctxWithMD(MDKeyRequestID, "req-2", MDKeyProtocolVersion, "9"))
	require.Error(t, err)
	assert.Nil(t, types.RequestContextFrom(ctx))
}

func TestUnaryRequestContext_HandlerSeesContext(t *testing.T) {
	interceptor := UnaryRequestContext(hclog.NewNullLogger())
	var seen *types.RequestContext
	handler := func(ctx context.Context, _ any) (any, error) {
		seen = types.RequestContextFrom(ctx)
		return nil, nil
	}

	_, err := interceptor(ctxWithMD(MDKeyRequestID, "req-3"), "req", &grpc.UnaryServerInfo{}, handler)
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, "req-3", seen.RequestID)
}

func TestStreamRequestContext_WrapsStream(t *testing.T) {
	interceptor := StreamRequestContext(hclog.NewNullLogger())
	var seen *types.RequestContext
	handler := func(_ any, ss grpc.ServerStream) error {
		seen = types.RequestContextFrom(ss.Context())
		return nil
	}

	err := interceptor(nil, &mockServerStream{ctx: ctxWithMD(MDKeyRequestID, "req-4")}, &grpc.StreamServerInfo{}, handler)
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, "req-4", seen.RequestID)
}

// ---------------------------------------------------------------------------
// Logging
// ---------------------------------------------------------------------------

func TestUnaryLogging_Passthrough(t *testing.T) {
	var buf bytes.Buffer
	interceptor := UnaryLogging(testLogger(&buf))
	info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/LogOK"}

	resp, err := interceptor(context.Background(), "req", info, func(context.Context, any) (any, error) {
		return "result", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "result", resp)
	assert.Contains(t, buf.String(), "/test.Service/LogOK")
}

func TestUnaryLogging_ErrorPassthrough(t *testing.T) {
	var buf bytes.Buffer
	interceptor := UnaryLogging(testLogger(&buf))
	info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/LogFail"}
	handlerErr := status.Error(codes.InvalidArgument, "bad arg")

	resp, err := interceptor(types.WithRequestContext(context.Background(), &types.RequestContext{RequestID: "r-9"}),
		"req", info, func(context.Context, any) (any, error) { return nil, handlerErr })

	assert.Nil(t, resp)
	assert.Equal(t, handlerErr, err)
	assert.Contains(t, buf.String(), "rpc failed")
	assert.Contains(t, buf.String(), "r-9")
	assert.Contains(t, buf.String(), "InvalidArgument")
}

func TestStreamLogging_ErrorPassthrough(t *testing.T) {
	interceptor := StreamLogging(hclog.NewNullLogger())
	handlerErr := status.Error(codes.Unavailable, "unavailable")

	err := interceptor(nil, &mockServerStream{ctx: context.Background()}, &grpc.StreamServerInfo{FullMethod: "/s/m"},
		func(any, grpc.ServerStream) error { return handlerErr })

	assert.Equal(t, handlerErr, err)
}

// ---------------------------------------------------------------------------
// Panic recovery
// ---------------------------------------------------------------------------

func TestUnaryPanicRecovery_PanicIsRecovered(t *testing.T) {
	interceptor := UnaryPanicRecovery(hclog.NewNullLogger())
	info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/PanicMethod"}

	resp, err := interceptor(context.Background(), "req", info, func(context.Context, any) (any, error) {
		panic("something went wrong")
	})

	assert.Nil(t, resp)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Contains(t, st.Message(), "panic in /test.Service/PanicMethod")
	assert.Contains(t, st.Message(), "something went wrong")
}

func TestUnaryPanicRecovery_ErrorPassthrough(t *testing.T) {
	interceptor := UnaryPanicRecovery(hclog.NewNullLogger())
	handlerErr := status.Error(codes.NotFound, "not found")

	_, err := interceptor(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: "/s/m"},
		func(context.Context, any) (any, error) { return nil, handlerErr })

	assert.Equal(t, handlerErr, err)
}

func TestStreamPanicRecovery(t *testing.T) {
	interceptor := StreamPanicRecovery(hclog.NewNullLogger())
	info := &grpc.StreamServerInfo{FullMethod: "/test.Service/StreamPanic"}

	err := interceptor(nil, &mockServerStream{ctx: context.Background()}, info, func(any, grpc.ServerStream) error {
		panic("stream boom")
	})
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Contains(t, st.Message(), "stream boom")

	handlerErr := errors.New("stream handler error")
	err = interceptor(nil, &mockServerStream{ctx: context.Background()}, info, func(any, grpc.ServerStream) error {
		return handlerErr
	})
	assert.Equal(t, handlerErr, err)
}

// ---------------------------------------------------------------------------
// Chains
// ---------------------------------------------------------------------------

func TestDefaultInterceptors(t *testing.T) {
	log := hclog.NewNullLogger()
	assert.Len(t, DefaultUnaryInterceptors(log), 3)
	assert.Len(t, DefaultStreamInterceptors(log), 3)
}
