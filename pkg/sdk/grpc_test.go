package sdk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpcmd "google.golang.org/grpc/metadata"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/interceptors"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/types"
)

func TestUseClientRequestContext(t *testing.T) {
	rc := NewRequestContext("lint", "file:///pod.yaml")
	ctx := UseClientRequestContext(types.WithRequestContext(context.Background(), rc))

	md, ok := grpcmd.FromOutgoingContext(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{rc.RequestID}, md.Get(interceptors.MDKeyRequestID))
	assert.Equal(t, []string{"lint"}, md.Get(interceptors.MDKeyRequester))
	assert.Equal(t, []string{"file:///pod.yaml"}, md.Get(interceptors.MDKeyDocumentURI))
	assert.Equal(t, []string{interceptors.ProtocolVersion}, md.Get(interceptors.MDKeyProtocolVersion))
}

func TestUseClientRequestContext_GeneratesRequestID(t *testing.T) {
	md, ok := grpcmd.FromOutgoingContext(UseClientRequestContext(context.Background()))
	require.True(t, ok)
	ids := md.Get(interceptors.MDKeyRequestID)
	require.Len(t, ids, 1)
	assert.NotEmpty(t, ids[0])
	assert.Empty(t, md.Get(interceptors.MDKeyDocumentURI))
}

func TestWithClientOpts(t *testing.T) {
	assert.Len(t, WithClientOpts(nil), 1)
}
