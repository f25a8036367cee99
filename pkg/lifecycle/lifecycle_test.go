package lifecycle

import (
	"context"
	"net"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/lint"
	diagplugin "github.com/itowlson/vscode-kubernetes-tools/pkg/plugin"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/utils"
)

type contributor struct{}

func (contributor) Name() string { return "latest-tag" }
func (contributor) Analyse(context.Context, lint.Document) ([]lint.Diagnostic, error) {
	return nil, nil
}

type actingContributor struct{ contributor }

func (actingContributor) CodeActions(context.Context, lint.Document, lint.Range, lint.CodeActionContext) ([]lint.CodeAction, error) {
	return nil, nil
}

func dial(t *testing.T, srv *Server) *Client {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	s := grpc.NewServer(utils.RegisterServerOpts(nil, hclog.NewNullLogger())...)
	RegisterServer(s, srv)
	go func() {
		_ = s.Serve(lis)
	}()

	//nolint:staticcheck // grpc.DialContext is needed for bufconn.
	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
		s.Stop()
		lis.Close()
	})
	return NewClient(conn)
}

func TestNewServer_Capabilities(t *testing.T) {
	assert.Equal(t, []string{CapabilityDiagnostics}, NewServer(contributor{}, "0.1.0").Capabilities)
	assert.Equal(t,
		[]string{CapabilityDiagnostics, CapabilityCodeActions},
		NewServer(actingContributor{}, "0.1.0").Capabilities,
	)
}

func TestLifecycle_RoundTrip(t *testing.T) {
	c := dial(t, NewServer(actingContributor{}, "0.1.0"))
	ctx := context.Background()

	info, err := c.GetInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, Info{Name: "latest-tag", Version: "0.1.0", ProtocolVersion: ProtocolVersion}, info)

	caps, err := c.GetCapabilities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{CapabilityDiagnostics, CapabilityCodeActions}, caps)

	status, err := c.HealthCheck(ctx)
	require.NoError(t, err)
	assert.Equal(t, ServingStatus, status)
}

func TestCheckInfo(t *testing.T) {
	assert.NoError(t, checkInfo(Info{Name: "latest-tag", ProtocolVersion: ProtocolVersion}, "latest-tag"))
	assert.ErrorContains(t, checkInfo(Info{Name: "latest-tag", ProtocolVersion: 9}, "latest-tag"), "protocol 9")
	assert.ErrorContains(t, checkInfo(Info{Name: "other", ProtocolVersion: ProtocolVersion}, "latest-tag"), `"other"`)
}

func TestPluginSet(t *testing.T) {
	set := PluginSet(contributor{}, NewServer(contributor{}, ""))
	require.Len(t, set, 2)
	assert.IsType(t, &diagplugin.GRPCPlugin{}, set[PluginDiagnostics])
	assert.IsType(t, &Plugin{}, set[PluginLifecycle])
}
