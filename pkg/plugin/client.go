package plugin

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/lint"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/sdk"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/types"
	v1diag "github.com/itowlson/vscode-kubernetes-tools/pkg/v1/diagnostics"
)

// requester identifies the host in plugin request contexts.
const requester = "kubetools"

// client implements v1diag.DiagnosticsContributor by delegating to a
// remote plugin.
type client struct {
	cc   grpc.ClientConnInterface
	name string
}

// actingClient is a client whose plugin also provides code actions.
type actingClient struct {
	*client
}

// NewClient asks the plugin behind cc who it is and returns a contributor
// backed by it. The result implements v1diag.CodeActionsContributor only
// when the plugin does.
func NewClient(ctx context.Context, cc grpc.ClientConnInterface) (v1diag.DiagnosticsContributor, error) {
	info := new(structpb.Struct)
	if err := cc.Invoke(ctx, fullMethod("Info"), &emptypb.Empty{}, info); err != nil {
		return nil, fmt.Errorf("querying plugin info: %w", err)
	}
	m := info.AsMap()
	c := &client{cc: cc, name: str(m, "name")}
	if acts, _ := m["codeActions"].(bool); acts {
		return &actingClient{client: c}, nil
	}
	return c, nil
}

func (c *client) Name() string { return c.name }

func (c *client) Analyse(ctx context.Context, doc lint.Document) ([]lint.Diagnostic, error) {
	req, err := analyseRequest(doc)
	if err != nil {
		return nil, err
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(requestContext(ctx, doc), fullMethod("Analyse"), req, resp); err != nil {
		return nil, err
	}
	return diagnosticsFromValue(list(resp.AsMap(), "diagnostics")), nil
}

func (c *actingClient) CodeActions(
	ctx context.Context,
	doc lint.Document,
	rng lint.Range,
	cac lint.CodeActionContext,
) ([]lint.CodeAction, error) {
	req, err := codeActionsRequest(doc, rng, cac)
	if err != nil {
		return nil, err
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(requestContext(ctx, doc), fullMethod("CodeActions"), req, resp); err != nil {
		return nil, err
	}
	return codeActionsFromResponse(resp), nil
}

func requestContext(ctx context.Context, doc lint.Document) context.Context {
	if types.RequestContextFrom(ctx) != nil {
		return ctx
	}
	return types.WithRequestContext(ctx, sdk.NewRequestContext(requester, doc.URI()))
}
