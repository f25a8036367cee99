package plugin

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/types"
	v1diag "github.com/itowlson/vscode-kubernetes-tools/pkg/v1/diagnostics"
)

// server implements DiagnosticsServer by delegating to a contributor.
type server struct {
	impl v1diag.DiagnosticsContributor
}

// NewServer creates a gRPC server wrapping the given contributor.
func NewServer(impl v1diag.DiagnosticsContributor) DiagnosticsServer {
	return &server{impl: impl}
}

func (s *server) Info(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	_, acts := s.impl.(v1diag.CodeActionsContributor)
	return structpb.NewStruct(map[string]any{
		"name":        s.impl.Name(),
		"codeActions": acts,
	})
}

func (s *server) Analyse(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	doc := documentFromValue(obj(req.AsMap(), "document"))
	if doc.URI() == "" {
		return nil, status.Error(codes.InvalidArgument, "document uri is required")
	}
	diags, err := s.impl.Analyse(withDocument(ctx, doc.URI()), doc)
	if err != nil {
		return nil, err
	}
	return analyseResponse(diags)
}

func (s *server) CodeActions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	acting, ok := s.impl.(v1diag.CodeActionsContributor)
	if !ok {
		return nil, status.Errorf(codes.Unimplemented, "%s does not provide code actions", s.impl.Name())
	}
	doc, rng, cac := codeActionsRequestFrom(req)
	actions, err := acting.CodeActions(withDocument(ctx, doc.URI()), doc, rng, cac)
	if err != nil {
		return nil, err
	}
	return codeActionsResponse(actions)
}

// withDocument fills in the document of a request context the interceptors
// did not receive one for.
func withDocument(ctx context.Context, uri string) context.Context {
	rc := types.RequestContextFrom(ctx)
	if rc == nil || rc.DocumentURI != "" {
		return ctx
	}
	cp := *rc
	cp.DocumentURI = uri
	return types.WithRequestContext(ctx, &cp)
}
