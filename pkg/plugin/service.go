package plugin

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the gRPC service served by diagnostics plugins. Messages are
// structpb.Struct values; see convert.go for their layout.
const ServiceName = "kubetools.diagnostics.v1.DiagnosticsContributor"

// DiagnosticsServer is the server API of the diagnostics service.
type DiagnosticsServer interface {
	Info(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	Analyse(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	CodeActions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// RegisterDiagnosticsServer registers srv on s.
func RegisterDiagnosticsServer(s grpc.ServiceRegistrar, srv DiagnosticsServer) {
	s.RegisterService(&diagnosticsServiceDesc, srv)
}

var diagnosticsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DiagnosticsServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Info", DiagnosticsServer.Info),
		unary("Analyse", DiagnosticsServer.Analyse),
		unary("CodeActions", DiagnosticsServer.CodeActions),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "kubetools/diagnostics/v1/diagnostics.proto",
}

// unary builds the method descriptor for a unary call taking Req, in the
// shape protoc-gen-go-grpc generates.
func unary[Req any](name string, call func(DiagnosticsServer, context.Context, *Req) (*structpb.Struct, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(DiagnosticsServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			})
		},
	}
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}
