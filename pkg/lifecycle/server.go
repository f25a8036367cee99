package lifecycle

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the gRPC service every kubetools plugin serves alongside
// its contributor.
const ServiceName = "kubetools.lifecycle.v1.PluginLifecycle"

// ServingStatus reported by HealthCheck.
const ServingStatus = "SERVING"

// Server implements the PluginLifecycle gRPC service.
// It is populated by Serve; plugin authors never touch it.
type Server struct {
	Name            string
	Version         string
	ProtocolVersion int
	Capabilities    []string
}

func (s *Server) GetInfo(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"name":            s.Name,
		"version":         s.Version,
		"protocolVersion": s.ProtocolVersion,
	})
}

func (s *Server) GetCapabilities(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	caps := make([]any, len(s.Capabilities))
	for i, c := range s.Capabilities {
		caps[i] = c
	}
	return structpb.NewStruct(map[string]any{"capabilities": caps})
}

func (s *Server) HealthCheck(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{"status": ServingStatus})
}

type lifecycleServer interface {
	GetInfo(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetCapabilities(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	HealthCheck(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterServer registers srv on s.
func RegisterServer(s grpc.ServiceRegistrar, srv *Server) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*lifecycleServer)(nil),
	Methods: []grpc.MethodDesc{
		method("GetInfo", lifecycleServer.GetInfo),
		method("GetCapabilities", lifecycleServer.GetCapabilities),
		method("HealthCheck", lifecycleServer.HealthCheck),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "kubetools/lifecycle/v1/lifecycle.proto",
}

func method(name string, call func(lifecycleServer, context.Context, *emptypb.Empty) (*structpb.Struct, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(emptypb.Empty)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(lifecycleServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*emptypb.Empty))
			})
		},
	}
}
