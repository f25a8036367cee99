package lifecycle

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Info describes a running plugin.
type Info struct {
	Name            string
	Version         string
	ProtocolVersion int
}

// Client talks to the PluginLifecycle service of a plugin.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) call(ctx context.Context, name string) (map[string]any, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+name, &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

func (c *Client) GetInfo(ctx context.Context) (Info, error) {
	m, err := c.call(ctx, "GetInfo")
	if err != nil {
		return Info{}, err
	}
	name, _ := m["name"].(string)
	version, _ := m["version"].(string)
	protocol, _ := m["protocolVersion"].(float64)
	return Info{Name: name, Version: version, ProtocolVersion: int(protocol)}, nil
}

func (c *Client) GetCapabilities(ctx context.Context) ([]string, error) {
	m, err := c.call(ctx, "GetCapabilities")
	if err != nil {
		return nil, err
	}
	items, _ := m["capabilities"].([]any)
	caps := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			caps = append(caps, s)
		}
	}
	return caps, nil
}

// HealthCheck returns the serving status of the plugin.
func (c *Client) HealthCheck(ctx context.Context) (string, error) {
	m, err := c.call(ctx, "HealthCheck")
	if err != nil {
		return "", err
	}
	status, _ := m["status"].(string)
	return status, nil
}
