package kubectl

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"

	"github.com/itowlson/vscode-kubernetes-tools/pkg/kuberesources"
	"github.com/itowlson/vscode-kubernetes-tools/pkg/types"
)

// Dynamic answers "get" commands from the Kubernetes API through a dynamic
// client instead of a kubectl process.
type Dynamic struct {
	client    dynamic.Interface
	namespace string
	kinds     func(string) (kuberesources.ResourceKind, bool)
	log       *zap.Logger
}

// Option configures a Dynamic.
type Option func(*Dynamic)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dynamic) { d.log = l }
}

// WithNamespace sets the namespace used when a command names none.
func WithNamespace(ns string) Option {
	return func(d *Dynamic) { d.namespace = ns }
}

// WithKinds replaces the resource kind lookup. Defaults to the well-known kinds.
func WithKinds(lookup func(string) (kuberesources.ResourceKind, bool)) Option {
	return func(d *Dynamic) { d.kinds = lookup }
}

// NewDynamic creates a Kubectl backed by a dynamic client.
func NewDynamic(client dynamic.Interface, opts ...Option) *Dynamic {
	d := &Dynamic{
		client: client,
		kinds:  kuberesources.Lookup,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ Kubectl = (*Dynamic)(nil)

type getCommand struct {
	kind          string
	namespace     string
	selector      string
	allNamespaces bool
}

func parseGet(command string) (getCommand, error) {
	fields := strings.Fields(command)
	if len(fields) > 0 && fields[0] == "kubectl" {
		fields = fields[1:]
	}
	if len(fields) < 2 || fields[0] != "get" {
		return getCommand{}, fmt.Errorf("unsupported command %q", command)
	}

	cmd := getCommand{}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		switch {
		case f == "-A" || f == "--all-namespaces":
			cmd.allNamespaces = true
		case f == "-n" || f == "--namespace":
			if i+1 >= len(fields) {
				return getCommand{}, fmt.Errorf("flag %s needs a value", f)
			}
			i++
			cmd.namespace = fields[i]
		case strings.HasPrefix(f, "--namespace="):
			cmd.namespace = strings.TrimPrefix(f, "--namespace=")
		case f == "-l" || f == "--selector":
			if i+1 >= len(fields) {
				return getCommand{}, fmt.Errorf("flag %s needs a value", f)
			}
			i++
			cmd.selector = fields[i]
		case strings.HasPrefix(f, "--selector="):
			cmd.selector = strings.TrimPrefix(f, "--selector=")
		case strings.HasPrefix(f, "-"):
			return getCommand{}, fmt.Errorf("unsupported flag %s", f)
		case cmd.kind == "":
			cmd.kind = f
		default:
			return getCommand{}, fmt.Errorf("unexpected argument %s", f)
		}
	}
	if cmd.kind == "" {
		return getCommand{}, fmt.Errorf("no resource kind in %q", command)
	}
	return cmd, nil
}

// AsLines lists the objects named by a "get <kind>" command, one name per
// line in name order. The -n, -A and -l flags are honoured. Any other command
// fails.
func (d *Dynamic) AsLines(ctx context.Context, command string) types.Errorable[[]string] {
	cmd, err := parseGet(command)
	if err != nil {
		return types.Failed[[]string](err.Error())
	}
	kind, ok := d.kinds(cmd.kind)
	if !ok {
		return types.Failed[[]string](fmt.Sprintf("the server doesn't have a resource type %q", cmd.kind))
	}

	gvr := GroupVersionResource(kind)
	var ri dynamic.ResourceInterface
	ns := cmd.namespace
	if ns == "" {
		ns = d.namespace
	}
	if kind.ClusterScoped || cmd.allNamespaces || ns == "" {
		ri = d.client.Resource(gvr)
	} else {
		ri = d.client.Resource(gvr).Namespace(ns)
	}

	list, err := ri.List(ctx, metav1.ListOptions{LabelSelector: cmd.selector})
	if err != nil {
		d.log.Debug("list failed",
			zap.String("gvr", gvr.String()),
			zap.String("namespace", ns),
			zap.Error(err))
		return types.Failed[[]string](fmt.Sprintf("failed to list %s: %v", kind.APIName, err))
	}

	names := make([]string, 0, len(list.Items))
	for i := range list.Items {
		names = append(names, list.Items[i].GetName())
	}
	sort.Strings(names)
	d.log.Debug("list completed",
		zap.String("gvr", gvr.String()),
		zap.Int("items", len(names)))
	return types.Succeeded(names)
}

// GroupVersionResource returns the API coordinates of a resource kind.
func GroupVersionResource(kind kuberesources.ResourceKind) schema.GroupVersionResource {
	version := kind.Version
	if version == "" {
		version = "v1"
	}
	return schema.GroupVersionResource{Group: kind.Group, Version: version, Resource: kind.APIName}
}

// Get fetches one object as a plain map.
func (d *Dynamic) Get(ctx context.Context, kind kuberesources.ResourceKind, namespace, name string) (map[string]any, error) {
	gvr := GroupVersionResource(kind)
	if namespace == "" {
		namespace = d.namespace
	}
	var ri dynamic.ResourceInterface = d.client.Resource(gvr)
	if !kind.ClusterScoped && namespace != "" {
		ri = d.client.Resource(gvr).Namespace(namespace)
	}
	obj, err := ri.Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", kind.APIName, name, err)
	}
	return obj.Object, nil
}
