package kubectl

import (
	"fmt"
	"sort"

	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/tools/clientcmd"
)

// Context is one kubeconfig context.
type Context struct {
	Name      string
	Cluster   string
	Namespace string
	Active    bool
}

// KubeconfigContexts lists the contexts of a kubeconfig file in name order,
// marking the current context active. An empty path uses the default loading
// rules (KUBECONFIG, then ~/.kube/config).
func KubeconfigContexts(path string) ([]Context, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if path != "" {
		rules.ExplicitPath = path
	}
	cfg, err := rules.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	contexts := make([]Context, 0, len(cfg.Contexts))
	for name, c := range cfg.Contexts {
		contexts = append(contexts, Context{
			Name:      name,
			Cluster:   c.Cluster,
			Namespace: c.Namespace,
			Active:    name == cfg.CurrentContext,
		})
	}
	sort.Slice(contexts, func(i, j int) bool { return contexts[i].Name < contexts[j].Name })
	return contexts, nil
}

// NewForContext builds a Dynamic for the named kubeconfig context. An empty
// context name selects the current context.
func NewForContext(path, contextName string, opts ...Option) (*Dynamic, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if path != "" {
		rules.ExplicitPath = path
	}
	overrides := &clientcmd.ConfigOverrides{CurrentContext: contextName}
	cc := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides)

	restConfig, err := cc.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build client config: %w", err)
	}
	ns, _, err := cc.Namespace()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve namespace: %w", err)
	}
	client, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}
	return NewDynamic(client, append([]Option{WithNamespace(ns)}, opts...)...), nil
}
