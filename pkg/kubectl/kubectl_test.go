package kubectl

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	k8stesting "k8s.io/client-go/testing"
)

func newObject(apiVersion, kind, namespace, name string) *unstructured.Unstructured {
	meta := map[string]interface{}{"name": name}
	if namespace != "" {
		meta["namespace"] = namespace
	}
	return &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": apiVersion,
		"kind":       kind,
		"metadata":   meta,
	}}
}

func newFakeClient(objects ...runtime.Object) *dynamicfake.FakeDynamicClient {
	listKinds := map[schema.GroupVersionResource]string{
		{Version: "v1", Resource: "pods"}:                         "PodList",
		{Version: "v1", Resource: "nodes"}:                        "NodeList",
		{Group: "apps", Version: "v1", Resource: "deployments"}: "DeploymentList",
	}
	return dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(), listKinds, objects...)
}

func TestDynamic_GetLists(t *testing.T) {
	client := newFakeClient(
		newObject("v1", "Pod", "default", "web-2"),
		newObject("v1", "Pod", "default", "web-1"),
		newObject("v1", "Pod", "other", "db"),
		newObject("apps/v1", "Deployment", "default", "web"),
		newObject("v1", "Node", "", "node-a"),
	)
	k := NewDynamic(client, WithNamespace("default"))
	ctx := context.Background()

	tests := []struct {
		command string
		want    []string
	}{
		{"get pods", []string{"web-1", "web-2"}},
		{"get pod -n other", []string{"db"}},
		{"kubectl get po --namespace=other", []string{"db"}},
		{"get pods -A", []string{"db", "web-1", "web-2"}},
		{"get deploy", []string{"web"}},
		{"get deployments", []string{"web"}},
		{"get Deployment", []string{"web"}},
		{"get nodes", []string{"node-a"}},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			res := k.AsLines(ctx, tt.command)
			require.True(t, res.Succeeded(), res.Error())
			assert.Equal(t, tt.want, res.Result())
		})
	}
}

func TestDynamic_LabelSelector(t *testing.T) {
	web := newObject("v1", "Pod", "default", "web-1")
	web.SetLabels(map[string]string{"app": "web"})
	client := newFakeClient(web, newObject("v1", "Pod", "default", "db"))
	k := NewDynamic(client, WithNamespace("default"))
	ctx := context.Background()

	for _, cmd := range []string{"get pods -l app=web", "get pods --selector=app=web"} {
		res := k.AsLines(ctx, cmd)
		require.True(t, res.Succeeded(), res.Error())
		assert.Equal(t, []string{"web-1"}, res.Result(), cmd)
	}
	assert.False(t, k.AsLines(ctx, "get pods -l").Succeeded())
}

func TestDynamic_Failures(t *testing.T) {
	client := newFakeClient()
	client.PrependReactor("list", "pods", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, errors.New("connection refused")
	})
	k := NewDynamic(client)
	ctx := context.Background()

	res := k.AsLines(ctx, "get pods")
	require.False(t, res.Succeeded())
	assert.Contains(t, res.Errors()[0], "connection refused")

	for _, cmd := range []string{"describe pod x", "get", "get widgets", "get pods -o wide", "get pods -n"} {
		assert.False(t, k.AsLines(ctx, cmd).Succeeded(), cmd)
	}
}

func TestLines(t *testing.T) {
	out := "NAME   READY\nweb-1  1/1\n\nweb-2  0/1\r\n"
	lines := Lines(out)
	assert.Equal(t, []string{"web-1  1/1", "web-2  0/1"}, lines)
	assert.Equal(t, "web-1", NameOf(lines[0]))
	assert.Equal(t, "", NameOf("   "))
	assert.Empty(t, Lines(""))
}

const testKubeconfig = `apiVersion: v1
kind: Config
clusters:
- name: test-cluster
  cluster:
    server: https://test.example.com
users:
- name: test-user
  user:
    token: test-token
contexts:
- name: prod
  context:
    cluster: test-cluster
    user: test-user
    namespace: apps
- name: dev
  context:
    cluster: test-cluster
    user: test-user
current-context: prod
`

func TestKubeconfigContexts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(testKubeconfig), 0o600))

	contexts, err := KubeconfigContexts(path)
	require.NoError(t, err)
	assert.Equal(t, []Context{
		{Name: "dev", Cluster: "test-cluster"},
		{Name: "prod", Cluster: "test-cluster", Namespace: "apps", Active: true},
	}, contexts)

	_, err = KubeconfigContexts(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestNewForContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(testKubeconfig), 0o600))

	d, err := NewForContext(path, "")
	require.NoError(t, err)
	assert.Equal(t, "apps", d.namespace)

	d, err = NewForContext(path, "dev")
	require.NoError(t, err)
	assert.Equal(t, "default", d.namespace)
}
