package kubectl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
)

func helmSecret(release string, version, status string) *unstructured.Unstructured {
	u := newObject("v1", "Secret", "default", "sh.helm.release.v1."+release+".v"+version)
	u.SetLabels(map[string]string{
		"owner":   "helm",
		"name":    release,
		"version": version,
		"status":  status,
	})
	return u
}

func TestDynamic_Helm(t *testing.T) {
	listKinds := map[schema.GroupVersionResource]string{
		{Version: "v1", Resource: "secrets"}: "SecretList",
	}
	plain := newObject("v1", "Secret", "default", "token")
	client := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(), listKinds,
		helmSecret("web", "1", "superseded"),
		helmSecret("web", "2", "deployed"),
		helmSecret("db", "1", "deployed"),
		plain,
	)
	d := NewDynamic(client, WithNamespace("default"))
	ctx := context.Background()

	releases, err := d.HelmReleases(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"db", "web"}, releases)

	history, err := d.HelmHistory(ctx, "web")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 2, history[0].Revision)
	assert.Equal(t, "deployed", history[0].Status)
	assert.Equal(t, 1, history[1].Revision)
}
