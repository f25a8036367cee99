package kubectl

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
)

var secretsGVR = schema.GroupVersionResource{Version: "v1", Resource: "secrets"}

// HelmRevision is one stored revision of a Helm release.
type HelmRevision struct {
	Release   string
	Namespace string
	Revision  int
	Status    string
}

// HelmReleases returns the names of the Helm releases stored in the cluster,
// read from Helm's release secrets (owner=helm).
func (d *Dynamic) HelmReleases(ctx context.Context) ([]string, error) {
	revs, err := d.helmSecrets(ctx, "owner=helm")
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var names []string
	for _, r := range revs {
		if !seen[r.Release] {
			seen[r.Release] = true
			names = append(names, r.Release)
		}
	}
	sort.Strings(names)
	return names, nil
}

// HelmHistory returns the revisions of a release, newest first.
func (d *Dynamic) HelmHistory(ctx context.Context, release string) ([]HelmRevision, error) {
	revs, err := d.helmSecrets(ctx, "owner=helm,name="+release)
	if err != nil {
		return nil, err
	}
	sort.Slice(revs, func(i, j int) bool { return revs[i].Revision > revs[j].Revision })
	return revs, nil
}

func (d *Dynamic) helmSecrets(ctx context.Context, selector string) ([]HelmRevision, error) {
	var ri dynamic.ResourceInterface = d.client.Resource(secretsGVR)
	if d.namespace != "" {
		ri = d.client.Resource(secretsGVR).Namespace(d.namespace)
	}
	list, err := ri.List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		return nil, fmt.Errorf("failed to list helm releases: %w", err)
	}

	revs := make([]HelmRevision, 0, len(list.Items))
	for i := range list.Items {
		labels := list.Items[i].GetLabels()
		rev, err := strconv.Atoi(labels["version"])
		if err != nil {
			d.log.Debug("skipping helm secret without a version label",
				zap.String("secret", list.Items[i].GetName()))
			continue
		}
		revs = append(revs, HelmRevision{
			Release:   labels["name"],
			Namespace: list.Items[i].GetNamespace(),
			Revision:  rev,
			Status:    labels["status"],
		})
	}
	return revs, nil
}
