// Package kuberesources describes the Kubernetes resource kinds the explorer
// and the manifest linters know about.
package kuberesources

import "strings"

// ResourceKind identifies a kind of Kubernetes object and how it is displayed.
type ResourceKind struct {
	// DisplayName is the singular display name (e.g., "Deployment").
	DisplayName string `json:"displayName"`

	// PluralDisplayName is the folder label (e.g., "Deployments").
	PluralDisplayName string `json:"pluralDisplayName"`

	// ManifestKind is the value of the kind field in a manifest.
	ManifestKind string `json:"manifestKind"`

	// Abbreviation is the short name accepted by kubectl (e.g., "deploy").
	Abbreviation string `json:"abbreviation"`

	// APIName is the plural resource name in the API path (e.g., "deployments").
	APIName string `json:"apiName"`

	// Group is the API group. Empty for the core group.
	Group string `json:"group"`

	// Version is the API version. Defaults to "v1".
	Version string `json:"version"`

	// ClusterScoped is set for kinds that do not live in a namespace.
	ClusterScoped bool `json:"clusterScoped,omitempty"`

	// ShortNames are further aliases kubectl accepts (e.g., "po", "svc").
	ShortNames []string `json:"shortNames,omitempty"`
}

// NewResourceKind creates a ResourceKind. An empty apiName defaults to the
// lower-cased plural display name with spaces removed.
func NewResourceKind(displayName, pluralDisplayName, manifestKind, abbreviation, apiName string) ResourceKind {
	if apiName == "" {
		apiName = strings.ToLower(strings.ReplaceAll(pluralDisplayName, " ", ""))
	}
	return ResourceKind{
		DisplayName:       displayName,
		PluralDisplayName: pluralDisplayName,
		ManifestKind:      manifestKind,
		Abbreviation:      abbreviation,
		APIName:           apiName,
		Version:           "v1",
	}
}

// InGroup returns a copy of k in the given API group and version.
func (k ResourceKind) InGroup(group, version string) ResourceKind {
	k.Group = group
	k.Version = version
	return k
}

// Cluster returns a copy of k marked as cluster-scoped.
func (k ResourceKind) Cluster() ResourceKind {
	k.ClusterScoped = true
	return k
}

// Aka returns a copy of k that also answers to the given short names.
func (k ResourceKind) Aka(shortNames ...string) ResourceKind {
	k.ShortNames = append(k.ShortNames[:len(k.ShortNames):len(k.ShortNames)], shortNames...)
	return k
}

// APIVersion returns the manifest apiVersion for the kind ("v1", "apps/v1").
func (k ResourceKind) APIVersion() string {
	if k.Group == "" {
		return k.Version
	}
	return k.Group + "/" + k.Version
}

// Well-known kinds.
var (
	Namespace             = NewResourceKind("Namespace", "Namespaces", "Namespace", "namespace", "").Cluster().Aka("ns")
	Node                  = NewResourceKind("Node", "Nodes", "Node", "node", "").Cluster().Aka("no")
	Deployment            = NewResourceKind("Deployment", "Deployments", "Deployment", "deployment", "").InGroup("apps", "v1").Aka("deploy")
	ReplicaSet            = NewResourceKind("ReplicaSet", "ReplicaSets", "ReplicaSet", "rs", "").InGroup("apps", "v1")
	StatefulSet           = NewResourceKind("StatefulSet", "StatefulSets", "StatefulSet", "statefulset", "").InGroup("apps", "v1").Aka("sts")
	DaemonSet             = NewResourceKind("DaemonSet", "DaemonSets", "DaemonSet", "daemonset", "").InGroup("apps", "v1").Aka("ds")
	Job                   = NewResourceKind("Job", "Jobs", "Job", "job", "").InGroup("batch", "v1")
	CronJob               = NewResourceKind("CronJob", "CronJobs", "CronJob", "cronjob", "").InGroup("batch", "v1").Aka("cj")
	Pod                   = NewResourceKind("Pod", "Pods", "Pod", "pod", "").Aka("po")
	Service               = NewResourceKind("Service", "Services", "Service", "service", "").Aka("svc")
	Endpoint              = NewResourceKind("Endpoint", "Endpoints", "Endpoint", "endpoints", "").Aka("ep")
	Ingress               = NewResourceKind("Ingress", "Ingress", "Ingress", "ingress", "ingresses").InGroup("networking.k8s.io", "v1").Aka("ing")
	ConfigMap             = NewResourceKind("ConfigMap", "Config Maps", "ConfigMap", "configmap", "").Aka("cm")
	Secret                = NewResourceKind("Secret", "Secrets", "Secret", "secret", "")
	PersistentVolume      = NewResourceKind("Persistent Volume", "Persistent Volumes", "PersistentVolume", "pv", "").Cluster()
	PersistentVolumeClaim = NewResourceKind("Persistent Volume Claim", "Persistent Volume Claims", "PersistentVolumeClaim", "pvc", "")
	StorageClass          = NewResourceKind("Storage Class", "Storage Classes", "StorageClass", "sc", "").InGroup("storage.k8s.io", "v1").Cluster()
	CRD                   = NewResourceKind("Custom Resource", "Custom Resources", "CustomResourceDefinition", "crd", "customresourcedefinitions").InGroup("apiextensions.k8s.io", "v1").Cluster()
)

// AllKinds returns every well-known kind.
func AllKinds() []ResourceKind {
	return []ResourceKind{
		Namespace, Node, Deployment, ReplicaSet, StatefulSet, DaemonSet, Job, CronJob,
		Pod, Service, Endpoint, Ingress, ConfigMap, Secret,
		PersistentVolume, PersistentVolumeClaim, StorageClass, CRD,
	}
}

// Lookup finds a well-known kind by abbreviation, short name, API name, or
// manifest kind (case-insensitive).
func Lookup(name string) (ResourceKind, bool) {
	for _, k := range AllKinds() {
		if strings.EqualFold(k.Abbreviation, name) ||
			strings.EqualFold(k.APIName, name) ||
			strings.EqualFold(k.ManifestKind, name) {
			return k, true
		}
		for _, short := range k.ShortNames {
			if strings.EqualFold(short, name) {
				return k, true
			}
		}
	}
	return ResourceKind{}, false
}
