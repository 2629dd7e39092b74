package model

// DeploymentDescriptor declares a replicated workload built from a pod
// template. Descriptors are treated as immutable after load; callers must
// not modify them.
type DeploymentDescriptor struct {
	APIVersion string         `json:"apiVersion"`
	Kind       string         `json:"kind"`
	Metadata   Meta           `json:"metadata"`
	Spec       DeploymentSpec `json:"spec"`
}

// DeploymentSpec defines replica count, pod selection, and the pod template.
type DeploymentSpec struct {
	Replicas *int32         `json:"replicas,omitempty"`
	Selector *LabelSelector `json:"selector,omitempty"`
	Template PodTemplate    `json:"template"`
}

// LabelSelector selects pods by exact label match.
type LabelSelector struct {
	MatchLabels map[string]string `json:"matchLabels,omitempty"`
}

// PodTemplate describes the pods a deployment creates.
type PodTemplate struct {
	Metadata Meta    `json:"metadata"`
	Spec     PodSpec `json:"spec"`
}

// PodSpec lists the containers and volumes of a pod.
type PodSpec struct {
	Containers                    []ContainerSpec `json:"containers"`
	Volumes                       []VolumeSpec    `json:"volumes,omitempty"`
	TerminationGracePeriodSeconds *int64          `json:"terminationGracePeriodSeconds,omitempty"`
}

// ContainerSpec describes a single container in a pod template.
type ContainerSpec struct {
	Name            string          `json:"name"`
	Image           string          `json:"image"`
	ImagePullPolicy string          `json:"imagePullPolicy,omitempty"`
	Command         []string        `json:"command,omitempty"`
	Args            []string        `json:"args,omitempty"`
	Env             []EnvVar        `json:"env,omitempty"`
	Ports           []ContainerPort `json:"ports,omitempty"`
	VolumeMounts    []VolumeMount   `json:"volumeMounts,omitempty"`
}

// ContainerPort declares a port exposed by a container.
type ContainerPort struct {
	Name          string   `json:"name,omitempty"`
	ContainerPort int32    `json:"containerPort"`
	Protocol      Protocol `json:"protocol,omitempty"`
}

// EnvVar is a name/value environment variable entry.
type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// VolumeMount mounts a named volume into a container filesystem.
type VolumeMount struct {
	Name      string `json:"name"`
	MountPath string `json:"mountPath"`
	ReadOnly  bool   `json:"readOnly,omitempty"`
}

// VolumeSpec declares a volume available to the pod template.
// Exactly one source should be set.
type VolumeSpec struct {
	Name     string          `json:"name"`
	HostPath *HostPathSource `json:"hostPath,omitempty"`
	EmptyDir *EmptyDirSource `json:"emptyDir,omitempty"`
}

// HostPathSource mounts a path from the node filesystem.
type HostPathSource struct {
	Path string `json:"path"`
	Type string `json:"type,omitempty"`
}

// EmptyDirSource provides scratch space with the pod's lifetime.
type EmptyDirSource struct {
	Medium string `json:"medium,omitempty"`
}

// Key returns the descriptor identity.
func (d *DeploymentDescriptor) Key() Key {
	return Key{Kind: KindDeployment, Namespace: d.Metadata.Namespace, Name: d.Metadata.Name}
}

// SelectorLabels returns the effective pod selector. When spec.selector is
// omitted it defaults to the pod template labels, matching legacy
// apps/v1beta1 behavior.
func (d *DeploymentDescriptor) SelectorLabels() map[string]string {
	if d.Spec.Selector != nil && len(d.Spec.Selector.MatchLabels) > 0 {
		return d.Spec.Selector.MatchLabels
	}
	return d.Spec.Template.Metadata.Labels
}
