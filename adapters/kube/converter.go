package kube

import (
	"fmt"

	"github.com/slipway-dev/slipway/domain/model"
	"github.com/slipway-dev/slipway/manifest"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/intstr"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"k8s.io/utils/ptr"
)

// Converter builds Kubernetes API objects from a descriptor set.
//
// Design:
//   - Services are emitted before Deployments so endpoints resolve as the
//     workloads come up; within a kind the declared document order is kept.
//   - Legacy Deployment API versions are normalized to apps/v1 on output,
//     including the selector defaulting those versions allowed.
//   - Descriptors are never mutated; all maps and slices are copied.
type Converter struct {
	// Labels are merged into each object's metadata.labels. Converter
	// entries take precedence over descriptor labels so registry markers
	// cannot be shadowed by manifest content.
	Labels map[string]string
	// Annotations are merged into each object's metadata.annotations with
	// the same precedence as Labels.
	Annotations map[string]string
}

// Convert builds the ordered list of Kubernetes objects for the set.
// The set should have passed validation; conversion does not re-validate.
func (c *Converter) Convert(set *manifest.Set) ([]runtime.Object, error) {
	if set == nil || set.Len() == 0 {
		return nil, nil
	}

	var objs []runtime.Object
	for _, doc := range set.Documents() {
		if doc.Kind != model.KindService {
			continue
		}
		svc, ok := doc.Service()
		if !ok {
			return nil, fmt.Errorf("document %s is not a service descriptor", doc.Key)
		}
		objs = append(objs, c.convertService(svc))
	}
	for _, doc := range set.Documents() {
		if doc.Kind != model.KindDeployment {
			continue
		}
		dep, ok := doc.Deployment()
		if !ok {
			return nil, fmt.Errorf("document %s is not a deployment descriptor", doc.Key)
		}
		objs = append(objs, c.convertDeployment(dep))
	}

	stampGVK(objs)
	return objs, nil
}

func (c *Converter) objectMeta(m model.Meta) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Name:        m.Name,
		Namespace:   m.Namespace,
		Labels:      mergeStringMaps(m.Labels, c.Labels),
		Annotations: mergeStringMaps(m.Annotations, c.Annotations),
	}
}

func (c *Converter) convertService(svc *model.ServiceDescriptor) *corev1.Service {
	spec := corev1.ServiceSpec{
		Type:      corev1.ServiceType(svc.Spec.Type),
		ClusterIP: svc.Spec.ClusterIP,
		Selector:  copyStringMap(svc.Spec.Selector),
	}
	for _, p := range svc.Spec.Ports {
		spec.Ports = append(spec.Ports, corev1.ServicePort{
			Name:       p.Name,
			Protocol:   convertProtocol(p.Protocol),
			Port:       p.Port,
			TargetPort: intstr.FromInt(int(p.EffectiveTargetPort())),
			NodePort:   p.NodePort,
		})
	}
	return &corev1.Service{ObjectMeta: c.objectMeta(svc.Metadata), Spec: spec}
}

func (c *Converter) convertDeployment(dep *model.DeploymentDescriptor) *appsv1.Deployment {
	tmpl := dep.Spec.Template
	podSpec := corev1.PodSpec{}
	for _, ctn := range tmpl.Spec.Containers {
		podSpec.Containers = append(podSpec.Containers, convertContainer(ctn))
	}
	for _, vol := range tmpl.Spec.Volumes {
		podSpec.Volumes = append(podSpec.Volumes, convertVolume(vol))
	}
	if tmpl.Spec.TerminationGracePeriodSeconds != nil {
		podSpec.TerminationGracePeriodSeconds = ptr.To(*tmpl.Spec.TerminationGracePeriodSeconds)
	}

	spec := appsv1.DeploymentSpec{
		// SelectorLabels resolves the legacy template-label defaulting so the
		// apps/v1 output always carries an explicit selector.
		Selector: &metav1.LabelSelector{MatchLabels: copyStringMap(dep.SelectorLabels())},
		Template: corev1.PodTemplateSpec{
			ObjectMeta: metav1.ObjectMeta{
				Labels:      copyStringMap(tmpl.Metadata.Labels),
				Annotations: copyStringMap(tmpl.Metadata.Annotations),
			},
			Spec: podSpec,
		},
	}
	if dep.Spec.Replicas != nil {
		spec.Replicas = ptr.To(*dep.Spec.Replicas)
	}
	return &appsv1.Deployment{ObjectMeta: c.objectMeta(dep.Metadata), Spec: spec}
}

func convertContainer(ctn model.ContainerSpec) corev1.Container {
	out := corev1.Container{
		Name:            ctn.Name,
		Image:           ctn.Image,
		ImagePullPolicy: corev1.PullPolicy(ctn.ImagePullPolicy),
		Command:         append([]string(nil), ctn.Command...),
		Args:            append([]string(nil), ctn.Args...),
	}
	for _, e := range ctn.Env {
		out.Env = append(out.Env, corev1.EnvVar{Name: e.Name, Value: e.Value})
	}
	for _, p := range ctn.Ports {
		out.Ports = append(out.Ports, corev1.ContainerPort{
			Name:          p.Name,
			ContainerPort: p.ContainerPort,
			Protocol:      convertProtocol(p.Protocol),
		})
	}
	for _, m := range ctn.VolumeMounts {
		out.VolumeMounts = append(out.VolumeMounts, corev1.VolumeMount{
			Name:      m.Name,
			MountPath: m.MountPath,
			ReadOnly:  m.ReadOnly,
		})
	}
	return out
}

func convertVolume(vol model.VolumeSpec) corev1.Volume {
	out := corev1.Volume{Name: vol.Name}
	switch {
	case vol.HostPath != nil:
		hp := &corev1.HostPathVolumeSource{Path: vol.HostPath.Path}
		if vol.HostPath.Type != "" {
			hp.Type = ptr.To(corev1.HostPathType(vol.HostPath.Type))
		}
		out.VolumeSource.HostPath = hp
	case vol.EmptyDir != nil:
		out.VolumeSource.EmptyDir = &corev1.EmptyDirVolumeSource{
			Medium: corev1.StorageMedium(vol.EmptyDir.Medium),
		}
	}
	return out
}

func convertProtocol(p model.Protocol) corev1.Protocol {
	if p == "" {
		return corev1.ProtocolTCP
	}
	return corev1.Protocol(p)
}

// stampGVK fills apiVersion/kind on typed objects so they survive the
// round-trip through unstructured maps used by SSA and rendering.
func stampGVK(objs []runtime.Object) {
	scheme := runtime.NewScheme()
	utilruntime.Must(corev1.AddToScheme(scheme))
	utilruntime.Must(appsv1.AddToScheme(scheme))
	for _, obj := range objs {
		if obj == nil {
			continue
		}
		if gvk, _, err := scheme.ObjectKinds(obj); err == nil && len(gvk) > 0 {
			obj.GetObjectKind().SetGroupVersionKind(gvk[0])
		}
	}
}

// mergeStringMaps copies base and overlays over on top of it. Returns nil
// when both inputs are empty.
func mergeStringMaps(base, over map[string]string) map[string]string {
	if len(base) == 0 && len(over) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// copyStringMap returns a copy of m, or nil when m is empty.
func copyStringMap(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
