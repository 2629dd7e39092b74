package model

// ServiceDescriptor declares a stable network endpoint in front of a set of
// pods selected by labels. Descriptors are treated as immutable after load;
// callers must not modify them.
type ServiceDescriptor struct {
	APIVersion string      `json:"apiVersion"`
	Kind       string      `json:"kind"`
	Metadata   Meta        `json:"metadata"`
	Spec       ServiceSpec `json:"spec"`
}

// ServiceSpec defines the endpoint behavior of a service.
type ServiceSpec struct {
	Type      ServiceType       `json:"type,omitempty"`
	ClusterIP string            `json:"clusterIP,omitempty"` // "None" for headless services
	Selector  map[string]string `json:"selector,omitempty"`
	Ports     []ServicePort     `json:"ports,omitempty"`
}

// ServiceType determines how a service is exposed.
type ServiceType string

const (
	ServiceTypeClusterIP ServiceType = "ClusterIP"
	ServiceTypeNodePort  ServiceType = "NodePort"
)

// ServicePort maps a service port to a port exposed by the selected pods.
type ServicePort struct {
	Name       string   `json:"name,omitempty"`
	Protocol   Protocol `json:"protocol,omitempty"`
	Port       int32    `json:"port"`
	TargetPort int32    `json:"targetPort,omitempty"`
	NodePort   int32    `json:"nodePort,omitempty"`
}

// EffectiveTargetPort returns the pod port this mapping forwards to.
// An omitted targetPort defaults to the service port.
func (p ServicePort) EffectiveTargetPort() int32 {
	if p.TargetPort != 0 {
		return p.TargetPort
	}
	return p.Port
}

// Key returns the descriptor identity.
func (s *ServiceDescriptor) Key() Key {
	return Key{Kind: KindService, Namespace: s.Metadata.Namespace, Name: s.Metadata.Name}
}

// Headless reports whether the service requests direct pod addressing
// instead of a virtual cluster IP.
func (s *ServiceDescriptor) Headless() bool {
	return s.Spec.ClusterIP == "None"
}
