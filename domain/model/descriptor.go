package model

// Kind discriminates descriptor types in a manifest document stream.
type Kind string

const (
	KindService    Kind = "Service"
	KindDeployment Kind = "Deployment"
)

// Key identifies a descriptor within a set.
// Two documents with the same Key describe the same object regardless of
// their declared apiVersion.
type Key struct {
	Kind      Kind
	Namespace string
	Name      string
}

// String returns the key in kind/namespace/name form.
func (k Key) String() string {
	return string(k.Kind) + "/" + k.Namespace + "/" + k.Name
}

// NamespacedName returns the namespace/name part of the key.
func (k Key) NamespacedName() string {
	return k.Namespace + "/" + k.Name
}

// Meta carries object identity and labeling shared by all descriptor kinds.
type Meta struct {
	Name        string            `json:"name"`
	Namespace   string            `json:"namespace"`
	Labels      map[string]string `json:"labels,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

// Protocol is a transport protocol for a port mapping.
type Protocol string

const (
	ProtocolTCP Protocol = "TCP"
	ProtocolUDP Protocol = "UDP"
)
