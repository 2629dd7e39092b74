package kube

// Centralized label and annotation keys used by the kube adapter.
// Keep these constants stable; changes are API-visible in clusters.
const (
	// SlipwayDomain is the namespace domain for all Slipway custom labels and annotations.
	SlipwayDomain = "slipway.dev"

	LabelAppK8sManagedBy = "app.kubernetes.io/managed-by"

	AnnotationRevisionID     = SlipwayDomain + "/revision-id"
	AnnotationRevisionDigest = SlipwayDomain + "/revision-digest"

	// ManagedByValue marks objects submitted by this tool.
	ManagedByValue = "slipway"
)
