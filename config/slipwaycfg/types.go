// Package slipwaycfg defines the configuration schema (structs) for slipway.yml.
// This package is intended for YAML -> struct deserialization; loading and
// validation helpers live alongside in this package.
package slipwaycfg

// Root is the root structure of slipway.yml.
type Root struct {
	Version    string   `yaml:"version"`
	Registry   Registry `yaml:"registry"`
	Store      Store    `yaml:"store"`
	Apply      Apply    `yaml:"apply"`
	Kubeconfig string   `yaml:"kubeconfig"` // path to the kubeconfig file; empty uses $KUBECONFIG or the default location
}

// Registry configures where manifest sources are read from.
type Registry struct {
	// Paths are manifest files or directories scanned for *.yml / *.yaml.
	Paths []string `yaml:"paths"`
}

// Store configures revision persistence.
type Store struct {
	// URL selects the store backend, e.g. "memory:" or "sqlite:./slipway.db".
	URL string `yaml:"url"`
}

// Apply configures descriptor set submission.
type Apply struct {
	// Namespace fills objects that omit metadata.namespace.
	Namespace string `yaml:"namespace"`
	// FieldManager is the server-side apply field manager name.
	FieldManager string `yaml:"fieldManager"`
	// ForceConflicts forces apply on field manager conflicts.
	ForceConflicts bool `yaml:"forceConflicts"`
}
