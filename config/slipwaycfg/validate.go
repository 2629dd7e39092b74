package slipwaycfg

import (
	"fmt"
	"strings"

	"github.com/slipway-dev/slipway/internal/naming"
)

// supportedSchemes are the store URL schemes a Root may reference.
var supportedSchemes = []string{"memory:", "sqlite:", "sqlite3:"}

// Validate performs semantic validation on the configuration tree.
func (r *Root) Validate() error {
	if r.Version != "" && r.Version != "v1" {
		return fmt.Errorf("version: unsupported value %q, only v1 is known", r.Version)
	}
	if err := r.Registry.validate(); err != nil {
		return fmt.Errorf("registry: %w", err)
	}
	if err := r.Store.validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := r.Apply.validate(); err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	return nil
}

func (g *Registry) validate() error {
	seen := make(map[string]struct{}, len(g.Paths))
	for i, p := range g.Paths {
		if p == "" {
			return fmt.Errorf("paths[%d]: empty path", i)
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("paths[%d]: duplicate path %q", i, p)
		}
		seen[p] = struct{}{}
	}
	return nil
}

func (s *Store) validate() error {
	if s.URL == "" {
		return nil // the CLI default applies
	}
	for _, scheme := range supportedSchemes {
		if strings.HasPrefix(s.URL, scheme) {
			return nil
		}
	}
	return fmt.Errorf("url: unsupported scheme in %q, expected one of %s",
		s.URL, strings.Join(supportedSchemes, " "))
}

func (a *Apply) validate() error {
	if a.Namespace != "" {
		if err := naming.ValidateNamespace(a.Namespace); err != nil {
			return fmt.Errorf("namespace: %w", err)
		}
	}
	return nil
}
