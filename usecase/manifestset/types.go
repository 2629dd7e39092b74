package manifestset

import (
	"github.com/slipway-dev/slipway/adapters/kube"
	"github.com/slipway-dev/slipway/domain"
)

// Repos holds repositories needed for manifest set use cases.
type Repos struct {
	Revision domain.RevisionRepository
}

// UseCase wires the revision store and cluster client for manifest set use cases.
type UseCase struct {
	Repos *Repos
	// Kube talks to the target cluster. Apply requires it; the read-only
	// operations work without one.
	Kube *kube.Client
}
