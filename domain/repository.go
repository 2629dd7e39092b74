package domain

import (
	"context"

	"github.com/slipway-dev/slipway/domain/model"
)

// RevisionRepository stores and retrieves descriptor set revisions.
type RevisionRepository interface {
	Create(ctx context.Context, r *model.Revision) error
	Get(ctx context.Context, id string) (*model.Revision, error)
	// Latest returns the most recently created revision.
	Latest(ctx context.Context) (*model.Revision, error)
	// LatestApplied returns the most recently created revision that has been
	// submitted to a cluster.
	LatestApplied(ctx context.Context) (*model.Revision, error)
	List(ctx context.Context) ([]*model.Revision, error)
	// MarkApplied records that the revision has been submitted to a cluster.
	MarkApplied(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
