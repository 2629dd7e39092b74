package manifestset

import (
	"context"
	"fmt"

	"github.com/slipway-dev/slipway/domain/model"
)

// RevisionsInput selects which stored revisions to list.
type RevisionsInput struct {
	// AppliedOnly restricts the listing to revisions submitted to a cluster.
	AppliedOnly bool
}

// RevisionsOutput carries the stored revisions in creation order.
type RevisionsOutput struct {
	Revisions []*model.Revision
}

// Revisions lists the stored descriptor set revisions, oldest first.
func (u *UseCase) Revisions(ctx context.Context, in *RevisionsInput) (*RevisionsOutput, error) {
	if u.Repos == nil || u.Repos.Revision == nil {
		return nil, fmt.Errorf("revision store is not configured")
	}
	if in == nil {
		in = &RevisionsInput{}
	}

	revs, err := u.Repos.Revision.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	if in.AppliedOnly {
		kept := revs[:0]
		for _, r := range revs {
			if r.Applied {
				kept = append(kept, r)
			}
		}
		revs = kept
	}
	return &RevisionsOutput{Revisions: revs}, nil
}

// GetRevisionInput identifies a stored revision. With an empty ID the
// latest revision is returned.
type GetRevisionInput struct {
	ID string
}

// GetRevisionOutput carries one stored revision and its parsed set.
type GetRevisionOutput struct {
	Revision *model.Revision
	// Documents is the number of descriptors in the revision's set.
	Documents int
}

// GetRevision returns a stored revision by ID, or the latest one when the
// ID is empty.
func (u *UseCase) GetRevision(ctx context.Context, in *GetRevisionInput) (*GetRevisionOutput, error) {
	if u.Repos == nil || u.Repos.Revision == nil {
		return nil, fmt.Errorf("revision store is not configured")
	}
	if in == nil {
		in = &GetRevisionInput{}
	}

	var rev *model.Revision
	var err error
	if in.ID == "" {
		rev, err = u.Repos.Revision.Latest(ctx)
		if err != nil {
			return nil, fmt.Errorf("get latest revision: %w", err)
		}
	} else {
		rev, err = u.Repos.Revision.Get(ctx, in.ID)
		if err != nil {
			return nil, fmt.Errorf("get revision %s: %w", in.ID, err)
		}
	}
	return &GetRevisionOutput{Revision: rev, Documents: rev.Documents}, nil
}

// DeleteRevisionInput identifies the revision to remove from the store.
type DeleteRevisionInput struct {
	ID string
}

// DeleteRevision removes a stored revision. The cluster is not touched;
// this only forgets the snapshot.
func (u *UseCase) DeleteRevision(ctx context.Context, in *DeleteRevisionInput) error {
	if u.Repos == nil || u.Repos.Revision == nil {
		return fmt.Errorf("revision store is not configured")
	}
	if in == nil || in.ID == "" {
		return fmt.Errorf("DeleteRevisionInput.ID is required")
	}
	if err := u.Repos.Revision.Delete(ctx, in.ID); err != nil {
		return fmt.Errorf("delete revision %s: %w", in.ID, err)
	}
	return nil
}
