package manifestset

import (
	"context"
	"errors"
	"fmt"

	"github.com/slipway-dev/slipway/domain/model"
	"github.com/slipway-dev/slipway/manifest"
)

// DiffInput selects the two descriptor sets to compare. Each side accepts a
// file path or a stored revision ID. When the old side is left empty, the
// latest applied revision is used; with none stored the old side is empty.
type DiffInput struct {
	OldPath       string
	OldRevisionID string
	NewPath       string
	NewRevisionID string
}

// DiffOutput reports the ordered changes from the old set to the new set.
type DiffOutput struct {
	Changes manifest.ChangeList
}

// Diff compares two descriptor sets and returns the added, removed and
// modified entries ordered by object key.
func (u *UseCase) Diff(ctx context.Context, in *DiffInput) (*DiffOutput, error) {
	if in == nil || (in.NewPath == "" && in.NewRevisionID == "") {
		return nil, fmt.Errorf("DiffInput requires a new path or revision")
	}

	newSet, _, err := u.resolveSet(ctx, in.NewPath, in.NewRevisionID)
	if err != nil {
		return nil, err
	}

	var oldSet *manifest.Set
	if in.OldPath != "" || in.OldRevisionID != "" {
		oldSet, _, err = u.resolveSet(ctx, in.OldPath, in.OldRevisionID)
		if err != nil {
			return nil, err
		}
	} else if u.Repos != nil && u.Repos.Revision != nil {
		rev, err := u.Repos.Revision.LatestApplied(ctx)
		switch {
		case err == nil:
			oldSet, err = parseRevision(rev)
			if err != nil {
				return nil, err
			}
		case errors.Is(err, model.ErrRevisionNotFound):
			// Nothing applied yet; diff against an empty set.
		default:
			return nil, fmt.Errorf("get latest applied revision: %w", err)
		}
	}

	return &DiffOutput{Changes: manifest.Diff(oldSet, newSet)}, nil
}
