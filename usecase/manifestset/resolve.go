package manifestset

import (
	"context"
	"fmt"

	"github.com/slipway-dev/slipway/domain/model"
	"github.com/slipway-dev/slipway/manifest"
)

// resolveSet loads a descriptor set from a file path or a stored revision.
// Exactly one of path and revisionID must be set. The returned revision is
// non-nil only when the set came from the store.
func (u *UseCase) resolveSet(ctx context.Context, path, revisionID string) (*manifest.Set, *model.Revision, error) {
	switch {
	case path != "" && revisionID != "":
		return nil, nil, fmt.Errorf("path and revision are mutually exclusive")
	case path != "":
		set, err := manifest.ParsePath(path)
		if err != nil {
			return nil, nil, err
		}
		return set, nil, nil
	case revisionID != "":
		if u.Repos == nil || u.Repos.Revision == nil {
			return nil, nil, fmt.Errorf("revision store is not configured")
		}
		rev, err := u.Repos.Revision.Get(ctx, revisionID)
		if err != nil {
			return nil, nil, fmt.Errorf("get revision %s: %w", revisionID, err)
		}
		set, err := parseRevision(rev)
		if err != nil {
			return nil, nil, err
		}
		return set, rev, nil
	default:
		return nil, nil, fmt.Errorf("path or revision is required")
	}
}

// parseRevision parses the canonical source stored in a revision.
func parseRevision(rev *model.Revision) (*manifest.Set, error) {
	set, err := manifest.Parse([]byte(rev.Source), "revision:"+rev.ID)
	if err != nil {
		return nil, fmt.Errorf("parse revision %s: %w", rev.ID, err)
	}
	return set, nil
}
