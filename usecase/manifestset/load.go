package manifestset

import (
	"context"
	"fmt"

	"github.com/slipway-dev/slipway/domain/model"
	"github.com/slipway-dev/slipway/internal/logging"
	"github.com/slipway-dev/slipway/internal/naming"
	"github.com/slipway-dev/slipway/manifest"
)

// LoadInput identifies the manifest source to load into the registry.
type LoadInput struct {
	// Path is a manifest file or a directory scanned for *.yml / *.yaml.
	Path string
}

// LoadOutput is the outcome of loading a manifest source.
type LoadOutput struct {
	// Revision is the stored snapshot of the loaded set.
	Revision *model.Revision
	// Documents is the number of descriptors in the set.
	Documents int
	// Errors are fatal validation failures; set only when loading failed.
	Errors []string
}

// Load parses and validates a manifest source and persists it as a new
// revision. Nothing is stored when the set does not validate.
func (u *UseCase) Load(ctx context.Context, in *LoadInput) (*LoadOutput, error) {
	if in == nil || in.Path == "" {
		return nil, fmt.Errorf("LoadInput.Path is required")
	}
	if u.Repos == nil || u.Repos.Revision == nil {
		return nil, fmt.Errorf("revision store is not configured")
	}
	logger := logging.FromContext(ctx)

	set, err := manifest.ParsePath(in.Path)
	if err != nil {
		return nil, err
	}
	out := &LoadOutput{Documents: set.Len()}

	vres := manifest.Validate(set)
	if vres.HasErrors() {
		for _, verr := range vres.Errors {
			out.Errors = append(out.Errors, verr.Error())
			logger.Error(ctx, verr.Error(), "path", in.Path)
		}
		return out, fmt.Errorf("validation failed (%d errors)", len(vres.Errors))
	}

	canonical, err := set.MarshalYAML()
	if err != nil {
		return out, fmt.Errorf("canonicalize set: %w", err)
	}

	rev := &model.Revision{
		SourcePath: in.Path,
		Source:     string(canonical),
		Digest:     naming.ContentDigest(string(canonical)),
		Documents:  set.Len(),
	}
	if err := u.Repos.Revision.Create(ctx, rev); err != nil {
		return out, fmt.Errorf("store revision: %w", err)
	}
	logger.Info(ctx, "revision created", "revision", rev.ID, "digest", rev.Digest, "documents", rev.Documents)

	out.Revision = rev
	return out, nil
}
