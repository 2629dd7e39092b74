package manifestset

import (
	"context"
	"fmt"

	"github.com/slipway-dev/slipway/adapters/kube"
	"github.com/slipway-dev/slipway/manifest"
)

// RenderInput selects the descriptor set to render, from a file path or a
// stored revision ID.
type RenderInput struct {
	Path       string
	RevisionID string
}

// RenderOutput carries the rendered Kubernetes manifest.
type RenderOutput struct {
	// Manifest is the multi-document YAML for the converted objects.
	Manifest string
	// Objects is the number of rendered Kubernetes objects.
	Objects int
	// Errors are validation failures that prevented rendering.
	Errors []string
}

// Render validates the selected set and converts it into the clean
// multi-document YAML that Apply would submit. Rendering is refused for
// sets that do not validate.
func (u *UseCase) Render(ctx context.Context, in *RenderInput) (*RenderOutput, error) {
	if in == nil || (in.Path == "" && in.RevisionID == "") {
		return nil, fmt.Errorf("RenderInput requires a path or revision")
	}

	set, _, err := u.resolveSet(ctx, in.Path, in.RevisionID)
	if err != nil {
		return nil, err
	}

	out := &RenderOutput{}
	vres := manifest.Validate(set)
	if vres.HasErrors() {
		for _, verr := range vres.Errors {
			out.Errors = append(out.Errors, verr.Error())
		}
		return out, fmt.Errorf("validation failed (%d errors)", len(vres.Errors))
	}

	objs, err := (&kube.Converter{}).Convert(set)
	if err != nil {
		return out, fmt.Errorf("convert set: %w", err)
	}
	text, err := kube.BuildCleanManifest(objs)
	if err != nil {
		return out, fmt.Errorf("render manifest: %w", err)
	}

	out.Manifest = text
	out.Objects = len(objs)
	return out, nil
}
