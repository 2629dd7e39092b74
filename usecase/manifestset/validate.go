package manifestset

import (
	"context"
	"fmt"

	"github.com/slipway-dev/slipway/manifest"
)

// ValidateInput identifies the manifest source to check.
type ValidateInput struct {
	// Path is a manifest file or a directory scanned for *.yml / *.yaml.
	Path string
}

// ValidateOutput reports validation outcomes.
type ValidateOutput struct {
	// Documents is the number of descriptors parsed from the source.
	Documents int
	// Errors are validation failures in document order; empty when valid.
	Errors []string
}

// Validate parses and validates a manifest source without persisting
// anything. Parse failures are returned as errors; validation failures are
// reported in the output so callers can present all of them.
func (u *UseCase) Validate(ctx context.Context, in *ValidateInput) (*ValidateOutput, error) {
	if in == nil || in.Path == "" {
		return nil, fmt.Errorf("ValidateInput.Path is required")
	}

	set, err := manifest.ParsePath(in.Path)
	if err != nil {
		return nil, err
	}

	out := &ValidateOutput{Documents: set.Len()}
	for _, verr := range manifest.Validate(set).Errors {
		out.Errors = append(out.Errors, verr.Error())
	}
	return out, nil
}
