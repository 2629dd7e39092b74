package slipwaycfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the configuration file name looked up in the working
// directory when no explicit path is given.
const DefaultFileName = "slipway.yml"

// Load reads a YAML file from the given path and returns a deserialized Root.
// It performs no validation beyond YAML decoding; call Validate separately.
func Load(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var cfg Root
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return &cfg, nil
}
