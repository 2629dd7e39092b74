package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/slipway-dev/slipway/adapters/kube"
	"github.com/slipway-dev/slipway/config/slipwaycfg"
	"github.com/slipway-dev/slipway/usecase/manifestset"
)

// loadConfig reads the slipway.yml named by the config flag. A missing file
// with the default name is not an error; all settings have flag defaults.
func loadConfig(cmd *cobra.Command) (*slipwaycfg.Root, error) {
	path := flagString(cmd, "config", slipwaycfg.DefaultFileName)
	explicit := false
	if f := findFlag(cmd, "config"); f != nil {
		explicit = f.Changed
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return &slipwaycfg.Root{}, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg, err := slipwaycfg.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// buildManifestSetUseCase wires the revision store for registry operations
// that never touch a cluster.
func buildManifestSetUseCase(cmd *cobra.Command) (*manifestset.UseCase, error) {
	repo, err := buildRevisionRepository(cmd)
	if err != nil {
		return nil, err
	}
	return &manifestset.UseCase{Repos: &manifestset.Repos{Revision: repo}}, nil
}

// buildManifestSetUseCaseWithKube additionally wires a cluster client built
// from the resolved kubeconfig path.
func buildManifestSetUseCaseWithKube(cmd *cobra.Command, cfg *slipwaycfg.Root) (*manifestset.UseCase, error) {
	u, err := buildManifestSetUseCase(cmd)
	if err != nil {
		return nil, err
	}

	path, err := resolveKubeconfigPath(cmd, cfg)
	if err != nil {
		return nil, err
	}
	client, err := kube.NewClientFromKubeconfigPath(cmd.Context(), path, &kube.Options{
		UserAgent: "slipway/" + version,
	})
	if err != nil {
		return nil, fmt.Errorf("build kube client from %s: %w", path, err)
	}
	u.Kube = client
	return u, nil
}

// resolveKubeconfigPath picks the kubeconfig file: flag, then config,
// then $KUBECONFIG, then the default location.
func resolveKubeconfigPath(cmd *cobra.Command, cfg *slipwaycfg.Root) (string, error) {
	if p := flagString(cmd, "kubeconfig", ""); p != "" {
		return p, nil
	}
	if cfg != nil && cfg.Kubeconfig != "" {
		return expandHome(cfg.Kubeconfig)
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".kube", "config"), nil
}

// expandHome resolves a leading ~/ against the user home directory.
func expandHome(path string) (string, error) {
	if len(path) < 2 || path[:2] != "~/" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// registryPaths resolves the manifest source: an explicit path argument wins,
// otherwise the config registry paths apply.
func registryPaths(cfg *slipwaycfg.Root, arg string) ([]string, error) {
	if arg != "" {
		return []string{arg}, nil
	}
	if cfg != nil && len(cfg.Registry.Paths) > 0 {
		return cfg.Registry.Paths, nil
	}
	return nil, fmt.Errorf("no manifest path given and no registry.paths in config")
}
