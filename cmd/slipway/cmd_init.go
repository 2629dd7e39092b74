package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/slipway-dev/slipway/config/slipwaycfg"
)

const initialConfigYAML = `version: v1
registry:
  paths:
    - ./manifests
store:
  url: sqlite:./slipway.db
apply:
  namespace: ""
  fieldManager: slipway
  forceConflicts: false
kubeconfig: ""
`

// newCmdInit returns a command that writes a starter slipway.yml and a
// manifests directory into the working directory.
func newCmdInit() *cobra.Command {
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter slipway.yml and manifests directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, forceFlag)
		},
	}

	cmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite an existing slipway.yml")
	return cmd
}

func runInit(cmd *cobra.Command, forceFlag bool) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	configPath := filepath.Join(workDir, slipwaycfg.DefaultFileName)
	manifestDir := filepath.Join(workDir, "manifests")

	if !forceFlag {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists (use -f to overwrite)", configPath)
		}
	}

	if err := os.MkdirAll(manifestDir, 0755); err != nil {
		return fmt.Errorf("creating %s directory: %w", manifestDir, err)
	}
	if err := os.WriteFile(configPath, []byte(initialConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized slipway in %s\n", workDir)
	fmt.Fprintf(cmd.OutOrStdout(), "Created:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", configPath)
	fmt.Fprintf(cmd.OutOrStdout(), "  - %s/\n", manifestDir)
	return nil
}
