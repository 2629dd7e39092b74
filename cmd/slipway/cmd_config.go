package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slipway-dev/slipway/config/slipwaycfg"
)

// newCmdConfig returns a command that reads and validates slipway.yml.
func newCmdConfig() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Read and validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flagString(cmd, "config", slipwaycfg.DefaultFileName)
			cfg, err := slipwaycfg.Load(path)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config %s: %w", path, err)
			}

			// Print a concise summary to stdout
			storeURL := cfg.Store.URL
			if storeURL == "" {
				storeURL = getStoreURL(cmd)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%s paths=[%s] store=%s namespace=%s\n",
				cfg.Version, strings.Join(cfg.Registry.Paths, " "), storeURL, cfg.Apply.Namespace)
			return nil
		},
	}
}
