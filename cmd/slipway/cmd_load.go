package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slipway-dev/slipway/usecase/manifestset"
)

// newCmdLoad returns a command that parses, validates and stores a manifest
// source as a new revision.
func newCmdLoad() *cobra.Command {
	return &cobra.Command{
		Use:   "load [path]",
		Short: "Parse and validate manifests and store them as a revision",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveSinglePath(cmd, args)
			if err != nil {
				return err
			}
			u, err := buildManifestSetUseCase(cmd)
			if err != nil {
				return err
			}

			out, err := u.Load(cmd.Context(), &manifestset.LoadInput{Path: path})
			if out != nil {
				for _, msg := range out.Errors {
					fmt.Fprintln(cmd.ErrOrStderr(), msg)
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revision %s stored (%d documents, digest %s)\n",
				out.Revision.ID, out.Documents, out.Revision.Digest)
			return nil
		},
	}
}

// resolveSinglePath picks the manifest source for single-source commands:
// the positional argument, or the sole registry path in slipway.yml.
func resolveSinglePath(cmd *cobra.Command, args []string) (string, error) {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	paths, err := registryPaths(cfg, arg)
	if err != nil {
		return "", err
	}
	if len(paths) > 1 {
		return "", fmt.Errorf("config lists %d registry paths; pass the one to use as an argument", len(paths))
	}
	return paths[0], nil
}
