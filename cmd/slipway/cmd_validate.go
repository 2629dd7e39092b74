package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slipway-dev/slipway/usecase/manifestset"
)

// newCmdValidate returns a command that checks manifest sources without
// storing or applying anything.
func newCmdValidate() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path...]",
		Short: "Parse and validate manifests without storing them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			paths := args
			if len(paths) == 0 {
				if paths, err = registryPaths(cfg, ""); err != nil {
					return err
				}
			}

			// Validation never needs a store; build the usecase without one.
			u := &manifestset.UseCase{}

			var documents, failures int
			for _, path := range paths {
				out, verr := u.Validate(cmd.Context(), &manifestset.ValidateInput{Path: path})
				if verr != nil {
					return verr
				}
				documents += out.Documents
				failures += len(out.Errors)
				for _, msg := range out.Errors {
					fmt.Fprintln(cmd.ErrOrStderr(), msg)
				}
			}

			if failures > 0 {
				return fmt.Errorf("validation failed: %d errors in %d documents", failures, documents)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d documents valid\n", documents)
			return nil
		},
	}
}
