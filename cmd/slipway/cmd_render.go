package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slipway-dev/slipway/usecase/manifestset"
)

// newCmdRender returns a command that prints the clean Kubernetes YAML the
// apply command would submit.
func newCmdRender() *cobra.Command {
	var revisionID string

	cmd := &cobra.Command{
		Use:   "render [path]",
		Short: "Render a descriptor set as Kubernetes YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := &manifestset.RenderInput{RevisionID: revisionID}
			if len(args) > 0 {
				in.Path = args[0]
			}
			if in.Path == "" && in.RevisionID == "" {
				path, err := resolveSinglePath(cmd, nil)
				if err != nil {
					return err
				}
				in.Path = path
			}

			u, err := buildManifestSetUseCase(cmd)
			if err != nil {
				return err
			}
			out, err := u.Render(cmd.Context(), in)
			if out != nil {
				for _, msg := range out.Errors {
					fmt.Fprintln(cmd.ErrOrStderr(), msg)
				}
			}
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), out.Manifest)
			return nil
		},
	}

	cmd.Flags().StringVar(&revisionID, "revision", "", "Render a stored revision instead of a path")
	return cmd
}
