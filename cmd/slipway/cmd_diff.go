package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slipway-dev/slipway/usecase/manifestset"
)

// newCmdDiff returns a command that compares a manifest source or revision
// against another, defaulting to the previously applied revision.
func newCmdDiff() *cobra.Command {
	var oldPath, oldRevision, newRevision string

	cmd := &cobra.Command{
		Use:   "diff [path]",
		Short: "Show changes between descriptor sets",
		Long: `Diff compares two descriptor sets and prints one line per change.

The new set comes from the path argument or --new-revision. The old set
comes from --old-path or --old-revision; when neither is given, the most
recently applied revision is used, so "slipway diff ./manifests" previews
what an apply would change.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := &manifestset.DiffInput{
				OldPath:       oldPath,
				OldRevisionID: oldRevision,
				NewRevisionID: newRevision,
			}
			if len(args) > 0 {
				in.NewPath = args[0]
			}
			if in.NewPath == "" && in.NewRevisionID == "" {
				path, err := resolveSinglePath(cmd, nil)
				if err != nil {
					return err
				}
				in.NewPath = path
			}

			u, err := buildManifestSetUseCase(cmd)
			if err != nil {
				return err
			}
			out, err := u.Diff(cmd.Context(), in)
			if err != nil {
				return err
			}

			for _, ch := range out.Changes {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", ch.Op, ch.Key)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Changes.Summary())
			return nil
		},
	}

	cmd.Flags().StringVar(&oldPath, "old-path", "", "Old set from a manifest file or directory")
	cmd.Flags().StringVar(&oldRevision, "old-revision", "", "Old set from a stored revision ID")
	cmd.Flags().StringVar(&newRevision, "new-revision", "", "New set from a stored revision ID")
	return cmd
}
