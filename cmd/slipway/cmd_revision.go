package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/slipway-dev/slipway/usecase/manifestset"
)

// newCmdRevision returns the revision inspection command group.
func newCmdRevision() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revision",
		Short: "Inspect stored descriptor set revisions",
	}
	cmd.AddCommand(newCmdRevisionList())
	cmd.AddCommand(newCmdRevisionGet())
	cmd.AddCommand(newCmdRevisionDelete())
	return cmd
}

func newCmdRevisionList() *cobra.Command {
	var appliedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored revisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildManifestSetUseCase(cmd)
			if err != nil {
				return err
			}
			out, err := u.Revisions(cmd.Context(), &manifestset.RevisionsInput{AppliedOnly: appliedOnly})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tDOCS\tDIGEST\tAPPLIED\tSOURCE")
			for _, r := range out.Revisions {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%t\t%s\n",
					r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Documents, r.Digest, r.Applied, r.SourcePath)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&appliedOnly, "applied", false, "List only revisions that have been applied")
	return cmd
}

func newCmdRevisionGet() *cobra.Command {
	var showSource bool

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show one stored revision (latest when no ID is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildManifestSetUseCase(cmd)
			if err != nil {
				return err
			}
			in := &manifestset.GetRevisionInput{}
			if len(args) > 0 {
				in.ID = args[0]
			}
			out, err := u.GetRevision(cmd.Context(), in)
			if err != nil {
				return err
			}

			r := out.Revision
			fmt.Fprintf(cmd.OutOrStdout(), "id: %s\ncreated: %s\ndocuments: %d\ndigest: %s\napplied: %t\nsource: %s\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Documents, r.Digest, r.Applied, r.SourcePath)
			if showSource {
				fmt.Fprintln(cmd.OutOrStdout(), "---")
				fmt.Fprint(cmd.OutOrStdout(), r.Source)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSource, "source", false, "Print the stored canonical manifest text")
	return cmd
}

func newCmdRevisionDelete() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildManifestSetUseCase(cmd)
			if err != nil {
				return err
			}
			if err := u.DeleteRevision(cmd.Context(), &manifestset.DeleteRevisionInput{ID: args[0]}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revision %s deleted\n", args[0])
			return nil
		},
	}
}
