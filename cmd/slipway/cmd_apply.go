package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slipway-dev/slipway/usecase/manifestset"
)

// newCmdApply returns a command that submits a descriptor set to the cluster
// with server-side apply.
func newCmdApply() *cobra.Command {
	var revisionID, namespace string
	var forceConflicts, prune bool

	cmd := &cobra.Command{
		Use:   "apply [path]",
		Short: "Apply a descriptor set to the cluster",
		Long: `Apply validates the target set, records it as a revision, and submits it
to the cluster with server-side apply. With no path and no --revision the
latest stored revision is applied. --prune deletes objects the previously
applied revision declared but the target set no longer does.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			in := &manifestset.ApplyInput{
				RevisionID:     revisionID,
				Namespace:      namespace,
				ForceConflicts: forceConflicts,
				Prune:          prune,
			}
			if len(args) > 0 {
				in.Path = args[0]
			}
			if in.Namespace == "" {
				in.Namespace = cfg.Apply.Namespace
			}
			in.FieldManager = cfg.Apply.FieldManager
			if !cmd.Flags().Changed("force-conflicts") && cfg.Apply.ForceConflicts {
				in.ForceConflicts = true
			}

			u, err := buildManifestSetUseCaseWithKube(cmd, cfg)
			if err != nil {
				return err
			}
			out, err := u.Apply(cmd.Context(), in)
			if out != nil {
				for _, msg := range out.Errors {
					fmt.Fprintln(cmd.ErrOrStderr(), msg)
				}
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "revision %s applied: %d objects, %d pruned (%s)\n",
				out.Revision.ID, out.Applied, out.Deleted, out.Changes.Summary())
			return nil
		},
	}

	cmd.Flags().StringVar(&revisionID, "revision", "", "Apply a stored revision instead of a path")
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Default namespace for objects that omit one")
	cmd.Flags().BoolVar(&forceConflicts, "force-conflicts", false, "Force server-side apply on field manager conflicts")
	cmd.Flags().BoolVar(&prune, "prune", false, "Delete objects removed since the previously applied revision")
	return cmd
}
