package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/slipway-dev/slipway/internal/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "slipway",
		Short:   "Slipway manifest registry CLI",
		Long:    "Slipway parses, validates, diffs and applies declarative Service and Deployment manifests.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultStore := os.Getenv("SLIPWAY_STORE_URL")
	if defaultStore == "" {
		defaultStore = "sqlite:./slipway.db"
	}
	cmd.PersistentFlags().String("store-url", defaultStore, "Revision store URL (env SLIPWAY_STORE_URL) (memory: | sqlite:/path/to.db)")
	cmd.PersistentFlags().StringP("config", "c", slipwayConfigDefault(), "Path to slipway.yml (env SLIPWAY_CONFIG)")
	cmd.PersistentFlags().String("kubeconfig", "", "Path to kubeconfig (env KUBECONFIG or ~/.kube/config when empty)")
	cmd.PersistentFlags().String("log-format", "human", "Log format (human|text|json) (env SLIPWAY_LOG_FORMAT)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().String("log-output", "-", "Log output (- for stderr, none to disable, or a file path)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		if env := os.Getenv("SLIPWAY_LOG_FORMAT"); env != "" { // env overrides flag
			format = env
		}
		levelStr, _ := c.Flags().GetString("log-level")
		level, err := logging.ParseLevel(levelStr)
		if err != nil {
			return err
		}
		output, _ := c.Flags().GetString("log-output")
		lf, err := logging.NewLogFile(&logging.LogConfig{Format: format, Level: levelStr, Output: output})
		if err != nil {
			return err
		}
		l, err := logging.NewWithWriter(format, level, lf.Writer())
		if err != nil {
			return err
		}
		ctx := logging.WithLogger(c.Context(), l)
		c.SetContext(ctx)
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdInit())
	cmd.AddCommand(newCmdConfig())
	cmd.AddCommand(newCmdLoad())
	cmd.AddCommand(newCmdValidate())
	cmd.AddCommand(newCmdDiff())
	cmd.AddCommand(newCmdRender())
	cmd.AddCommand(newCmdApply())
	cmd.AddCommand(newCmdRevision())
	return cmd
}

// slipwayConfigDefault resolves the default slipway.yml path.
func slipwayConfigDefault() string {
	if env := os.Getenv("SLIPWAY_CONFIG"); env != "" {
		return env
	}
	return "slipway.yml"
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
