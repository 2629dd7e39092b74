package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// findFlag looks up a flag on the command or any of its parents.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

// flagString returns the flag value from the command hierarchy, or def when
// the flag is unknown or empty.
func flagString(cmd *cobra.Command, name, def string) string {
	if f := findFlag(cmd, name); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return def
}
