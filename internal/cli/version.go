package cli

import (
	"fmt"
	goruntime "runtime"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if IsJSONOutput() {
			return WriteOutput(out, map[string]string{
				"version": Version,
				"commit":  Commit,
				"date":    Date,
				"go":      goruntime.Version(),
			})
		}
		fmt.Fprintf(out, "themetoggle %s (commit %s, built %s, %s)\n", Version, Commit, Date, goruntime.Version())
		return nil
	},
}
