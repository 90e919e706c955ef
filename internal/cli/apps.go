package cli

import (
	"github.com/spf13/cobra"

	"github.com/themetoggle/themetoggle/internal/config"
	"github.com/themetoggle/themetoggle/internal/paths"
)

func init() {
	rootCmd.AddCommand(appsCmd)
}

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List the configured applications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		descs, err := config.Select(appConfig.Descriptors(), appNames)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() {
			return WriteOutput(out, descs)
		}

		ref := config.ReferenceDescriptor(appConfig.Descriptors(), appConfig.Reference)
		rows := make([][]string, 0, len(descs))
		for _, desc := range descs {
			found := paths.Candidates{Primary: desc.PrimaryPath, Fallback: desc.FallbackPath}.Existing()
			rows = append(rows, []string{
				desc.Name,
				string(desc.Kind),
				desc.SettingsKey,
				desc.LightName,
				desc.DarkName,
				formatYesNo(ref != nil && ref.Name == desc.Name),
				desc.PrimaryPath,
				formatOptional(desc.FallbackPath),
				formatYesNo(len(found) > 0),
			})
		}
		return writeTable(out, []string{"APP", "KIND", "KEY", "LIGHT", "DARK", "REFERENCE", "PRIMARY", "FALLBACK", "FOUND"}, rows)
	},
}
