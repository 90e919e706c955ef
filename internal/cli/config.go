package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/themetoggle/themetoggle/internal/config"
)

var initForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write the default configuration file",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := targetConfigPath()
		if err := config.WriteDefault(path, initForce); err != nil {
			if errors.Is(err, config.ErrConfigExists) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			return err
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() {
			return WriteOutput(out, map[string]string{"path": path})
		}
		fmt.Fprintf(out, "Wrote %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the configuration file path",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := targetConfigPath()
		_, err := os.Stat(path)
		exists := err == nil

		out := cmd.OutOrStdout()
		if IsJSONOutput() {
			return WriteOutput(out, map[string]any{"path": path, "exists": exists})
		}
		if exists {
			fmt.Fprintln(out, path)
		} else {
			fmt.Fprintf(out, "%s %s\n", path, colorize("(not found, using built-in defaults)", styleMuted))
		}
		return nil
	},
}

func targetConfigPath() string {
	if configFile != "" {
		return configFile
	}
	return config.DefaultPath()
}
