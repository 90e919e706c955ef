package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/themetoggle/themetoggle/internal/adapters"
	"github.com/themetoggle/themetoggle/internal/detect"
	"github.com/themetoggle/themetoggle/internal/models"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current mode and each application's theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newSession()
		if err != nil {
			return err
		}

		step := startProgress("Reading settings")
		status := collectStatus(cmd.Context(), rt)
		if failed := status.failed(); failed > 0 {
			step.Fail(fmt.Errorf("%d of %d applications unreadable", failed, len(status.Apps)))
		} else {
			step.Done()
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() {
			return WriteOutput(out, status)
		}

		fmt.Fprintf(out, "Mode:   %s (from %s)\n", formatMode(status.Detected.Mode), formatSource(status.Detected.Source))
		fmt.Fprintf(out, "System: %s\n", formatYesNo(status.SystemStore))
		if status.ConfigFile != "" {
			fmt.Fprintf(out, "Config: %s\n", status.ConfigFile)
		} else {
			fmt.Fprintln(out, "Config: built-in defaults")
		}
		fmt.Fprintln(out)

		rows := make([][]string, 0, len(status.Apps))
		for _, app := range status.Apps {
			mode := "-"
			if app.Mode != nil {
				mode = formatMode(*app.Mode)
			}
			rows = append(rows, []string{
				app.Name,
				string(app.Kind),
				formatOptional(app.Current),
				mode,
				formatOptional(app.Path),
				formatResultStatus(app.err),
			})
		}
		return writeTable(out, []string{"APP", "KIND", "THEME", "MODE", "PATH", "STATUS"}, rows)
	},
}

type statusReport struct {
	Detected    detect.Result `json:"detected"`
	SystemStore bool          `json:"system_store"`
	ConfigFile  string        `json:"config_file,omitempty"`
	Apps        []appStatus   `json:"apps"`
}

type appStatus struct {
	Name    string             `json:"name"`
	Kind    models.AdapterKind `json:"kind"`
	Path    string             `json:"path,omitempty"`
	Current string             `json:"current,omitempty"`
	Mode    *models.ThemeMode  `json:"mode,omitempty"`
	Error   string             `json:"error,omitempty"`

	err error
}

func (s statusReport) failed() int {
	n := 0
	for _, app := range s.Apps {
		if app.err != nil {
			n++
		}
	}
	return n
}

func collectStatus(ctx context.Context, rt *session) statusReport {
	status := statusReport{
		Detected:    rt.detector.Detect(ctx),
		SystemStore: rt.store != nil,
		ConfigFile:  appConfigPath,
		Apps:        make([]appStatus, 0, len(rt.descs)),
	}
	for _, desc := range rt.descs {
		status.Apps = append(status.Apps, inspectApp(ctx, desc))
	}
	return status
}

func inspectApp(ctx context.Context, desc models.Descriptor) appStatus {
	app := appStatus{Name: desc.Name, Kind: desc.Kind}

	fail := func(err error) appStatus {
		app.err = err
		app.Error = err.Error()
		return app
	}

	path, err := adapters.SettingsPath(desc)
	if err != nil {
		return fail(err)
	}
	app.Path = path

	adapter, err := adapters.DefaultRegistry.For(desc)
	if err != nil {
		return fail(err)
	}
	current, err := adapter.Current(ctx, desc)
	if err != nil {
		return fail(err)
	}
	app.Current = current
	if mode, ok := desc.ModeOf(current); ok {
		app.Mode = &mode
	}
	return app
}
