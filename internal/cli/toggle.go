package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/themetoggle/themetoggle/internal/adapters"
	"github.com/themetoggle/themetoggle/internal/config"
	"github.com/themetoggle/themetoggle/internal/detect"
	"github.com/themetoggle/themetoggle/internal/logging"
	"github.com/themetoggle/themetoggle/internal/models"
	"github.com/themetoggle/themetoggle/internal/system"
	"github.com/themetoggle/themetoggle/internal/toggler"
)

// session is everything a command needs to touch the managed applications.
type session struct {
	descs    []models.Descriptor
	store    system.Store
	detector *detect.Detector
}

// systemStore is replaced in tests.
var systemStore = func() (system.Store, bool) {
	return system.Open()
}

func newSession() (*session, error) {
	descs, err := config.Select(appConfig.Descriptors(), appNames)
	if err != nil {
		return nil, err
	}

	rt := &session{descs: descs}
	if store, ok := systemStore(); ok {
		rt.store = store
	} else {
		logger := logging.Component("cli")
		logger.Debug().Msg("no system appearance store on this platform")
	}

	all := appConfig.Descriptors()
	rt.detector = detect.New(rt.store, config.ReferenceDescriptor(all, appConfig.Reference), logging.Component("detect"))
	return rt, nil
}

// resolveModeArg parses a forced mode argument. An unrecognized value falls
// back to fallback.
func resolveModeArg(arg string, fallback models.ThemeMode) (models.ThemeMode, bool) {
	mode, err := models.ParseThemeMode(arg)
	if err != nil {
		return fallback, false
	}
	return mode, true
}

func runToggle(cmd *cobra.Command, args []string) error {
	rt, err := newSession()
	if err != nil {
		return err
	}

	tg := toggler.New(toggler.Config{
		Parallel: appConfig.Parallel,
		Workers:  appConfig.Workers,
		System:   appConfig.System.Enabled,
	}, adapters.DefaultRegistry, rt.store, rt.detector, logging.Component("toggler"))

	out := cmd.OutOrStdout()
	if !IsJSONOutput() {
		fmt.Fprintln(out, "Setting themes...")
	}

	var report *toggler.Report
	if len(args) == 1 {
		mode, ok := resolveModeArg(args[0], appConfig.Mode())
		if !ok {
			logger := logging.Component("cli")
			logger.Warn().
				Str("arg", args[0]).
				Str("mode", mode.String()).
				Msg("unrecognized mode, using default")
		}
		report, err = tg.Apply(cmd.Context(), rt.descs, mode)
	} else {
		report, err = tg.Toggle(cmd.Context(), rt.descs)
	}
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		return WriteOutput(out, report)
	}
	printReport(out, report)
	return nil
}

func printReport(out io.Writer, report *toggler.Report) {
	for _, result := range report.Results {
		if result.OK() {
			fmt.Fprintf(out, "Set %s theme to: %s\n", result.Name, result.Applied)
			continue
		}
		fmt.Fprintf(out, "Failed to set %s theme: %s\n", result.Name, colorize(result.Err.Error(), styleErr))
	}

	if report.System != nil {
		if report.System.OK() {
			fmt.Fprintf(out, "Setting system theme to: %s\n", formatMode(report.System.Mode))
		} else {
			fmt.Fprintf(out, "Failed to set system theme: %s\n", colorize(report.System.Err.Error(), styleErr))
		}
	}

	summary := fmt.Sprintf("%s mode applied", formatMode(report.Mode))
	if report.Detected != nil {
		summary += fmt.Sprintf(" (was %s, from %s)", report.Detected.Mode, formatSource(report.Detected.Source))
	}
	if failed := report.Failed(); failed > 0 {
		summary += colorize(fmt.Sprintf(", %d failed", failed), styleWarn)
	}
	fmt.Fprintln(out, strings.TrimSpace(summary))
}
