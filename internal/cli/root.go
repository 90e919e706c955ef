// Package cli implements the themetoggle command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/themetoggle/themetoggle/internal/config"
	"github.com/themetoggle/themetoggle/internal/logging"
)

// Build information, set with -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const skipConfigAnnotation = "themetoggle/skip-config"

var (
	configFile string
	logLevel   string
	logFormat  string
	jsonOutput bool
	parallel   bool
	workers    int
	noSystem   bool
	noColor    bool
	appNames   []string

	appConfig     *config.Config
	appConfigPath string
)

var rootCmd = &cobra.Command{
	Use:   "themetoggle [dark|light]",
	Short: "Toggle light and dark mode across applications",
	Long: `themetoggle flips the appearance mode of the configured applications and,
on Windows, of the operating system.

With no argument the current mode is detected and its opposite applied.
With "dark" or "light" that mode is applied without detection.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
	RunE:              runToggle,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "log format (console, json)")
	flags.BoolVar(&jsonOutput, "json", false, "write machine-readable JSON output")
	flags.BoolVar(&parallel, "parallel", false, "apply to all applications concurrently")
	flags.IntVar(&workers, "workers", 0, "concurrent applications with --parallel (0 = all)")
	flags.BoolVar(&noSystem, "no-system", false, "do not change the operating system setting")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.StringSliceVarP(&appNames, "app", "a", nil, "limit to the named application (repeatable)")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, args []string) error {
	applyColorProfile()

	if cmd.Annotations[skipConfigAnnotation] == "true" {
		return nil
	}

	cfg, used, err := config.Load(configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = logFormat
	}
	if flags.Changed("parallel") {
		cfg.Parallel = parallel
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if noSystem {
		cfg.System.Enabled = false
	}

	if err := logging.Init(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  logging.Format(cfg.Logging.Format),
		NoColor: !colorEnabled(),
	}); err != nil {
		return err
	}

	appConfig = cfg
	appConfigPath = used
	logger := logging.Component("cli")
	logger.Debug().Str("config", used).Int("apps", len(cfg.Apps)).Msg("configuration loaded")
	return nil
}
