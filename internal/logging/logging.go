// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Format selects the log encoding.
type Format string

const (
	// FormatConsole writes human-readable lines.
	FormatConsole Format = "console"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
)

// Config holds logger settings.
type Config struct {
	// Level is a zerolog level name (debug, info, warn, error, disabled).
	Level string
	// Format is console or json.
	Format Format
	// Output defaults to stderr.
	Output io.Writer
	// NoColor disables ANSI colors in console output.
	NoColor bool
}

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()
)

// Init replaces the global logger.
func Init(cfg Config) error {
	level := zerolog.WarnLevel
	if name := strings.TrimSpace(cfg.Level); name != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(name))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	switch cfg.Format {
	case "", FormatConsole:
		out = zerolog.ConsoleWriter{Out: out, NoColor: cfg.NoColor, TimeFormat: time.Kitchen}
	case FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q (expected console or json)", cfg.Format)
	}

	mu.Lock()
	logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	mu.Unlock()
	return nil
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return Logger().With().Str("component", name).Logger()
}
