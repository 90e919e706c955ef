// Package toggler applies one appearance mode across all managed applications.
package toggler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/themetoggle/themetoggle/internal/adapters"
	"github.com/themetoggle/themetoggle/internal/detect"
	"github.com/themetoggle/themetoggle/internal/models"
	"github.com/themetoggle/themetoggle/internal/system"
)

// ErrNoDescriptors is returned when there is nothing to toggle.
var ErrNoDescriptors = errors.New("no applications configured")

// Config contains toggler configuration.
type Config struct {
	// Parallel runs one task per descriptor instead of a single pass.
	// Default: false.
	Parallel bool

	// Workers bounds concurrent tasks when Parallel is set.
	// Default: one per descriptor.
	Workers int

	// System applies the mode to the OS store when one is available.
	// Default: true.
	System bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		System: true,
	}
}

// Detector determines the current mode.
type Detector interface {
	Detect(ctx context.Context) detect.Result
}

// Toggler drives the adapters for a list of descriptors.
type Toggler struct {
	config   Config
	registry *adapters.Registry
	store    system.Store
	detector Detector
	logger   zerolog.Logger
}

// New creates a Toggler. store may be nil when the platform has none.
func New(config Config, registry *adapters.Registry, store system.Store, detector Detector, logger zerolog.Logger) *Toggler {
	if registry == nil {
		registry = adapters.DefaultRegistry
	}
	return &Toggler{
		config:   config,
		registry: registry,
		store:    store,
		detector: detector,
		logger:   logger,
	}
}

// Toggle detects the current mode once and applies its opposite.
func (t *Toggler) Toggle(ctx context.Context, descs []models.Descriptor) (*Report, error) {
	if len(descs) == 0 {
		return nil, ErrNoDescriptors
	}
	detected := t.detector.Detect(ctx)
	report := t.apply(ctx, descs, detected.Mode.Opposite())
	report.Detected = &detected
	report.Source = detected.Source
	return report, nil
}

// Apply applies mode without detecting the current one.
func (t *Toggler) Apply(ctx context.Context, descs []models.Descriptor, mode models.ThemeMode) (*Report, error) {
	if len(descs) == 0 {
		return nil, ErrNoDescriptors
	}
	report := t.apply(ctx, descs, mode)
	report.Source = detect.SourceForced
	return report, nil
}

func (t *Toggler) apply(ctx context.Context, descs []models.Descriptor, mode models.ThemeMode) *Report {
	report := &Report{
		RunID:   uuid.NewString(),
		Mode:    mode,
		Results: make([]Result, len(descs)),
	}
	logger := t.logger.With().Str("run_id", report.RunID).Str("mode", mode.String()).Logger()
	logger.Info().Int("apps", len(descs)).Bool("parallel", t.config.Parallel).Msg("applying theme mode")

	if t.config.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		workers := t.config.Workers
		if workers <= 0 || workers > len(descs) {
			workers = len(descs)
		}
		g.SetLimit(workers)
		for i := range descs {
			g.Go(func() error {
				report.Results[i] = t.applyOne(gctx, logger, descs[i], mode)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range descs {
			report.Results[i] = t.applyOne(ctx, logger, descs[i], mode)
		}
	}

	if t.store != nil && t.config.System {
		report.System = t.applySystem(logger, mode)
	}

	logger.Info().Int("failed", report.Failed()).Msg("theme mode applied")
	return report
}

// applyOne is the failure boundary for a single descriptor: every error is
// captured in the Result and never propagated.
func (t *Toggler) applyOne(ctx context.Context, logger zerolog.Logger, desc models.Descriptor, mode models.ThemeMode) Result {
	started := time.Now()
	result := Result{Name: desc.Name, Kind: desc.Kind}

	adapter, err := t.registry.For(desc)
	if err == nil {
		result.Applied, err = adapter.Apply(ctx, desc, mode)
	}
	result.Duration = time.Since(started)

	if err != nil {
		result.Err = err
		logger.Error().Err(err).Str("app", desc.Name).Msg("failed to set theme")
		return result
	}
	logger.Debug().Str("app", desc.Name).Str("theme", result.Applied).Dur("took", result.Duration).Msg("theme set")
	return result
}

func (t *Toggler) applySystem(logger zerolog.Logger, mode models.ThemeMode) *SystemResult {
	result := &SystemResult{Mode: mode}
	if err := t.store.ApplyMode(mode); err != nil {
		result.Err = err
		logger.Error().Err(err).Msg("failed to set system theme")
		return result
	}
	logger.Debug().Msg("system theme set")
	return result
}
