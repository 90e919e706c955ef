// Package detect determines the current appearance mode.
package detect

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/themetoggle/themetoggle/internal/adapters"
	"github.com/themetoggle/themetoggle/internal/models"
	"github.com/themetoggle/themetoggle/internal/system"
)

// Source names where a detected mode came from.
type Source string

const (
	// SourceSystem means the OS preference store answered.
	SourceSystem Source = "system"
	// SourceSettings means the reference settings file answered.
	SourceSettings Source = "settings"
	// SourceDefault means every lookup failed and the default was used.
	SourceDefault Source = "default"
	// SourceForced means the mode was given by the caller, not detected.
	SourceForced Source = "forced"
)

// DefaultMode is returned when nothing can be read. It is light so the
// next toggle produces dark.
const DefaultMode = models.ThemeModeLight

// Result is a detected mode and where it came from.
type Result struct {
	Mode   models.ThemeMode `json:"mode"`
	Source Source           `json:"source"`
}

// Detector determines the current mode from the OS store, falling back to a
// reference settings file.
type Detector struct {
	store     system.Store
	reference *models.Descriptor
	logger    zerolog.Logger
}

// New creates a detector. store may be nil when the platform has none;
// reference may be nil when no settings file should be consulted.
func New(store system.Store, reference *models.Descriptor, logger zerolog.Logger) *Detector {
	return &Detector{
		store:     store,
		reference: reference,
		logger:    logger,
	}
}

// Detect never fails: every error path ends in a definite mode.
func (d *Detector) Detect(ctx context.Context) Result {
	if d.store != nil {
		mode, err := d.store.ReadMode()
		if err == nil {
			return Result{Mode: mode, Source: SourceSystem}
		}
		d.logger.Debug().Err(err).Msg("system mode unavailable, using settings file")
	}

	if d.reference != nil {
		mode, err := FromDescriptor(ctx, *d.reference)
		if err == nil {
			return Result{Mode: mode, Source: SourceSettings}
		}
		d.logger.Debug().Err(err).Str("app", d.reference.Name).Msg("settings mode unavailable, using default")
	}

	return Result{Mode: DefaultMode, Source: SourceDefault}
}

// FromDescriptor reads desc's settings file and maps the stored theme name
// to a mode. JSON descriptors look up SettingsKey as a single member; other
// kinds walk its delimiter-separated segments through nested objects.
// Any stored name other than LightName is reported as dark.
func FromDescriptor(ctx context.Context, desc models.Descriptor) (models.ThemeMode, error) {
	if err := ctx.Err(); err != nil {
		return DefaultMode, err
	}
	path, err := adapters.SettingsPath(desc)
	if err != nil {
		return DefaultMode, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultMode, fmt.Errorf("read %s: %w", path, err)
	}

	keyPath := []string{desc.SettingsKey}
	if desc.Kind != models.AdapterKindJSON {
		keyPath = desc.KeyPath()
	}
	name, err := adapters.LookupString(data, keyPath)
	if err != nil {
		return DefaultMode, fmt.Errorf("%s: %w", path, err)
	}

	if name == desc.LightName {
		return models.ThemeModeLight, nil
	}
	return models.ThemeModeDark, nil
}
