// Package system reads and writes the OS-wide appearance mode.
//
// Only Windows exposes a store. On other platforms Open reports that the
// capability is absent and callers fall back to settings-file detection.
package system

import "github.com/themetoggle/themetoggle/internal/models"

const (
	// PersonalizeKeyPath is the per-user key holding the appearance flags.
	PersonalizeKeyPath = `SOFTWARE\Microsoft\Windows\CurrentVersion\Themes\Personalize`

	// AppsUseLightTheme controls application chrome.
	AppsUseLightTheme = "AppsUseLightTheme"
	// SystemUsesLightTheme controls taskbar and system chrome.
	SystemUsesLightTheme = "SystemUsesLightTheme"
)

// Store is the OS preference store for the appearance mode.
type Store interface {
	// ReadMode returns the mode applications currently use.
	ReadMode() (models.ThemeMode, error)

	// ApplyMode sets both the application and system flags to mode.
	ApplyMode(mode models.ThemeMode) error
}

// Open returns the platform store, or false when the platform has none.
func Open() (Store, bool) {
	return openStore()
}

func modeFromFlag(flag uint64) models.ThemeMode {
	if flag != 0 {
		return models.ThemeModeLight
	}
	return models.ThemeModeDark
}
