package models

import (
	"fmt"
	"strings"
)

// ThemeMode is the appearance mode of an application or of the OS.
// The numeric value doubles as the registry DWORD (1 means "uses light theme").
type ThemeMode int

const (
	ThemeModeDark ThemeMode = iota
	ThemeModeLight
)

// AllThemeModes returns both modes in index order.
func AllThemeModes() []ThemeMode {
	return []ThemeMode{ThemeModeDark, ThemeModeLight}
}

// ParseThemeMode converts a mode name to a ThemeMode.
func ParseThemeMode(s string) (ThemeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark":
		return ThemeModeDark, nil
	case "light":
		return ThemeModeLight, nil
	default:
		return ThemeModeDark, fmt.Errorf("unknown theme mode %q (expected dark or light)", s)
	}
}

// Opposite returns the toggled mode.
func (m ThemeMode) Opposite() ThemeMode {
	if m == ThemeModeDark {
		return ThemeModeLight
	}
	return ThemeModeDark
}

// IsLight reports whether m is the light mode.
func (m ThemeMode) IsLight() bool {
	return m == ThemeModeLight
}

// String returns the mode name.
func (m ThemeMode) String() string {
	if m == ThemeModeLight {
		return "light"
	}
	return "dark"
}

// MarshalText implements encoding.TextMarshaler.
func (m ThemeMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ThemeMode) UnmarshalText(text []byte) error {
	parsed, err := ParseThemeMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
