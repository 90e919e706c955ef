// Package models defines the core types shared across themetoggle.
package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultDelimiter separates segments of a compound settings key.
const DefaultDelimiter = ":"

// AdapterKind selects the adapter that edits a descriptor's settings file.
type AdapterKind string

const (
	// AdapterKindJSON edits a JSON settings object by key.
	AdapterKindJSON AdapterKind = "json"
	// AdapterKindText edits one line of a settings file by substring replacement.
	AdapterKindText AdapterKind = "text"
)

// AllAdapterKinds returns every supported adapter kind.
func AllAdapterKinds() []AdapterKind {
	return []AdapterKind{AdapterKindJSON, AdapterKindText}
}

// IsValid reports whether k is a supported kind.
func (k AdapterKind) IsValid() bool {
	switch k {
	case AdapterKindJSON, AdapterKindText:
		return true
	default:
		return false
	}
}

// ValidationError describes an invalid descriptor field.
type ValidationError struct {
	Field   string
	Index   int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("apps[%d].%s: %s", e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Descriptor describes one managed application's settings file and theme pair.
type Descriptor struct {
	// Name labels the application in logs and status output (e.g. "vscode").
	Name string `json:"name"`

	// Kind selects the adapter used to edit the settings file.
	Kind AdapterKind `json:"kind"`

	// SettingsKey locates the theme name inside the settings file.
	// For text files only the last Delimiter-separated segment is searched for.
	SettingsKey string `json:"settings_key"`

	LightName string `json:"light_name"`
	DarkName  string `json:"dark_name"`

	// PrimaryPath and FallbackPath are two locations of the same file,
	// e.g. a WSL mount path and the native Windows path.
	PrimaryPath  string `json:"primary_path"`
	FallbackPath string `json:"fallback_path,omitempty"`

	Delimiter string `json:"delimiter,omitempty"`
}

// Names returns the theme names indexed by mode (dark, light).
func (d Descriptor) Names() [2]string {
	return [2]string{d.DarkName, d.LightName}
}

// NameFor returns the theme name used for mode.
func (d Descriptor) NameFor(mode ThemeMode) string {
	if mode.IsLight() {
		return d.LightName
	}
	return d.DarkName
}

// ModeOf maps a stored theme name back to a mode.
func (d Descriptor) ModeOf(name string) (ThemeMode, bool) {
	switch name {
	case d.LightName:
		return ThemeModeLight, true
	case d.DarkName:
		return ThemeModeDark, true
	default:
		return ThemeModeDark, false
	}
}

func (d Descriptor) delimiter() string {
	if d.Delimiter == "" {
		return DefaultDelimiter
	}
	return d.Delimiter
}

// KeyPath splits SettingsKey into its delimiter-separated segments.
func (d Descriptor) KeyPath() []string {
	return strings.Split(d.SettingsKey, d.delimiter())
}

// BareKey returns the last segment of SettingsKey.
func (d Descriptor) BareKey() string {
	parts := d.KeyPath()
	return parts[len(parts)-1]
}

// Validate checks the descriptor invariants. index is the position in the
// configured list, or -1 when unknown.
func (d Descriptor) Validate(index int) error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "name", Index: index, Message: "is required"}
	}
	if !d.Kind.IsValid() {
		kinds := make([]string, 0, len(AllAdapterKinds()))
		for _, kind := range AllAdapterKinds() {
			kinds = append(kinds, string(kind))
		}
		return &ValidationError{Field: "kind", Index: index, Message: fmt.Sprintf("unknown adapter kind %q (expected %s)", d.Kind, strings.Join(kinds, " or "))}
	}
	if d.SettingsKey == "" {
		return &ValidationError{Field: "settings_key", Index: index, Message: "is required"}
	}
	if strings.TrimSpace(d.BareKey()) == "" {
		return &ValidationError{Field: "settings_key", Index: index, Message: fmt.Sprintf("%q has an empty last segment", d.SettingsKey)}
	}
	if d.LightName == "" {
		return &ValidationError{Field: "light_name", Index: index, Message: "is required"}
	}
	if d.DarkName == "" {
		return &ValidationError{Field: "dark_name", Index: index, Message: "is required"}
	}
	if d.LightName == d.DarkName {
		return &ValidationError{Field: "light_name", Index: index, Message: "light and dark names must differ"}
	}
	if d.PrimaryPath == "" && d.FallbackPath == "" {
		return &ValidationError{Field: "primary_path", Index: index, Message: "at least one path is required"}
	}
	if d.PrimaryPath != "" && !IsAbsPath(d.PrimaryPath) {
		return &ValidationError{Field: "primary_path", Index: index, Message: fmt.Sprintf("%q is not absolute", d.PrimaryPath)}
	}
	if d.FallbackPath != "" && !IsAbsPath(d.FallbackPath) {
		return &ValidationError{Field: "fallback_path", Index: index, Message: fmt.Sprintf("%q is not absolute", d.FallbackPath)}
	}
	return nil
}

// IsAbsPath reports whether p is absolute in either the host convention or
// the Windows convention (drive letter or UNC), so a WSL host can hold
// native Windows fallback paths.
func IsAbsPath(p string) bool {
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") {
		return true
	}
	if strings.HasPrefix(p, `\\`) {
		return true
	}
	if len(p) >= 3 && p[1] == ':' && (p[2] == '\\' || p[2] == '/') {
		c := p[0] | 0x20
		return c >= 'a' && c <= 'z'
	}
	return false
}
