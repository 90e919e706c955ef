// Package paths resolves settings files that may live at one of two locations.
package paths

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when neither candidate path exists.
var ErrNotFound = errors.New("settings file not found")

// Candidates holds the two locations of one settings file.
type Candidates struct {
	// Primary is tried first.
	Primary string

	// Fallback is used when Primary does not exist, e.g. the same file seen
	// through a different mount convention.
	Fallback string
}

// All returns the non-empty candidates in precedence order.
func (c Candidates) All() []string {
	paths := make([]string, 0, 2)
	if c.Primary != "" {
		paths = append(paths, c.Primary)
	}
	if c.Fallback != "" && c.Fallback != c.Primary {
		paths = append(paths, c.Fallback)
	}
	return paths
}

// Existing returns only the candidates that currently exist on disk.
func (c Candidates) Existing() []string {
	var existing []string
	for _, path := range c.All() {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	return existing
}

// Resolve returns the first candidate that exists. Only a "does not exist"
// result moves on to the next candidate; any other stat error is returned.
func (c Candidates) Resolve() (string, error) {
	all := c.All()
	for _, path := range all {
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("%w (tried %s)", ErrNotFound, strings.Join(all, ", "))
}

// Resolve is shorthand for Candidates{primary, fallback}.Resolve().
func Resolve(primary, fallback string) (string, error) {
	return Candidates{Primary: primary, Fallback: fallback}.Resolve()
}

// Expand replaces a leading "~" with the user's home directory and expands
// $VAR and ${VAR} references.
func Expand(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		path = filepath.Join(HomeDir(), path[1:])
	}
	return os.ExpandEnv(path)
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
