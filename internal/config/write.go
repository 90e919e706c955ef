package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by WriteDefault when the file exists and
// overwriting was not requested.
var ErrConfigExists = errors.New("config file already exists")

const fileHeader = `# themetoggle configuration file
#
# apps are applied in order. kind is "json" (settings_key names one
# top-level member) or "text" (settings_key is a delimited path whose last
# segment is matched on a line). primary_path is tried before fallback_path.
#
# Environment overrides use the THEMETOGGLE_ prefix, for example
# THEMETOGGLE_DEFAULT_MODE=light or THEMETOGGLE_LOGGING_LEVEL=debug.

`

// Marshal renders cfg as commented YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefault writes the built-in configuration to path, creating parent
// directories as needed.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
	}

	data, err := Marshal(Default())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
