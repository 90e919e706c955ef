package adapters

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/themetoggle/themetoggle/internal/models"
)

// TextAdapter edits settings files that cannot be parsed structurally (the
// terminal's settings contain comments). It rewrites the theme name on the
// first line that mentions both the bare key and a known theme name, and
// leaves every other byte of the file untouched.
type TextAdapter struct{}

// NewTextAdapter creates a line-substitution settings adapter.
func NewTextAdapter() *TextAdapter {
	return &TextAdapter{}
}

// Kind implements Adapter.
func (a *TextAdapter) Kind() models.AdapterKind {
	return models.AdapterKindText
}

// Apply replaces the current theme name with the name for mode. If no line
// carries a recognized name, nothing is written and ErrNoMatch is returned.
func (a *TextAdapter) Apply(ctx context.Context, desc models.Descriptor, mode models.ThemeMode) (string, error) {
	target := desc.NameFor(mode)
	err := editSettings(ctx, desc, func(data []byte) ([]byte, error) {
		updated, _, err := replaceThemeLine(data, desc, target)
		return updated, err
	})
	if err != nil {
		return "", err
	}
	return target, nil
}

// Current returns the theme name found on the first matching line.
func (a *TextAdapter) Current(ctx context.Context, desc models.Descriptor) (string, error) {
	data, err := readSettings(ctx, desc)
	if err != nil {
		return "", err
	}
	_, current, err := replaceThemeLine(data, desc, "")
	return current, err
}

// replaceThemeLine scans data line by line. On the first line containing the
// bare key and either theme name it replaces the current name with target
// (unless target is empty) and returns the rewritten content along with the
// name that was found.
func replaceThemeLine(data []byte, desc models.Descriptor, target string) ([]byte, string, error) {
	key := desc.BareKey()
	if strings.TrimSpace(key) == "" {
		return nil, "", fmt.Errorf("%w for %s: empty key in %q", ErrNoMatch, desc.Name, desc.SettingsKey)
	}
	var out bytes.Buffer
	out.Grow(len(data))

	current := ""
	reader := bufio.NewReader(bytes.NewReader(data))
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, "", fmt.Errorf("scan settings: %w", err)
		}
		if line != "" {
			if current == "" && strings.Contains(line, key) {
				if name := recognizedName(line, desc); name != "" {
					current = name
					if target != "" {
						line = strings.ReplaceAll(line, current, target)
					}
				}
			}
			out.WriteString(line)
		}
		if err != nil {
			break
		}
	}

	if current == "" {
		return nil, "", fmt.Errorf("%w for %s (key %q)", ErrNoMatch, desc.Name, key)
	}
	return out.Bytes(), current, nil
}

// recognizedName returns the light name if present in line, else the dark
// name if present, else "".
func recognizedName(line string, desc models.Descriptor) string {
	switch {
	case strings.Contains(line, desc.LightName):
		return desc.LightName
	case strings.Contains(line, desc.DarkName):
		return desc.DarkName
	default:
		return ""
	}
}
