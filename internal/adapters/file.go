package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/themetoggle/themetoggle/internal/models"
	"github.com/themetoggle/themetoggle/internal/paths"
)

// Adapter errors.
var (
	ErrParse       = errors.New("settings file is not a valid JSON object")
	ErrKeyNotFound = errors.New("settings key not found")
	ErrNoMatch     = errors.New("no valid current theme found")
	ErrUnknownKind = errors.New("no adapter registered for kind")
)

// SettingsPath resolves the settings file of desc, preferring PrimaryPath.
func SettingsPath(desc models.Descriptor) (string, error) {
	return paths.Resolve(desc.PrimaryPath, desc.FallbackPath)
}

// readSettings resolves and reads the whole settings file.
func readSettings(ctx context.Context, desc models.Descriptor) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := SettingsPath(desc)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// editSettings resolves the settings file, reads it through an open
// read-write handle and passes the content to edit. The file is truncated
// and rewritten only after edit returns successfully.
func editSettings(ctx context.Context, desc models.Descriptor, edit func([]byte) ([]byte, error)) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := SettingsPath(desc)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	updated, err := edit(data)
	if err != nil {
		return err
	}

	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("truncate %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek %s: %w", path, err)
	}
	if _, err := f.Write(updated); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
