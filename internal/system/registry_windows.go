//go:build windows

package system

import (
	"fmt"

	"golang.org/x/sys/windows/registry"

	"github.com/themetoggle/themetoggle/internal/models"
)

type registryStore struct {
	root registry.Key
	path string
}

func openStore() (Store, bool) {
	return &registryStore{root: registry.CURRENT_USER, path: PersonalizeKeyPath}, true
}

func (s *registryStore) ReadMode() (models.ThemeMode, error) {
	key, err := registry.OpenKey(s.root, s.path, registry.QUERY_VALUE)
	if err != nil {
		return models.ThemeModeDark, fmt.Errorf("could not open registry key: %w", err)
	}
	defer key.Close()

	flag, _, err := key.GetIntegerValue(AppsUseLightTheme)
	if err != nil {
		return models.ThemeModeDark, fmt.Errorf("could not read %s: %w", AppsUseLightTheme, err)
	}
	return modeFromFlag(flag), nil
}

func (s *registryStore) ApplyMode(mode models.ThemeMode) error {
	key, err := registry.OpenKey(s.root, s.path, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("could not open registry key: %w", err)
	}
	defer key.Close()

	for _, name := range []string{AppsUseLightTheme, SystemUsesLightTheme} {
		if err := key.SetDWordValue(name, uint32(mode)); err != nil {
			return fmt.Errorf("could not set %s: %w", name, err)
		}
	}
	return nil
}
