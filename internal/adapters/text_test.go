package adapters

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themetoggle/themetoggle/internal/models"
)

const terminalSettings = `// This file was initially generated by Windows Terminal
{
    "$schema": "https://aka.ms/terminal-profiles-schema",
    "defaultProfile": "{61c54bbd-c2c6-5271-96e7-009a87ff44bf}",
    "profiles":
    {
        "defaults":
        {
  "colorScheme": "Dracula",
            // "colorScheme": "Campbell",
            "fontFace": "Cascadia Code"
        },
        "list": []
    },
    "schemes": [{"name": "Dracula"}, {"name": "OneLight"}]
}
`

func terminalDescriptor(primary, fallback string) models.Descriptor {
	return models.Descriptor{
		Name:         "terminal",
		Kind:         models.AdapterKindText,
		SettingsKey:  "profiles:defaults:colorScheme",
		LightName:    "OneLight",
		DarkName:     "Dracula",
		PrimaryPath:  primary,
		FallbackPath: fallback,
	}
}

func TestTextAdapterRewritesOnlyMatchingLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, terminalSettings)

	applied, err := NewTextAdapter().Apply(context.Background(), terminalDescriptor(path, ""), models.ThemeModeLight)
	require.NoError(t, err)
	assert.Equal(t, "OneLight", applied)

	got := strings.Split(readFile(t, path), "\n")
	want := strings.Split(terminalSettings, "\n")
	require.Len(t, got, len(want))
	for i := range want {
		if strings.HasPrefix(want[i], `  "colorScheme": "Dracula",`) {
			assert.Equal(t, `  "colorScheme": "OneLight",`, got[i])
			continue
		}
		assert.Equal(t, want[i], got[i], "line %d changed", i)
	}
}

func TestTextAdapterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, terminalSettings)

	adapter := NewTextAdapter()
	desc := terminalDescriptor(path, "")

	_, err := adapter.Apply(context.Background(), desc, models.ThemeModeLight)
	require.NoError(t, err)
	current, err := adapter.Current(context.Background(), desc)
	require.NoError(t, err)
	assert.Equal(t, "OneLight", current)

	_, err = adapter.Apply(context.Background(), desc, models.ThemeModeDark)
	require.NoError(t, err)
	assert.Equal(t, terminalSettings, readFile(t, path))
}

func TestTextAdapterSameModeKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, terminalSettings)

	_, err := NewTextAdapter().Apply(context.Background(), terminalDescriptor(path, ""), models.ThemeModeDark)
	require.NoError(t, err)
	assert.Equal(t, terminalSettings, readFile(t, path))
}

func TestTextAdapterSkipsUnrecognizedLine(t *testing.T) {
	content := "{\r\n  \"colorScheme\": \"Campbell\",\r\n  \"colorScheme\": \"OneLight\"\r\n}"
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, content)

	_, err := NewTextAdapter().Apply(context.Background(), terminalDescriptor(path, ""), models.ThemeModeDark)
	require.NoError(t, err)
	assert.Equal(t, "{\r\n  \"colorScheme\": \"Campbell\",\r\n  \"colorScheme\": \"Dracula\"\r\n}", readFile(t, path))
}

func TestTextAdapterNoMatchDoesNotWrite(t *testing.T) {
	content := "{\n  \"colorScheme\": \"Campbell\",\n  \"fontFace\": \"OneLight Mono\"\n}\n"
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, content)

	adapter := NewTextAdapter()
	desc := terminalDescriptor(path, "")

	_, err := adapter.Apply(context.Background(), desc, models.ThemeModeLight)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoMatch), "expected ErrNoMatch, got %v", err)
	assert.Contains(t, err.Error(), "no valid current theme found")
	assert.Equal(t, content, readFile(t, path))

	_, err = adapter.Current(context.Background(), desc)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestTextAdapterEmptyBareKeyMatchesNothing(t *testing.T) {
	content := "{\n  \"fontFace\": \"Dracula Mono\",\n  \"colorScheme\": \"Dracula\"\n}\n"
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, content)

	desc := terminalDescriptor(path, "")
	desc.SettingsKey = "profiles:defaults:"

	_, err := NewTextAdapter().Apply(context.Background(), desc, models.ThemeModeLight)
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, content, readFile(t, path))
}

func TestTextAdapterUsesFallbackPath(t *testing.T) {
	dir := t.TempDir()
	fallback := filepath.Join(dir, "settings.json")
	writeFile(t, fallback, terminalSettings)

	desc := terminalDescriptor(filepath.Join(dir, "missing.json"), fallback)
	_, err := NewTextAdapter().Apply(context.Background(), desc, models.ThemeModeLight)
	require.NoError(t, err)
	assert.Contains(t, readFile(t, fallback), `"colorScheme": "OneLight",`)
}

func TestReplaceThemeLineWithoutTrailingNewline(t *testing.T) {
	desc := terminalDescriptor("", "")
	out, current, err := replaceThemeLine([]byte(`"colorScheme": "OneLight"`), desc, "Dracula")
	require.NoError(t, err)
	assert.Equal(t, "OneLight", current)
	assert.Equal(t, `"colorScheme": "Dracula"`, string(out))
}

func TestRegistry(t *testing.T) {
	r := NewBuiltinRegistry()
	assert.Equal(t, []models.AdapterKind{models.AdapterKindJSON, models.AdapterKindText}, r.Kinds())

	adapter, err := r.For(models.Descriptor{Kind: models.AdapterKindText})
	require.NoError(t, err)
	assert.Equal(t, models.AdapterKindText, adapter.Kind())

	_, err = r.For(models.Descriptor{Kind: "registry"})
	assert.ErrorIs(t, err, ErrUnknownKind)

	assert.Error(t, r.Register(NewJSONAdapter()))
	assert.Panics(t, func() { r.MustRegister(NewTextAdapter()) })
}
