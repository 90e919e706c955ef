package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themetoggle/themetoggle/internal/models"
	"github.com/themetoggle/themetoggle/internal/paths"
)

func editorDescriptor(primary, fallback string) models.Descriptor {
	return models.Descriptor{
		Name:         "vscode",
		Kind:         models.AdapterKindJSON,
		SettingsKey:  "workbench.colorTheme",
		LightName:    "Default Light+",
		DarkName:     "Default Dark+",
		PrimaryPath:  primary,
		FallbackPath: fallback,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func decodeObject(t *testing.T, content string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(content), &out))
	return out
}

func TestJSONAdapterSetsLightTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, `{"workbench.colorTheme": "Default Dark+"}`)

	applied, err := NewJSONAdapter().Apply(context.Background(), editorDescriptor(path, ""), models.ThemeModeLight)
	require.NoError(t, err)
	assert.Equal(t, "Default Light+", applied)

	assert.Equal(t, `{"workbench.colorTheme": "Default Light+"}`, readFile(t, path))
}

func TestJSONAdapterPreservesOtherMembers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	original := `{
  "editor.fontSize": 14,
  "workbench.colorTheme": "Default Light+",
  "files.exclude": {"**/.git": true},
  "editor.rulers": [80, 120]
}
`
	writeFile(t, path, original)

	adapter := NewJSONAdapter()
	desc := editorDescriptor(path, "")
	for _, mode := range []models.ThemeMode{models.ThemeModeDark, models.ThemeModeLight} {
		_, err := adapter.Apply(context.Background(), desc, mode)
		require.NoError(t, err)

		got := decodeObject(t, readFile(t, path))
		assert.Equal(t, desc.NameFor(mode), got["workbench.colorTheme"])

		want := decodeObject(t, original)
		delete(want, "workbench.colorTheme")
		delete(got, "workbench.colorTheme")
		assert.Equal(t, want, got)
	}

	// Back at the starting mode, the file is byte-identical.
	assert.Equal(t, original, readFile(t, path))
}

func TestJSONAdapterIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, `{"a": 1, "workbench.colorTheme": "Default Light+"}`)

	adapter := NewJSONAdapter()
	desc := editorDescriptor(path, "")

	_, err := adapter.Apply(context.Background(), desc, models.ThemeModeDark)
	require.NoError(t, err)
	first := readFile(t, path)

	_, err = adapter.Apply(context.Background(), desc, models.ThemeModeDark)
	require.NoError(t, err)
	assert.Equal(t, first, readFile(t, path))

	current, err := adapter.Current(context.Background(), desc)
	require.NoError(t, err)
	assert.Equal(t, "Default Dark+", current)
}

func TestJSONAdapterKeepsComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, "{\n  // theme\n  \"workbench.colorTheme\": \"Default Dark+\",\n}\n")

	_, err := NewJSONAdapter().Apply(context.Background(), editorDescriptor(path, ""), models.ThemeModeLight)
	require.NoError(t, err)
	assert.Equal(t, "{\n  // theme\n  \"workbench.colorTheme\": \"Default Light+\",\n}\n", readFile(t, path))
}

func TestJSONAdapterAddsMissingKey(t *testing.T) {
	tests := map[string]struct {
		content string
		want    string
	}{
		"indented": {
			content: "{\n  \"editor.fontSize\": 14\n}\n",
			want:    "{\n  \"editor.fontSize\": 14,\n  \"workbench.colorTheme\": \"Default Dark+\"\n}\n",
		},
		"trailing comma and comments": {
			content: "{\n    // font\n    \"editor.fontSize\": 14,\n}",
			want:    "{\n    // font\n    \"editor.fontSize\": 14,\n    \"workbench.colorTheme\": \"Default Dark+\",\n}",
		},
		"crlf": {
			content: "{\r\n  \"editor.fontSize\": 14\r\n}",
			want:    "{\r\n  \"editor.fontSize\": 14,\r\n  \"workbench.colorTheme\": \"Default Dark+\"\r\n}",
		},
		"single line": {
			content: `{"editor.fontSize": 14}`,
			want:    `{"editor.fontSize": 14, "workbench.colorTheme": "Default Dark+"}`,
		},
		"compact": {
			content: `{"editor.fontSize":14}`,
			want:    `{"editor.fontSize":14, "workbench.colorTheme":"Default Dark+"}`,
		},
		"empty object": {
			content: "{\n}\n",
			want:    "{\n  \"workbench.colorTheme\": \"Default Dark+\"\n}\n",
		},
		"empty inline object": {
			content: "{}",
			want:    `{"workbench.colorTheme": "Default Dark+"}`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			writeFile(t, path, tt.content)

			desc := editorDescriptor(path, "")
			_, err := NewJSONAdapter().Apply(context.Background(), desc, models.ThemeModeDark)
			require.NoError(t, err)
			assert.Equal(t, tt.want, readFile(t, path))

			current, err := NewJSONAdapter().Current(context.Background(), desc)
			require.NoError(t, err)
			assert.Equal(t, "Default Dark+", current)
		})
	}
}

func TestJSONAdapterParseFailureLeavesFile(t *testing.T) {
	tests := map[string]string{
		"not json":   "theme = dark\n",
		"array":      `["Default Dark+"]`,
		"empty file": "",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			writeFile(t, path, content)

			_, err := NewJSONAdapter().Apply(context.Background(), editorDescriptor(path, ""), models.ThemeModeLight)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParse), "expected ErrParse, got %v", err)
			assert.Equal(t, content, readFile(t, path))
		})
	}
}

func TestJSONAdapterUsesFallbackPath(t *testing.T) {
	dir := t.TempDir()
	fallback := filepath.Join(dir, "fallback.json")
	writeFile(t, fallback, `{"workbench.colorTheme": "Default Light+"}`)

	desc := editorDescriptor(filepath.Join(dir, "missing", "settings.json"), fallback)
	applied, err := NewJSONAdapter().Apply(context.Background(), desc, models.ThemeModeDark)
	require.NoError(t, err)
	assert.Equal(t, "Default Dark+", applied)
	assert.Equal(t, `{"workbench.colorTheme": "Default Dark+"}`, readFile(t, fallback))
}

func TestJSONAdapterMissingFile(t *testing.T) {
	dir := t.TempDir()
	desc := editorDescriptor(filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json"))

	_, err := NewJSONAdapter().Apply(context.Background(), desc, models.ThemeModeLight)
	assert.True(t, errors.Is(err, paths.ErrNotFound), "expected ErrNotFound, got %v", err)
}

func TestJSONAdapterCanceledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, `{"workbench.colorTheme": "Default Dark+"}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewJSONAdapter().Apply(ctx, editorDescriptor(path, ""), models.ThemeModeLight)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, `{"workbench.colorTheme": "Default Dark+"}`, readFile(t, path))
}

func TestLookupString(t *testing.T) {
	data := []byte(`{
  // comment
  "profiles": {"defaults": {"colorScheme": "Dracula"}, "list": []},
  "theme": 3,
}`)

	got, err := LookupString(data, []string{"profiles", "defaults", "colorScheme"})
	require.NoError(t, err)
	assert.Equal(t, "Dracula", got)

	_, err = LookupString(data, []string{"profiles", "missing"})
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = LookupString(data, []string{"theme"})
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = LookupString(data, []string{"profiles", "list", "x"})
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = LookupString([]byte("nope"), []string{"theme"})
	assert.ErrorIs(t, err, ErrParse)
}
