// Package config loads themetoggle configuration from YAML, environment
// variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/themetoggle/themetoggle/internal/logging"
	"github.com/themetoggle/themetoggle/internal/models"
	"github.com/themetoggle/themetoggle/internal/paths"
)

// EnvPrefix prefixes environment overrides, e.g. THEMETOGGLE_DEFAULT_MODE.
const EnvPrefix = "THEMETOGGLE"

// ErrUnknownReference is returned when reference names no configured app.
var ErrUnknownReference = errors.New("reference app not configured")

// Config is the complete themetoggle configuration.
type Config struct {
	Apps []AppConfig `mapstructure:"apps" yaml:"apps"`

	System SystemConfig `mapstructure:"system" yaml:"system"`

	// Reference names the app whose settings file decides the current mode
	// when the OS store cannot be read. Default: the first app.
	Reference string `mapstructure:"reference" yaml:"reference,omitempty"`

	// DefaultMode is used when a forced mode argument is not recognized.
	DefaultMode string `mapstructure:"default_mode" yaml:"default_mode"`

	Parallel bool `mapstructure:"parallel" yaml:"parallel"`
	Workers  int  `mapstructure:"workers" yaml:"workers"`

	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// AppConfig is one managed application as written in the config file.
type AppConfig struct {
	Name         string `mapstructure:"name" yaml:"name"`
	Kind         string `mapstructure:"kind" yaml:"kind"`
	SettingsKey  string `mapstructure:"settings_key" yaml:"settings_key"`
	LightName    string `mapstructure:"light_name" yaml:"light_name"`
	DarkName     string `mapstructure:"dark_name" yaml:"dark_name"`
	PrimaryPath  string `mapstructure:"primary_path" yaml:"primary_path"`
	FallbackPath string `mapstructure:"fallback_path" yaml:"fallback_path,omitempty"`
	Delimiter    string `mapstructure:"delimiter" yaml:"delimiter,omitempty"`
}

// SystemConfig controls the OS-level appearance setting.
type SystemConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// LoggingConfig controls diagnostic logging on stderr.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Defaults.
const (
	DefaultModeName  = "dark"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = string(logging.FormatConsole)
)

// configDirFunc is replaced in tests.
var configDirFunc = defaultConfigDir

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(paths.HomeDir(), ".config", "themetoggle")
	}
	return filepath.Join(dir, "themetoggle")
}

// Dir returns the directory searched for config.yaml.
func Dir() string {
	return configDirFunc()
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Apps:        DefaultApps(),
		System:      SystemConfig{Enabled: true},
		DefaultMode: DefaultModeName,
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// DefaultApps returns the editor and terminal entries. Each file is first
// looked up through the WSL mount of the C: drive, then at its native
// Windows location.
func DefaultApps() []AppConfig {
	name := userName()
	return []AppConfig{
		{
			Name:         "vscode",
			Kind:         string(models.AdapterKindJSON),
			SettingsKey:  "workbench.colorTheme",
			LightName:    "Default Light+",
			DarkName:     "Default Dark+",
			PrimaryPath:  "/mnt/c/Users/" + name + "/AppData/Roaming/Code/User/settings.json",
			FallbackPath: `C:\Users\` + name + `\AppData\Roaming\Code\User\settings.json`,
		},
		{
			Name:         "terminal",
			Kind:         string(models.AdapterKindText),
			SettingsKey:  "profiles:defaults:colorScheme",
			LightName:    "OneLight",
			DarkName:     "Dracula",
			PrimaryPath:  "/mnt/c/Users/" + name + "/AppData/Local/Packages/Microsoft.WindowsTerminal_8wekyb3d8bbwe/LocalState/settings.json",
			FallbackPath: `C:\Users\` + name + `\AppData\Local\Packages\Microsoft.WindowsTerminal_8wekyb3d8bbwe\LocalState\settings.json`,
		},
	}
}

func userName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		name := u.Username
		if i := strings.LastIndex(name, `\`); i >= 0 {
			name = name[i+1:]
		}
		return name
	}
	for _, env := range []string{"USER", "USERNAME"} {
		if name := strings.TrimSpace(os.Getenv(env)); name != "" {
			return name
		}
	}
	return "user"
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("system.enabled", def.System.Enabled)
	v.SetDefault("reference", def.Reference)
	v.SetDefault("default_mode", def.DefaultMode)
	v.SetDefault("parallel", def.Parallel)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
}

// Load reads configuration. With an explicit path the file must exist;
// otherwise config.yaml in Dir() is used when present. Apps fall back to
// DefaultApps when none are configured. The returned string is the file
// that was read, or "" when only defaults were used.
func Load(path string) (*Config, string, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, "", fmt.Errorf("read config: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, "", fmt.Errorf("parse config %s: %w", used, err)
	}
	if len(cfg.Apps) == 0 {
		cfg.Apps = DefaultApps()
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, used, nil
}

// Descriptors converts the configured apps into descriptors with paths
// expanded and the delimiter defaulted.
func (c *Config) Descriptors() []models.Descriptor {
	descs := make([]models.Descriptor, 0, len(c.Apps))
	for _, app := range c.Apps {
		delimiter := app.Delimiter
		if delimiter == "" {
			delimiter = models.DefaultDelimiter
		}
		descs = append(descs, models.Descriptor{
			Name:         strings.TrimSpace(app.Name),
			Kind:         models.AdapterKind(strings.ToLower(strings.TrimSpace(app.Kind))),
			SettingsKey:  app.SettingsKey,
			LightName:    app.LightName,
			DarkName:     app.DarkName,
			PrimaryPath:  paths.Expand(app.PrimaryPath),
			FallbackPath: paths.Expand(app.FallbackPath),
			Delimiter:    delimiter,
		})
	}
	return descs
}

// Validate checks every app and the global settings.
func (c *Config) Validate() error {
	if len(c.Apps) == 0 {
		return &models.ValidationError{Field: "apps", Index: -1, Message: "at least one app is required"}
	}

	seen := make(map[string]int, len(c.Apps))
	for i, desc := range c.Descriptors() {
		if err := desc.Validate(i); err != nil {
			return err
		}
		if prev, exists := seen[desc.Name]; exists {
			return &models.ValidationError{Field: "name", Index: i, Message: fmt.Sprintf("duplicate of apps[%d]", prev)}
		}
		seen[desc.Name] = i
	}

	if c.Reference != "" {
		if _, exists := seen[c.Reference]; !exists {
			return fmt.Errorf("%w: %q", ErrUnknownReference, c.Reference)
		}
	}
	if _, err := models.ParseThemeMode(c.DefaultMode); err != nil {
		return &models.ValidationError{Field: "default_mode", Index: -1, Message: err.Error()}
	}
	if c.Workers < 0 {
		return &models.ValidationError{Field: "workers", Index: -1, Message: "must not be negative"}
	}
	switch logging.Format(c.Logging.Format) {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return &models.ValidationError{Field: "logging.format", Index: -1, Message: fmt.Sprintf("unknown format %q", c.Logging.Format)}
	}
	return nil
}

// Mode returns DefaultMode as a ThemeMode.
func (c *Config) Mode() models.ThemeMode {
	mode, err := models.ParseThemeMode(c.DefaultMode)
	if err != nil {
		return models.ThemeModeDark
	}
	return mode
}

// ReferenceDescriptor returns the descriptor used for fallback detection.
func ReferenceDescriptor(descs []models.Descriptor, name string) *models.Descriptor {
	if len(descs) == 0 {
		return nil
	}
	for i := range descs {
		if descs[i].Name == name {
			return &descs[i]
		}
	}
	return &descs[0]
}

// Select filters descs to the given names, keeping configuration order.
// An empty names list returns descs unchanged.
func Select(descs []models.Descriptor, names []string) ([]models.Descriptor, error) {
	if len(names) == 0 {
		return descs, nil
	}
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[strings.TrimSpace(name)] = true
	}

	selected := make([]models.Descriptor, 0, len(names))
	for _, desc := range descs {
		if wanted[desc.Name] {
			selected = append(selected, desc)
			delete(wanted, desc.Name)
		}
	}
	if len(wanted) > 0 {
		missing := make([]string, 0, len(wanted))
		for name := range wanted {
			missing = append(missing, name)
		}
		return nil, fmt.Errorf("unknown app(s): %s", strings.Join(missing, ", "))
	}
	return selected, nil
}
