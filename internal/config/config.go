// Package config loads EcoTrip settings from ~/.ecotrip/config.yaml, an
// optional project overlay, .env files and ECOTRIP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/EHLuC/ecotrip/internal/history"
	"github.com/EHLuC/ecotrip/internal/logging"
	"github.com/EHLuC/ecotrip/internal/storage"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidConfig indicates a setting failed validation.
const ErrInvalidConfig = constError("invalid configuration")

// ConfigFileName is the name of the config file inside the data directory.
const ConfigFileName = "config.yaml"

// Display themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Log formats.
const (
	LogFormatConsole = logging.FormatConsole
	LogFormatJSON    = logging.FormatJSON
)

// DefaultCalculationDelay is the pause before an interactive result appears.
const DefaultCalculationDelay = 800 * time.Millisecond

// Config is the full EcoTrip configuration.
type Config struct {
	Storage     StorageConfig     `yaml:"storage"`
	History     HistoryConfig     `yaml:"history"`
	Display     DisplayConfig     `yaml:"display"`
	Calculation CalculationConfig `yaml:"calculation"`
	Logging     LoggingConfig     `yaml:"logging"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// path is the file the config was read from, if any.
	path string
}

// StorageConfig selects the history backend.
type StorageConfig struct {
	// Backend is file, sqlite or memory.
	Backend string `yaml:"backend"`
	// Path is the directory (file) or database file (sqlite). Empty means
	// the default under the data directory.
	Path string `yaml:"path,omitempty"`
}

// HistoryConfig controls the history log.
type HistoryConfig struct {
	Key      string `yaml:"key"`
	Capacity int    `yaml:"capacity"`
}

// DisplayConfig controls presentation.
type DisplayConfig struct {
	// Locale is a BCP 47 tag such as "en" or "pt-BR".
	Locale     string `yaml:"locale"`
	DateFormat string `yaml:"date_format"`
	Theme      string `yaml:"theme"`
}

// CalculationConfig controls the interactive calculation.
type CalculationConfig struct {
	Delay time.Duration `yaml:"delay"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// TelemetryConfig controls metrics export.
type TelemetryConfig struct {
	// MetricsFile, when set, receives the metrics in Prometheus text format
	// after each command.
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Storage: StorageConfig{Backend: storage.BackendFile},
		History: HistoryConfig{
			Key:      history.DefaultKey,
			Capacity: history.DefaultCapacity,
		},
		Display: DisplayConfig{
			Locale:     "en",
			DateFormat: history.DefaultDateLayout,
			Theme:      ThemeLight,
		},
		Calculation: CalculationConfig{Delay: DefaultCalculationDelay},
		Logging: LoggingConfig{
			Level:  "info",
			Format: LogFormatConsole,
		},
	}
}

// DefaultPath returns the global config file path.
func DefaultPath() (string, error) {
	dir, err := storage.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Path returns the file this config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// readFile decodes the YAML file at path onto c. Fields absent from the file
// keep their current values.
func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	c.path = path
	return nil
}

// Save writes c to path as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := c.ToYAML()
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	c.path = path
	return nil
}

// ToYAML renders the effective configuration.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// Validate checks every section and returns all problems joined, each
// wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	backends := []string{storage.BackendFile, storage.BackendSQLite, storage.BackendMemory}
	if !slices.Contains(backends, c.Storage.Backend) {
		invalid("storage.backend must be one of %v, got %q", backends, c.Storage.Backend)
	}
	if c.History.Key == "" {
		invalid("history.key must not be empty")
	}
	if c.History.Capacity < 1 {
		invalid("history.capacity must be at least 1, got %d", c.History.Capacity)
	}
	if _, err := language.Parse(c.Display.Locale); err != nil {
		invalid("display.locale %q: %v", c.Display.Locale, err)
	}
	if c.Display.DateFormat == "" {
		invalid("display.date_format must not be empty")
	}
	if c.Display.Theme != ThemeLight && c.Display.Theme != ThemeDark {
		invalid("display.theme must be %q or %q, got %q", ThemeLight, ThemeDark, c.Display.Theme)
	}
	if c.Calculation.Delay < 0 {
		invalid("calculation.delay must not be negative, got %s", c.Calculation.Delay)
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		invalid("logging.level %q: %v", c.Logging.Level, err)
	}
	if c.Logging.Format != LogFormatConsole && c.Logging.Format != LogFormatJSON {
		invalid("logging.format must be %q or %q, got %q", LogFormatConsole, LogFormatJSON, c.Logging.Format)
	}

	return errors.Join(errs...)
}

// Language returns the display locale, falling back to English.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Display.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// StorageOptions converts the storage section for storage.Open.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{Backend: c.Storage.Backend, Path: c.Storage.Path}
}

// HistoryOptions converts the history and display sections for history.New.
func (c *Config) HistoryOptions() []history.Option {
	return []history.Option{
		history.WithKey(c.History.Key),
		history.WithCapacity(c.History.Capacity),
		history.WithDateLayout(c.Display.DateFormat),
	}
}
