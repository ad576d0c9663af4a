package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognised by ApplyEnv.
const (
	EnvStorageBackend   = "ECOTRIP_STORAGE_BACKEND"
	EnvStoragePath      = "ECOTRIP_STORAGE_PATH"
	EnvHistoryKey       = "ECOTRIP_HISTORY_KEY"
	EnvHistoryCapacity  = "ECOTRIP_HISTORY_CAPACITY"
	EnvLocale           = "ECOTRIP_LOCALE"
	EnvDateFormat       = "ECOTRIP_DATE_FORMAT"
	EnvTheme            = "ECOTRIP_THEME"
	EnvCalculationDelay = "ECOTRIP_CALCULATION_DELAY"
	EnvLogLevel         = "ECOTRIP_LOG_LEVEL"
	EnvLogFormat        = "ECOTRIP_LOG_FORMAT"
	EnvLogFile          = "ECOTRIP_LOG_FILE"
	EnvMetricsFile      = "ECOTRIP_METRICS_FILE"
	EnvProjectDir       = "ECOTRIP_PROJECT_DIR"
)

// LookupFunc reports the value of an environment variable.
type LookupFunc func(key string) (string, bool)

// ReadDotEnv reads the given .env files without touching the process
// environment. Missing files are skipped; later files override earlier ones.
func ReadDotEnv(paths ...string) (map[string]string, error) {
	values := make(map[string]string)
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		fileValues, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}
	return values, nil
}

// LayeredLookup returns a LookupFunc that prefers non-empty process
// environment values and falls back to dotenv values.
func LayeredLookup(dotenv map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

// ApplyEnv overrides settings from ECOTRIP_* variables. Values that do not
// parse return an error wrapping ErrInvalidConfig.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	strVars := map[string]*string{
		EnvStorageBackend: &c.Storage.Backend,
		EnvStoragePath:    &c.Storage.Path,
		EnvHistoryKey:     &c.History.Key,
		EnvLocale:         &c.Display.Locale,
		EnvDateFormat:     &c.Display.DateFormat,
		EnvTheme:          &c.Display.Theme,
		EnvLogLevel:       &c.Logging.Level,
		EnvLogFormat:      &c.Logging.Format,
		EnvLogFile:        &c.Logging.File,
		EnvMetricsFile:    &c.Telemetry.MetricsFile,
	}
	for name, field := range strVars {
		if v, ok := lookup(name); ok && v != "" {
			*field = v
		}
	}

	if v, ok := lookup(EnvHistoryCapacity); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvHistoryCapacity, v)
		}
		c.History.Capacity = n
	}

	if v, ok := lookup(EnvCalculationDelay); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, EnvCalculationDelay, v)
		}
		c.Calculation.Delay = d
	}

	return nil
}
