package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/EHLuC/ecotrip/internal/logging"
)

// ToLoggingConfig converts the logging section for the logging package.
// A configured file switches output to that file; otherwise logs go to
// stderr.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// EnsureLogDir creates the directory of the configured log file, if any.
func (c *Config) EnsureLogDir() error {
	if c.Logging.File == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.Logging.File), 0o750); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	return nil
}
