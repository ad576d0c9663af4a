package config

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// Path is the global config file. Empty selects DefaultPath.
	Path string

	// ProjectDir is a project .ecotrip directory whose config.yaml is
	// merged over the global file. Empty disables the overlay.
	ProjectDir string

	// DotEnvFiles are read for ECOTRIP_* values. Nil reads ".env" in the
	// working directory.
	DotEnvFiles []string

	// Lookup overrides environment lookup. Nil uses the process
	// environment layered over the dotenv values.
	Lookup LookupFunc
}

// Load builds the effective configuration: defaults, then the global file,
// then the project overlay, then environment variables. The result is
// validated.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg := New()

	path := opts.Path
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := cfg.readFile(path); err != nil {
		// A missing global file means defaults; an explicit path must exist.
		if !errors.Is(err, os.ErrNotExist) || opts.Path != "" {
			return nil, err
		}
	}

	cfg.MergeProject(ctx, opts.ProjectDir)

	lookup := opts.Lookup
	if lookup == nil {
		files := opts.DotEnvFiles
		if files == nil {
			files = []string{".env"}
		}
		dotenv, err := ReadDotEnv(files...)
		if err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
		lookup = LayeredLookup(dotenv)
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
