package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/EHLuC/ecotrip/internal/logging"
)

// ProjectDirName is the directory holding project-local configuration.
const ProjectDirName = ".ecotrip"

// ResolveProjectDir determines the project-local .ecotrip directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. ECOTRIP_PROJECT_DIR env var
//  3. walking up from startDir for a .ecotrip directory holding config.yaml
//
// The walk stops below the user's home directory, whose .ecotrip is the
// global data directory rather than a project. Returns "" when nothing is
// found. Does not create the directory.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	if startDir == "" {
		return ""
	}

	home, _ := os.UserHomeDir()
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		if dir == home {
			return ""
		}
		candidate := filepath.Join(dir, ProjectDirName)
		if _, statErr := os.Stat(filepath.Join(candidate, ConfigFileName)); statErr == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// MergeProject shallow-merges projectDir/config.yaml onto c. A missing file
// is not an error. A malformed overlay is logged and ignored so a broken
// project file never blocks the global configuration.
func (c *Config) MergeProject(ctx context.Context, projectDir string) {
	if projectDir == "" {
		return
	}

	overlayPath := filepath.Join(projectDir, ConfigFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return
	}

	merged := *c
	if err := ShallowMergeYAML(&merged, overlayPath); err != nil {
		logging.FromContext(ctx).Warn().
			Ctx(ctx).
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global settings")
		return
	}
	*c = merged
}

// toAbsProjectDir converts dir to an absolute path and appends ".ecotrip"
// unless it already ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == ProjectDirName {
		return abs
	}

	return filepath.Join(abs, ProjectDirName)
}
