package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/EHLuC/ecotrip/internal/config"
)

// newConfigCmd creates the config command group.
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(newConfigInitCmd(a), newConfigShowCmd(a))
	return cmd
}

// newConfigInitCmd creates the config init command. With --project it
// writes a project-local .ecotrip/config.yaml and .gitignore in the current
// directory; otherwise it writes the global config file.
func newConfigInitCmd(a *app) *cobra.Command {
	var force, project bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Example: `  # Create ~/.ecotrip/config.yaml
  ecotrip config init

  # Create ./.ecotrip/config.yaml for this directory
  ecotrip config init --project

  # Overwrite an existing file
  ecotrip config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if project {
				dir := a.flags.projectDir
				if dir == "" {
					dir = "."
				}
				return initProjectConfig(cmd, config.ResolveProjectDir(cmd.Context(), dir, ""), force)
			}
			path := a.flags.configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			return initConfigFile(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&project, "project", false, "create project-local configuration in the current directory")

	return cmd
}

// initConfigFile writes the default configuration to path.
func initConfigFile(cmd *cobra.Command, path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	if err := config.New().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}

// initProjectConfig writes projectDir/config.yaml and a .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	if err := initConfigFile(cmd, filepath.Join(projectDir, config.ConfigFileName), force); err != nil {
		return err
	}

	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}
	if created {
		cmd.Println("Created .gitignore to keep history and logs out of version control")
	}
	return nil
}

// newConfigShowCmd prints the effective configuration as YAML.
func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := a.cfg.ToYAML()
			if err != nil {
				return err
			}
			if path := a.cfg.Path(); path != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", path)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
