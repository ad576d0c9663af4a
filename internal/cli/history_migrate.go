package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/EHLuC/ecotrip/internal/migration"
	"github.com/EHLuC/ecotrip/internal/storage"
)

func newHistoryMigrateCmd(a *app) *cobra.Command {
	var to, toPath string
	var force bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy the history to another storage backend",
		Long: `Copy the history from the configured storage backend to another one. The
source is left untouched; switch backends afterwards with --storage or the
storage.backend setting.`,
		Example: `  # Move from JSON files to SQLite
  ecotrip history migrate --to sqlite

  # Copy into a specific database, replacing its history
  ecotrip history migrate --to sqlite --to-path ./trips.db --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeHistoryMigrate(cmd, a, to, toPath, force)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "destination backend: file, sqlite (required)")
	cmd.Flags().StringVar(&toPath, "to-path", "", "destination directory (file) or database (sqlite)")
	cmd.Flags().BoolVar(&force, "force", false, "replace history already present in the destination")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func executeHistoryMigrate(cmd *cobra.Command, a *app, to, toPath string, force bool) error {
	ctx := cmd.Context()

	to = strings.ToLower(to)
	if to != storage.BackendFile && to != storage.BackendSQLite {
		return fmt.Errorf("unsupported destination backend %q: use file or sqlite", to)
	}
	src := a.cfg.StorageOptions()
	if strings.EqualFold(src.Backend, to) && src.Path == toPath {
		return errors.New("source and destination are the same; pass --to-path or a different --to")
	}

	from, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	dst, err := storage.Open(ctx, storage.Options{Backend: to, Path: toPath})
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", to, err)
	}
	defer dst.Close()

	key := a.cfg.History.Key
	res, err := migration.Copy(ctx, from, dst, key, force)
	if errors.Is(err, migration.ErrDestinationExists) && !force && isTerminal(os.Stdin) {
		if migration.Confirm(cmd.OutOrStdout(), cmd.InOrStdin(), "The destination already has history. Replace it?") {
			res, err = migration.Copy(ctx, from, dst, key, true)
		}
	}
	if err != nil {
		return fmt.Errorf("migrating history: %w", err)
	}

	out := cmd.OutOrStdout()
	if !res.Copied {
		fmt.Fprintln(out, "No history to migrate.")
		return nil
	}
	fmt.Fprintf(out, "Copied %d calculations to %s storage.\n", res.Entries, to)
	return nil
}
