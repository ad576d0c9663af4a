package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EHLuC/ecotrip/internal/advice"
	"github.com/EHLuC/ecotrip/internal/config"
	"github.com/EHLuC/ecotrip/internal/history"
	"github.com/EHLuC/ecotrip/internal/logging"
	"github.com/EHLuC/ecotrip/internal/session"
	"github.com/EHLuC/ecotrip/internal/storage"
	"github.com/EHLuC/ecotrip/internal/telemetry"
)

// rootFlags holds the persistent flags.
type rootFlags struct {
	debug      bool
	configPath string
	projectDir string
	storage    string
	ephemeral  bool
}

// app carries the per-invocation state shared by subcommands.
type app struct {
	version string
	flags   rootFlags

	cfg       *config.Config
	logResult *logging.LogPathResult
	metrics   *telemetry.Metrics
	store     storage.Store
}

// loadConfig resolves the effective configuration and applies flag
// overrides.
func (a *app) loadConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cwd, _ := os.Getwd()
	cfg, err := config.Load(ctx, config.LoadOptions{
		Path:       a.flags.configPath,
		ProjectDir: config.ResolveProjectDir(ctx, a.flags.projectDir, cwd),
	})
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if a.flags.storage != "" {
		cfg.Storage.Backend = a.flags.storage
		if err = cfg.Validate(); err != nil {
			return err
		}
	}
	if a.flags.ephemeral {
		cfg.Storage.Backend = storage.BackendMemory
	}

	a.cfg = cfg
	a.metrics = telemetry.New(a.version)
	return nil
}

// openStore opens the configured backend once per invocation.
func (a *app) openStore(ctx context.Context) (storage.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := storage.Open(ctx, a.cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", a.cfg.Storage.Backend, err)
	}
	a.store = s
	return s, nil
}

// openHistory returns a history store over the configured backend. When
// load is true the persisted log is read; a corrupted log is reported with
// a hint to reset it.
func (a *app) openHistory(ctx context.Context, load bool) (*history.Store, error) {
	s, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}

	hist := history.New(s, a.cfg.HistoryOptions()...)
	if !load {
		return hist, nil
	}

	entries, err := hist.Load(ctx)
	if errors.Is(err, history.ErrCorrupted) {
		return nil, fmt.Errorf("%w (run 'ecotrip history clear' to reset it)", err)
	}
	if err != nil {
		return nil, err
	}
	a.metrics.ObserveHistorySize(len(entries))
	return hist, nil
}

// newSelector builds an advice selector for the configured locale.
func (a *app) newSelector() *advice.Selector {
	return advice.NewSelector(advice.WithLanguage(a.cfg.Language()))
}

// newController builds a session controller. hist may be nil.
func (a *app) newController(hist *history.Store, opts ...session.ControllerOption) *session.Controller {
	base := []session.ControllerOption{
		session.WithRecorder(a.metrics),
		session.WithInitialState(a.initialState()),
	}
	return session.NewController(a.newSelector(), hist, append(base, opts...)...)
}

// initialState applies display settings to a fresh state.
func (a *app) initialState() session.State {
	s := session.NewState()
	if session.ParseTheme(a.cfg.Display.Theme) == session.ThemeDark {
		s = session.ToggleTheme(s)
	}
	return s
}

// shutdown writes metrics, closes storage and the log file.
func (a *app) shutdown(cmd *cobra.Command) error {
	ctx := cmd.Context()
	var errs []error

	if a.cfg != nil && a.metrics != nil && a.cfg.Telemetry.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(a.cfg.Telemetry.MetricsFile); err != nil {
			logging.FromContext(ctx).Warn().
				Ctx(ctx).
				Str("component", "cli").
				Err(err).
				Str("path", a.cfg.Telemetry.MetricsFile).
				Msg("could not write metrics textfile")
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing storage: %w", err))
		}
		a.store = nil
	}
	if a.logResult != nil {
		if err := a.logResult.Close(); err != nil {
			errs = append(errs, err)
		}
		a.logResult = nil
	}
	return errors.Join(errs...)
}
