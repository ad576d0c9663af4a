package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EHLuC/ecotrip/internal/config"
	"github.com/EHLuC/ecotrip/internal/logging"
)

// setupLogging configures logging from the loaded config and the --debug
// flag and attaches the logger and a run ID to the command context.
func (a *app) setupLogging(cmd *cobra.Command) {
	loggingCfg := a.cfg.Logging

	if a.flags.debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = config.LogFormatConsole
		loggingCfg.File = ""
	}

	// Ensure log directory exists after all overrides have been applied.
	if loggingCfg.File != "" {
		if err := a.cfg.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	a.logResult = &result
	logger := logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	runID := logging.GetOrGenerateRunID(ctx)
	ctx = logging.ContextWithRunID(ctx, runID)
	ctx = logger.With().Str("run_id", runID).Logger().WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().
		Ctx(ctx).
		Str("command", cmd.Name()).
		Str("storage", a.cfg.Storage.Backend).
		Str("config", a.cfg.Path()).
		Msg("command started")
}
