package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/eventcarbon/internal/config"
	"github.com/rshade/eventcarbon/internal/logging"
)

// setupLogging builds the invocation logger from the effective config and
// --debug, then stores it with a fresh trace ID on the command context so
// store and engine code can log through logging.FromContext.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	section := config.GetLoggingConfig()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		section = section.Debug()
	}

	result := logging.NewLoggerWithPath(section.ToLoggingConfig())
	switch {
	case result.UsingFile:
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	case result.FallbackUsed:
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	logger = logging.ComponentLogger(result.Logger, "cli")
	ctx := logging.ContextWithTraceID(cmd.Context(), logging.GetOrGenerateTraceID(cmd.Context()))
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).
		Str("command", cmd.CommandPath()).
		Str("project_dir", config.GetResolvedProjectDir()).
		Str("data_dir", config.GetGlobalConfig().Store.DataDir).
		Msg("command started")

	return result
}

// cleanupLogging closes the log file handle, if one was opened.
func cleanupLogging(logResult *logging.LogPathResult) error {
	if logResult == nil {
		return nil
	}
	return logResult.Close()
}
