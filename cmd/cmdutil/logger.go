// Package cmdutil holds the small pieces of setup shared by every
// subcommand: logger construction and printing of indexing diagnostics.
package cmdutil

import (
	"log/slog"
	"os"

	"github.com/codegraphhq/codegraph/internal/diag"
	"github.com/spf13/cobra"
)

// Logger builds the slog.Logger every command uses, honoring the
// top-level --verbose flag. One-shot CLI commands log as text; long-
// running commands (watch, mcp) override this with a JSON handler via
// JSONLogger.
func Logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// JSONLogger is Logger's counterpart for the watcher and the assistant-
// tool server: both run indefinitely with structured events worth
// piping into a log aggregator rather than reading as a terminal
// transcript.
func JSONLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// ReportFailures prints one diagnostic line per indexing failure to
// stderr. Per-file parse/resolution failures are reported but don't
// themselves fail the command.
func ReportFailures(cmd *cobra.Command, diagnostics []diag.Diagnostic) {
	for _, d := range diagnostics {
		if d.File != "" {
			cmd.PrintErrf("warning: %s: %s: %s\n", d.Kind, d.File, d.Message)
		} else {
			cmd.PrintErrf("warning: %s: %s\n", d.Kind, d.Message)
		}
	}
}
