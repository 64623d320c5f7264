package watch

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/codegraphhq/codegraph/cmd/cmdutil"
	"github.com/codegraphhq/codegraph/internal/project"
	"github.com/spf13/cobra"
)

// Cmd represents the watch command.
var Cmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <path>",
		Short: "Build a symbol graph and keep it live as files change",
		Long:  `Index a project, then watch it for filesystem changes and reindex incrementally until interrupted. Debounces bursts of edits into a single batch before reindexing.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0])
		},
	}

	return cmd
}

func runWatch(cmd *cobra.Command, path string) error {
	log := cmdutil.JSONLogger(cmd)

	p, err := project.Open(path, log)
	if err != nil {
		return fmt.Errorf("open project: %w", err)
	}
	defer p.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	report, err := p.Index(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("index project: %w", err)
	}
	log.Info("initial index complete", "files_parsed", report.FilesParsed, "files_from_cache", report.FilesFromCache)

	log.Info("watching for changes", "root", p.Root)
	if err := p.StartWatching(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch project: %w", err)
	}
	return nil
}
