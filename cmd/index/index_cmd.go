package index

import (
	"fmt"

	"github.com/codegraphhq/codegraph/cmd/cmdutil"
	"github.com/codegraphhq/codegraph/internal/project"
	"github.com/spf13/cobra"
)

// Cmd represents the index command.
var Cmd = NewCommand()

// NewCommand returns a new index command instance.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "index <path>",
		Short: "Build a symbol graph for a project and persist it to disk",
		Long:  `Walk a project directory, parse every TypeScript/JavaScript file, and persist the resulting symbol graph to a local cache so later query commands and the watcher can start from it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd, args[0])
		},
	}
}

func runIndex(cmd *cobra.Command, path string) error {
	log := cmdutil.Logger(cmd)

	p, err := project.Open(path, log)
	if err != nil {
		return fmt.Errorf("open project: %w", err)
	}
	defer p.Close()

	report, err := p.Index(cmd.Context())
	if err != nil {
		return fmt.Errorf("index project: %w", err)
	}

	cmdutil.ReportFailures(cmd, report.Diagnostics)
	if report.ResumedSnapshot {
		fmt.Fprintf(cmd.OutOrStdout(), "Resumed from cached snapshot: %d file(s) reparsed, %d unchanged\n", report.FilesParsed, report.FilesFromCache)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d file(s)\n", report.FilesParsed)
	}
	return nil
}
