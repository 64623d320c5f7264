package stats

import (
	"fmt"

	"github.com/codegraphhq/codegraph/cmd/cmdutil"
	"github.com/codegraphhq/codegraph/internal/project"
	"github.com/codegraphhq/codegraph/internal/query"
	"github.com/codegraphhq/codegraph/internal/render"
	"github.com/spf13/cobra"
)

type statsOptions struct {
	format string
}

// Cmd represents the stats command.
var Cmd = NewCommand()

// NewCommand returns a new stats command instance.
func NewCommand() *cobra.Command {
	opts := &statsOptions{format: render.Compact.String()}

	cmd := &cobra.Command{
		Use:   "stats <path>",
		Short: "Report project-wide totals and a per-language breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", opts.format, "Output format (compact|table|json)")

	return cmd
}

func runStats(cmd *cobra.Command, path string, opts *statsOptions) error {
	format, ok := render.ParseFormat(opts.format)
	if !ok {
		return fmt.Errorf("unknown format: %s", opts.format)
	}

	log := cmdutil.Logger(cmd)
	p, err := project.Open(path, log)
	if err != nil {
		return fmt.Errorf("open project: %w", err)
	}
	defer p.Close()

	if _, err := p.Index(cmd.Context()); err != nil {
		return fmt.Errorf("index project: %w", err)
	}

	return render.Stats(cmd.OutOrStdout(), format, query.GetStats(p.Graph()))
}
