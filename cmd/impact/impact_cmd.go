package impact

import (
	"fmt"

	"github.com/codegraphhq/codegraph/cmd/cmdutil"
	"github.com/codegraphhq/codegraph/internal/project"
	"github.com/codegraphhq/codegraph/internal/query"
	"github.com/codegraphhq/codegraph/internal/render"
	"github.com/spf13/cobra"
)

type impactOptions struct {
	format string
}

// Cmd represents the impact command.
var Cmd = NewCommand()

// NewCommand returns a new impact command instance.
func NewCommand() *cobra.Command {
	opts := &impactOptions{format: render.Compact.String()}

	cmd := &cobra.Command{
		Use:   "impact <symbol> <path>",
		Short: "List every file transitively affected by changing a symbol",
		Long:  `Resolve symbol to the file(s) that declare it and report every file that transitively imports them, each at the shortest import-chain depth it is reached from.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImpact(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", opts.format, "Output format (compact|table|json)")

	return cmd
}

func runImpact(cmd *cobra.Command, symbol, path string, opts *impactOptions) error {
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

	entries, suggestions := query.ImpactByPattern(p.Graph(), p.Root, symbol, "")
	if entries == nil && suggestions != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "No symbol matched %q. Did you mean: %v?\n", symbol, suggestions)
		return nil
	}
	return render.Impact(cmd.OutOrStdout(), format, p.Root, entries)
}
