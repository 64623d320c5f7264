package circular

import (
	"fmt"

	"github.com/codegraphhq/codegraph/cmd/cmdutil"
	"github.com/codegraphhq/codegraph/internal/project"
	"github.com/codegraphhq/codegraph/internal/query"
	"github.com/codegraphhq/codegraph/internal/render"
	"github.com/spf13/cobra"
)

type circularOptions struct {
	format string
}

// Cmd represents the circular command.
var Cmd = NewCommand()

// NewCommand returns a new circular command instance.
func NewCommand() *cobra.Command {
	opts := &circularOptions{format: render.Compact.String()}

	cmd := &cobra.Command{
		Use:   "circular <path>",
		Short: "List circular import chains among the project's files",
		Long:  `Build a throwaway projection of the file import graph and report every strongly-connected component of size greater than one — a genuine import cycle.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCircular(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", opts.format, "Output format (compact|table|json)")

	return cmd
}

func runCircular(cmd *cobra.Command, path string, opts *circularOptions) error {
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

	cycles, err := query.DetectCircular(p.Graph())
	if err != nil {
		return fmt.Errorf("detect circular imports: %w", err)
	}
	return render.Circular(cmd.OutOrStdout(), format, p.Root, cycles)
}
