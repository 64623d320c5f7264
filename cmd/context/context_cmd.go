package context

import (
	"fmt"

	"github.com/codegraphhq/codegraph/cmd/cmdutil"
	"github.com/codegraphhq/codegraph/internal/project"
	"github.com/codegraphhq/codegraph/internal/query"
	"github.com/codegraphhq/codegraph/internal/render"
	"github.com/spf13/cobra"
)

type contextOptions struct {
	fileScope string
	format    string
}

// Cmd represents the context command.
var Cmd = NewCommand()

// NewCommand returns a new context command instance.
func NewCommand() *cobra.Command {
	opts := &contextOptions{format: render.Compact.String()}

	cmd := &cobra.Command{
		Use:   "context <symbol> <path>",
		Short: "Show a symbol's full relationship view",
		Long:  `Resolve symbol and report its declarations plus every relationship touching it: references, callers, callees, and type hierarchy (extends/implements, in both directions).`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContext(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.fileScope, "file", "", "Restrict matches to files whose path (relative to the project root) matches this glob")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "Output format (compact|table|json)")

	return cmd
}

func runContext(cmd *cobra.Command, symbol, path string, opts *contextOptions) error {
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

	ctx, suggestions := query.GetContext(p.Graph(), p.Root, symbol, opts.fileScope)
	return render.Context(cmd.OutOrStdout(), format, p.Root, ctx, suggestions)
}
