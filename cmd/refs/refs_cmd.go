package refs

import (
	"fmt"

	"github.com/codegraphhq/codegraph/cmd/cmdutil"
	"github.com/codegraphhq/codegraph/internal/project"
	"github.com/codegraphhq/codegraph/internal/query"
	"github.com/codegraphhq/codegraph/internal/render"
	"github.com/spf13/cobra"
)

type refsOptions struct {
	format string
}

// Cmd represents the refs command.
var Cmd = NewCommand()

// NewCommand returns a new refs command instance.
func NewCommand() *cobra.Command {
	opts := &refsOptions{format: render.Compact.String()}

	cmd := &cobra.Command{
		Use:   "refs <symbol> <path>",
		Short: "List every call site, import, or reference to a symbol",
		Long:  `Resolve symbol against the project's declarations and list every site in the codebase that references it — a call, an import or re-export, an extends/implements clause, or a type annotation.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefs(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", opts.format, "Output format (compact|table|json)")

	return cmd
}

func runRefs(cmd *cobra.Command, symbol, path string, opts *refsOptions) error {
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

	found := query.FindSymbol(p.Graph(), p.Root, symbol, "")
	if len(found.Matches) == 0 {
		return render.References(cmd.OutOrStdout(), format, p.Root, nil, found.Suggestions)
	}

	var refs []query.Reference
	for _, m := range found.Matches {
		refs = append(refs, query.FindReferences(p.Graph(), m.ID)...)
	}
	return render.References(cmd.OutOrStdout(), format, p.Root, refs, nil)
}
