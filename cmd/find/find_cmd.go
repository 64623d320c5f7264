package find

import (
	"fmt"

	"github.com/codegraphhq/codegraph/cmd/cmdutil"
	"github.com/codegraphhq/codegraph/internal/graphdb"
	"github.com/codegraphhq/codegraph/internal/project"
	"github.com/codegraphhq/codegraph/internal/query"
	"github.com/codegraphhq/codegraph/internal/render"
	"github.com/spf13/cobra"
)

type findOptions struct {
	kind            string
	fileScope       string
	caseInsensitive bool
	format          string
}

// Cmd represents the find command.
var Cmd = NewCommand()

// NewCommand returns a new find command instance.
func NewCommand() *cobra.Command {
	opts := &findOptions{format: render.Compact.String()}

	cmd := &cobra.Command{
		Use:   "find <pattern> <path>",
		Short: "Find every declaration of a symbol matching a name or regex",
		Long:  `Find every declaration of a symbol whose name matches pattern — a literal name or a regular expression, matched against the whole name.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.kind, "kind", "", "Restrict matches to one declaration kind (function, class, interface, type_alias, enum, variable, component, method, property)")
	cmd.Flags().StringVar(&opts.fileScope, "file", "", "Restrict matches to files whose path (relative to the project root) matches this glob")
	cmd.Flags().BoolVarP(&opts.caseInsensitive, "ignore-case", "i", false, "Match the pattern case-insensitively")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "Output format (compact|table|json)")

	return cmd
}

func runFind(cmd *cobra.Command, pattern, path string, opts *findOptions) error {
	format, ok := render.ParseFormat(opts.format)
	if !ok {
		return fmt.Errorf("unknown format: %s", opts.format)
	}

	var findOpts []query.FindOption
	if opts.kind != "" {
		kind, ok := graphdb.ParseSymbolKind(opts.kind)
		if !ok {
			return fmt.Errorf("unknown kind: %s", opts.kind)
		}
		findOpts = append(findOpts, query.WithKind(kind))
	}
	if opts.caseInsensitive {
		findOpts = append(findOpts, query.WithCaseInsensitive())
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

	result := query.FindSymbol(p.Graph(), p.Root, pattern, opts.fileScope, findOpts...)
	return render.Find(cmd.OutOrStdout(), format, p.Root, result)
}
