package mcp

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/codegraphhq/codegraph/cmd/cmdutil"
	"github.com/codegraphhq/codegraph/internal/mcpserver"
	"github.com/spf13/cobra"
)

// Cmd represents the mcp command.
var Cmd = NewCommand()

// NewCommand returns a new mcp command instance.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp [path]",
		Short: "Serve the symbol graph to an AI assistant over stdio",
		Long:  `Start an assistant-tool server speaking line-framed JSON-RPC over stdin/stdout. path sets the default project root; tool calls may override it with their own project_path argument.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runMCP(cmd, root)
		},
	}

	return cmd
}

func runMCP(cmd *cobra.Command, root string) error {
	log := cmdutil.JSONLogger(cmd)

	s := mcpserver.New(root, log)
	defer s.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := s.Start(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("assistant-tool server: %w", err)
	}
	return nil
}
