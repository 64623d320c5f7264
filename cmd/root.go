package cmd

import (
	"os"

	circularcmd "github.com/codegraphhq/codegraph/cmd/circular"
	contextcmd "github.com/codegraphhq/codegraph/cmd/context"
	findcmd "github.com/codegraphhq/codegraph/cmd/find"
	impactcmd "github.com/codegraphhq/codegraph/cmd/impact"
	indexcmd "github.com/codegraphhq/codegraph/cmd/index"
	mcpcmd "github.com/codegraphhq/codegraph/cmd/mcp"
	refscmd "github.com/codegraphhq/codegraph/cmd/refs"
	statscmd "github.com/codegraphhq/codegraph/cmd/stats"
	watchcmd "github.com/codegraphhq/codegraph/cmd/watch"
	"github.com/spf13/cobra"
)

// version is set via build-time ldflags
var version = "dev"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "codegraph",
	Short: "A local code-intelligence engine for TypeScript and JavaScript projects.",
	Long: `A local code-intelligence engine for TypeScript and JavaScript projects.

Build a symbol graph once with "codegraph index", keep it live with
"codegraph watch", query it directly from the command line, or serve it
to an AI assistant over stdio with "codegraph mcp".`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(indexcmd.Cmd)
	rootCmd.AddCommand(findcmd.Cmd)
	rootCmd.AddCommand(refscmd.Cmd)
	rootCmd.AddCommand(impactcmd.Cmd)
	rootCmd.AddCommand(circularcmd.Cmd)
	rootCmd.AddCommand(statscmd.Cmd)
	rootCmd.AddCommand(contextcmd.Cmd)
	rootCmd.AddCommand(watchcmd.Cmd)
	rootCmd.AddCommand(mcpcmd.Cmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug output")
}
