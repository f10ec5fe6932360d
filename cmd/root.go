package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mcp-kubectl-guard",
	Short: "MCP server for interpreting kubectl commands",
	Long: `mcp-kubectl-guard is a Model Context Protocol (MCP) server that parses
kubectl command strings into a structured interpretation (verb, resource type,
resource names, namespace, flags, files) and evaluates them against a guard
policy. Commands are never executed.

When run without subcommands, it starts the MCP server (equivalent to 'mcp-kubectl-guard serve').`,
	// Handled errors are reported once; repeating the usage text would bury them.
	SilenceUsage: true,
}

// SetVersion injects the build-time version, called from main before Execute.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the CLI. A bare invocation starts the server.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mcp-kubectl-guard version %s\n" .Version}}`)

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		// Cobra already printed the error.
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newServeCmd())
}
