package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newVersionCmd prints the version injected via SetVersion.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of mcp-kubectl-guard",
		Long:  `All software has versions. This is mcp-kubectl-guard's.`,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mcp-kubectl-guard version %s\n", rootCmd.Version)
		},
	}
}
