package cmd

import (
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// githubRepoSlug is the GitHub repository releases are fetched from.
const githubRepoSlug = "giantswarm/mcp-kubectl-guard"

// newSelfUpdateCmd creates the Cobra command for updating the binary to the
// latest GitHub release.
func newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-update",
		Short: "Update mcp-kubectl-guard to the latest version",
		Long: `Update mcp-kubectl-guard to the latest version released on GitHub.

The command checks the GitHub releases of ` + githubRepoSlug + ` and, if a
newer version is available, replaces the current binary in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			version := rootCmd.Version
			if version == "" || version == "dev" {
				return fmt.Errorf("cannot self-update a development version, please download a release from https://github.com/%s/releases", githubRepoSlug)
			}

			ctx := cmd.Context()

			latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(githubRepoSlug))
			if err != nil {
				return fmt.Errorf("error occurred while detecting version: %w", err)
			}
			if !found {
				return fmt.Errorf("latest version for %s could not be found from github repository", githubRepoSlug)
			}

			if latest.LessOrEqual(version) {
				fmt.Fprintf(cmd.OutOrStdout(), "Current version (%s) is the latest\n", version)
				return nil
			}

			exe, err := selfupdate.ExecutablePath()
			if err != nil {
				return fmt.Errorf("could not locate executable path: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updating to version %s...\n", latest.Version())
			if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
				return fmt.Errorf("error occurred while updating binary: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully updated to version %s\n", latest.Version())
			return nil
		},
	}
}
