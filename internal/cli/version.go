package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func versionLine(b BuildInfo) string {
	return fmt.Sprintf("gitspatial-tui version %s (commit: %s, built: %s)", b.Version, b.Commit, b.Date)
}

func newVersionCmd(env *Env) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, versionLine(env.Build))
			if !check {
				return nil
			}

			info, err := env.Checker.CheckForUpdate(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to check for updates: %w", err)
			}
			switch {
			case info.Skipped:
				fmt.Fprintln(out, "Development build, not compared with the latest version.")
			case info.UpdateAvailable:
				fmt.Fprintf(out, "A newer version is available: %s\n%s\n", info.LatestVersion, info.ReleaseURL)
			default:
				fmt.Fprintln(out, "You are running the latest version.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")
	return cmd
}
