package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Elpulgo/gitspatial-tui/internal/config"
)

func newAuthCmd(env *Env) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Set or update your GitSpatial API token",
		Long: fmt.Sprintf(`Stores your GitSpatial API token in the system keyring.
The %s environment variable takes precedence over the keyring.`, config.TokenEnvVar),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if remove {
				if err := env.Tokens.DeleteToken(); err != nil {
					if errors.Is(err, config.ErrNotFound) {
						fmt.Fprintln(out, "No API token stored.")
						return nil
					}
					return fmt.Errorf("failed to delete API token: %w", err)
				}
				fmt.Fprintln(out, "API token removed from system keyring.")
				return nil
			}

			_, err := env.Tokens.GetToken()
			update := err == nil
			if update {
				fmt.Fprintln(out, "GitSpatial API Token Update")
				fmt.Fprintln(out, "This will replace your existing API token in the system keyring.")
			} else {
				fmt.Fprintln(out, "GitSpatial API Token Setup")
				fmt.Fprintln(out, "This will store your API token in the system keyring.")
			}
			fmt.Fprintln(out)

			token, err := env.PromptToken(update)
			if err != nil {
				return fmt.Errorf("failed to set API token: %w", err)
			}
			if err := env.Tokens.SetToken(token); err != nil {
				return fmt.Errorf("failed to save API token to keyring: %w", err)
			}

			fmt.Fprintln(out, "\nAPI token saved successfully to system keyring.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&remove, "delete", false, "remove the stored token")
	return cmd
}
