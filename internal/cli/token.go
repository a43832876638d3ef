package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/registry-dashboard/internal/auth"
	"github.com/spec-kit/registry-dashboard/internal/config"
	"github.com/spec-kit/registry-dashboard/internal/domain"
)

func newTokenCommand() *cobra.Command {
	var (
		identity   domain.Identity
		ttlMinutes int
	)
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development bearer token with AUTH_JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			token, expiresAt, err := auth.NewTokenManager(cfg.Auth.JWTSecret, ttlMinutes).GenerateToken(identity)
			if err != nil {
				return err
			}
			cmd.Printf("%s\n", token)
			cmd.PrintErrf("expires %s\n", expiresAt.Format(time.RFC3339))
			return nil
		},
	}
	tokenCmd.Flags().StringVar(&identity.SubjectID, "sub", "dev-user", "Token subject")
	tokenCmd.Flags().StringVar(&identity.Username, "username", "", "preferred_username claim")
	tokenCmd.Flags().StringVar(&identity.AccountID, "account", "", "account_id claim")
	tokenCmd.Flags().StringSliceVar(&identity.Roles, "role", nil, "Role tag (repeatable)")
	tokenCmd.Flags().IntVar(&ttlMinutes, "ttl", 60, "Lifetime in minutes")
	return tokenCmd
}
