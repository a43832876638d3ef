package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spec-kit/registry-dashboard/internal/authz"
	"github.com/spec-kit/registry-dashboard/internal/cache"
	"github.com/spec-kit/registry-dashboard/internal/config"
	"github.com/spec-kit/registry-dashboard/internal/domain"
	"github.com/spec-kit/registry-dashboard/internal/events"
	"github.com/spec-kit/registry-dashboard/internal/observability"
	"github.com/spec-kit/registry-dashboard/internal/persistence"
	"github.com/spec-kit/registry-dashboard/internal/repository"
	"github.com/spec-kit/registry-dashboard/internal/service"
)

func newAuthorizationsCommand() *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "authorizations",
		Short: "Manage role tags stored for accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var roles []string
	setCmd := &cobra.Command{
		Use:   "set <account-id>",
		Short: "Replace the stored roles of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := observability.NewLogger(cfg.Logger)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			ctx := cmd.Context()
			pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
			if err != nil {
				return err
			}
			defer pg.Close()
			if pg.PoolHandle() == nil {
				return fmt.Errorf("POSTGRES_DSN is required")
			}
			redis := persistence.NewRedis(cfg.Redis, logger)
			defer redis.Close()

			sessions := service.NewSessionService(
				repository.NewAuthorizationRepository(pg.PoolHandle()),
				cache.NewRedisRoleCache(redis.Client, cfg.Auth.RoleCacheTTL()),
				nil,
				logger,
			)
			stored, err := sessions.ReplaceAuthorizations(ctx, args[0], roles, events.Actor{SubjectID: "cli"})
			if err != nil {
				return err
			}
			cmd.Println(describeAuthorization(stored))
			return nil
		},
	}
	setCmd.Flags().StringSliceVar(&roles, "role", nil, "Role tag to grant (repeatable, e.g. --role sbc_staff)")

	authCmd.AddCommand(setCmd, newCheckCommand())
	return authCmd
}

func describeAuthorization(a *domain.AccountAuthorization) string {
	category := authz.ResolveCategory(authz.NewRoleSet(a.Roles...))
	return fmt.Sprintf("account %s roles=[%s] category=%s", a.AccountID, strings.Join(a.Roles, ","), category)
}

func newCheckCommand() *cobra.Command {
	var roles []string
	checkCmd := &cobra.Command{
		Use:   "check <action>",
		Short: "Evaluate an action against a set of role tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, ok := authz.ParseAction(args[0])
			if !ok {
				return fmt.Errorf("unknown action %q", args[0])
			}
			decision := authz.NewAuthorizer(nil).Decide(authz.StaticRoles(authz.NewRoleSet(roles...)), action)
			cmd.Printf("category=%s action=%s authorized=%t\n", decision.Category, decision.Action, decision.Allowed)
			return nil
		},
	}
	checkCmd.Flags().StringSliceVar(&roles, "role", nil, "Role tag held by the caller (repeatable)")
	return checkCmd
}
