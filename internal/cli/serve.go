package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/registry-dashboard/internal/api/http"
	"github.com/spec-kit/registry-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/registry-dashboard/internal/auth"
	"github.com/spec-kit/registry-dashboard/internal/authz"
	"github.com/spec-kit/registry-dashboard/internal/cache"
	"github.com/spec-kit/registry-dashboard/internal/config"
	"github.com/spec-kit/registry-dashboard/internal/events"
	"github.com/spec-kit/registry-dashboard/internal/legalapi"
	"github.com/spec-kit/registry-dashboard/internal/observability"
	"github.com/spec-kit/registry-dashboard/internal/persistence"
	"github.com/spec-kit/registry-dashboard/internal/repository"
	"github.com/spec-kit/registry-dashboard/internal/service"
	"github.com/spec-kit/registry-dashboard/internal/worker"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, persistence.MigrateUp, logger); err != nil {
			logger.Error("failed to run migrations", zap.Error(err))
			return err
		}
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Error("failed to connect postgres", zap.Error(err))
		return err
	}
	defer pg.Close()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	authorizer := authz.NewAuthorizer(authz.DefaultTable())

	legal, err := legalapi.New(legalapi.Config{
		BaseURL: cfg.LegalAPI.BaseURL,
		APIKey:  cfg.LegalAPI.APIKey,
		Timeout: cfg.LegalAPI.Timeout(),
		Logger:  observability.Logr(logger, "legalapi"),
		Metrics: metrics,
	})
	if err != nil {
		return err
	}

	pool := pg.PoolHandle()
	if pool == nil {
		return fmt.Errorf("POSTGRES_DSN is required to serve")
	}
	affRepo := repository.NewAffiliationRepository(pool)
	authRepo := repository.NewAuthorizationRepository(pool)

	roleCache := cache.NewRedisRoleCache(redis.Client, cfg.Auth.RoleCacheTTL())
	sessions := service.NewSessionService(authRepo, roleCache, dispatcher, logger)
	affiliations := service.NewAffiliationService(affRepo, legal, authorizer, dispatcher, logger)
	businesses := service.NewBusinessService(legal, authorizer, dispatcher, logger)
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, 0)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ErrorHandler:          httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Authorizations: handlers.NewAuthorizationsHandler(authorizer, metrics),
		Businesses:     handlers.NewBusinessesHandler(businesses),
		Affiliations:   handlers.NewAffiliationsHandler(affiliations),
		Staff:          handlers.NewStaffHandler(affiliations, metrics),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, sessions),
		Authorizer:     authorizer,
		Decisions:      metrics,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		errCh <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-errCh:
		logger.Error("fiber listen", zap.Error(err))
		return err
	case <-waitForShutdown(ctx, logger):
	}

	return app.Shutdown()
}

func waitForShutdown(ctx context.Context, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case sig := <-sigCh:
			logger.Info("shutting down", zap.String("signal", sig.String()))
		case <-ctx.Done():
			logger.Info("shutting down", zap.Error(ctx.Err()))
		}
	}()
	return done
}
