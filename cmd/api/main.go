package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-service/internal/api/http"
	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	memoryrepo "github.com/spec-kit/helpdesk-service/internal/repository/memory"
	postgresrepo "github.com/spec-kit/helpdesk-service/internal/repository/postgres"
	"github.com/spec-kit/helpdesk-service/internal/seed"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/session"
	"github.com/spec-kit/helpdesk-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Backend selection happens exactly once, here. Everything downstream
	// receives the chosen stores and never probes which backend is active.
	var (
		pg         *persistence.Postgres
		userRepo   repository.UserRepository
		ticketRepo repository.TicketRepository
	)
	if cfg.UseMemoryStores() {
		logger.Warn("POSTGRES_DSN not provided; using in-memory stores")
		memUsers := memoryrepo.NewUserRepository()
		memTickets := memoryrepo.NewTicketRepository(memUsers)
		if cfg.Seed.DemoData {
			if err := seed.DemoData(ctx, memUsers, memTickets, cfg.Auth.BcryptCost, logger); err != nil {
				logger.Fatal("failed to seed demo data", zap.Error(err))
			}
		}
		userRepo = memUsers
		ticketRepo = memTickets
	} else {
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		userRepo = postgresrepo.NewUserRepository(pg.PoolHandle())
		ticketRepo = postgresrepo.NewTicketRepository(pg.PoolHandle())
	}

	var (
		rd       *persistence.Redis
		sessions session.Store
	)
	if cfg.UseMemorySessions() {
		logger.Warn("REDIS_ADDR not provided; using in-memory session store")
		sessions = session.NewMemoryStore()
	} else {
		rd = persistence.NewRedis(cfg.Redis, logger)
		defer rd.Close()
		sessions = session.NewRedisStore(rd.Client)
	}

	dispatcher := events.NewInMemoryDispatcher()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		Users:      userRepo,
		Sessions:   sessions,
		Tokens:     tokens,
		Dispatcher: dispatcher,
	})
	ticketService := service.NewTicketService(ticketRepo, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	gate := auth.NewMiddleware(tokens, sessions)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, rd, metrics),
		Auth:         handlers.NewAuthHandler(authService),
		Tickets:      handlers.NewTicketsHandler(ticketService),
		AdminTickets: handlers.NewAdminTicketsHandler(ticketService),
		Gate:         gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
