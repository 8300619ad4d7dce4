package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/thallyson03/ceapdesk/internal/api/http"
	"github.com/thallyson03/ceapdesk/internal/api/http/handlers"
	"github.com/thallyson03/ceapdesk/internal/auth"
	"github.com/thallyson03/ceapdesk/internal/config"
	"github.com/thallyson03/ceapdesk/internal/events"
	"github.com/thallyson03/ceapdesk/internal/kafka"
	"github.com/thallyson03/ceapdesk/internal/observability"
	"github.com/thallyson03/ceapdesk/internal/persistence"
	"github.com/thallyson03/ceapdesk/internal/repository"
	"github.com/thallyson03/ceapdesk/internal/repository/memory"
	"github.com/thallyson03/ceapdesk/internal/service"
	"github.com/thallyson03/ceapdesk/internal/sla"
	"github.com/thallyson03/ceapdesk/internal/worker"
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

	shutdownTracing := observability.SetupTracing(ctx, cfg.App.Name, cfg.Tracing, logger)
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	var repos repository.Set
	if pool := pg.PoolHandle(); pool != nil {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		repos = repository.NewPostgresSet(pool)
	} else {
		repos = memory.NewSet()
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	holidayRepo := repository.NewCachedHolidayRepository(
		repos.Holidays,
		redis.Handle(),
		cfg.SLA.HolidayCacheTTL(),
		logger,
	)
	engine := sla.NewEngine(holidayRepo, cfg.SLA.Location(), cfg.SLA.MaxWalkDays)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	defer producer.Close() //nolint:errcheck

	notificationService := service.NewNotificationService(dispatcher, producer, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(cfg.Auth, repos.Users, logger)
	if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		logger.Fatal("failed to bootstrap admin", zap.Error(err))
	}
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), repos.Users)

	holidayService := service.NewHolidayService(service.HolidayDependencies{
		HolidayRepo: holidayRepo,
		Engine:      engine,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
	})
	slaService := service.NewSLAService(engine, repos.Policies, cfg.SLA.DefaultBusinessDays, logger)
	policyService := service.NewSLAPolicyService(repos.Policies, repos.Sectors, logger)
	sectorService := service.NewSectorService(repos.Sectors)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: repos.Tickets,
		SectorRepo: repos.Sectors,
		SLA:        slaService,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	if cfg.SLA.AutoSeedHolidays {
		go worker.NewHolidaySeeder(holidayService, worker.DefaultSeedInterval, logger).Run(ctx)
	}

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Holidays:       handlers.NewHolidaysHandler(holidayService),
		SLA:            handlers.NewSLAHandler(slaService, policyService),
		Sectors:        handlers.NewSectorsHandler(sectorService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
