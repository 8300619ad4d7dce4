package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thallyson03/ceapdesk/internal/config"
	"github.com/thallyson03/ceapdesk/internal/observability"
	"github.com/thallyson03/ceapdesk/internal/persistence"
	"github.com/thallyson03/ceapdesk/internal/repository"
	"github.com/thallyson03/ceapdesk/internal/service"
	"github.com/thallyson03/ceapdesk/internal/sla"
)

var rootCmd = &cobra.Command{
	Use:          "ceapdesk-admin",
	Short:        "Maintenance commands for the ceapdesk SLA calendar",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(holidaysCmd)
	rootCmd.AddCommand(slaCmd)
	rootCmd.AddCommand(usersCmd)
}

// runtimeEnv holds what every command needs once the database is reachable.
type runtimeEnv struct {
	cfg    *config.Config
	logger *zap.Logger
	pg     *persistence.Postgres
	repos  repository.Set
	engine *sla.Engine
}

func (e *runtimeEnv) Close() {
	e.pg.Close()
	_ = e.logger.Sync()
}

func (e *runtimeEnv) holidayService() *service.HolidayService {
	return service.NewHolidayService(service.HolidayDependencies{
		HolidayRepo: e.repos.Holidays,
		Engine:      e.engine,
		Logger:      e.logger,
	})
}

func openEnv(ctx context.Context) (*runtimeEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if cfg.Postgres.DSN == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pg, err := persistence.NewPostgres(connectCtx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	repos := repository.NewPostgresSet(pg.PoolHandle())
	return &runtimeEnv{
		cfg:    cfg,
		logger: logger,
		pg:     pg,
		repos:  repos,
		engine: sla.NewEngine(repos.Holidays, cfg.SLA.Location(), cfg.SLA.MaxWalkDays),
	}, nil
}
