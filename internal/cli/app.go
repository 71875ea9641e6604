package cli

import (
	"context"
	"fmt"

	"baggage-service/internal/domain/repository"
	"baggage-service/internal/infrastructure/config"
	"baggage-service/internal/infrastructure/persistence"
	baggageRepo "baggage-service/internal/interface/repository"
	"baggage-service/internal/usecase"
	"baggage-service/pkg/logger"
	"baggage-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// App bundles the wired components a command works with
type App struct {
	Store    repository.BaggageRepository
	Manager  *usecase.BaggageManager
	Logger   logger.Logger
	Registry *prometheus.Registry

	closeFn func() error
}

// NewApp wires a manager around an existing store
func NewApp(store repository.BaggageRepository, log logger.Logger, reg *prometheus.Registry, closeFn func() error) *App {
	return &App{
		Store:    store,
		Manager:  usecase.NewBaggageManager(store, log),
		Logger:   log,
		Registry: reg,
		closeFn:  closeFn,
	}
}

// Close releases the store session
func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

// AppFactory builds the App for one command invocation
type AppFactory func(ctx context.Context) (*App, error)

// NewPostgresApp loads configuration from the environment, connects to
// PostgreSQL and makes sure the schema exists. Any failure here is fatal
// for the process.
func NewPostgresApp(ctx context.Context) (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	log.Info("Connecting to PostgreSQL", "host", cfg.DBHost, "port", cfg.DBPort, "database", cfg.DBName, "user", cfg.DBUser)

	db, err := persistence.NewPostgresDB(ctx, cfg.DSN(), cfg.DBConnectTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect to %s:%d/%s: %w", cfg.DBHost, cfg.DBPort, cfg.DBName, err)
	}

	reg := prometheus.NewRegistry()
	store := baggageRepo.NewGormBaggageRepository(db, log,
		baggageRepo.WithMetrics(metrics.NewMetrics(cfg.MetricsNamespace, reg)),
	)
	if err := store.InitializeSchema(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return NewApp(store, log, reg, func() error {
		log.Sync()
		return store.Close()
	}), nil
}
