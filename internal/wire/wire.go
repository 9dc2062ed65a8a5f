//go:build wireinject
// +build wireinject

package wire

import (
	"context"
	"log/slog"

	"github.com/google/wire"

	"github.com/classtools/push-relay/internal/app"
	"github.com/classtools/push-relay/internal/config"
	"github.com/classtools/push-relay/internal/core"
	"github.com/classtools/push-relay/internal/db"
	"github.com/classtools/push-relay/internal/jobs"
	"github.com/classtools/push-relay/internal/logger"
	"github.com/classtools/push-relay/internal/queue"
	"github.com/classtools/push-relay/internal/semester"
	"github.com/classtools/push-relay/internal/server"
	"github.com/classtools/push-relay/internal/storage"
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(
		app.NewApp,
		server.NewServer,
		jobs.NewDispatcher,
		jobs.NewRelayJob,
		queue.NewPublisher,
		db.NewDatabase,
		provideConfig,
		provideStore,
		provideResolver,
		provideQueueConfig,
		provideDBConfig,
		provideMaxWorkers,
		provideLoggerConfig,
		provideSlogLogger,
	)
	return &app.App{}, nil, nil
}

func provideConfig() (*config.Config, error) {
	return config.Load("")
}

func provideStore(dbConn *db.DB, cfg *config.Config) core.EventStore {
	return storage.NewStore(dbConn.DB, cfg.Database.Table)
}

func provideResolver(cfg *config.Config) *semester.Resolver {
	return semester.NewResolver(cfg.Semesters)
}

func provideQueueConfig(cfg *config.Config) *config.QueueConfig {
	return &cfg.Queue
}

func provideDBConfig(cfg *config.Config) *config.DBConfig {
	return &cfg.Database
}

func provideMaxWorkers(cfg *config.Config) int {
	return cfg.MaxWorkers
}

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: cfg.LogOutput}
}

func provideSlogLogger(loggerConfig logger.Config) *slog.Logger {
	// NewLogger resolves the configured output itself and falls back to
	// stdout when the log file cannot be opened.
	return logger.NewLogger(loggerConfig, nil)
}
