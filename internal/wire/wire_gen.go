// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/classtools/push-relay/internal/app"
	"github.com/classtools/push-relay/internal/config"
	"github.com/classtools/push-relay/internal/db"
	"github.com/classtools/push-relay/internal/jobs"
	"github.com/classtools/push-relay/internal/logger"
	"github.com/classtools/push-relay/internal/queue"
	"github.com/classtools/push-relay/internal/semester"
	"github.com/classtools/push-relay/internal/server"
	"github.com/classtools/push-relay/internal/storage"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger. NewLogger resolves the configured output itself and
	// falls back to stdout when the log file cannot be opened.
	loggerConfig := logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: cfg.LogOutput}
	slogLogger := logger.NewLogger(loggerConfig, nil)

	// Database
	dbConn, dbCleanup, err := db.NewDatabase(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Event store
	store := storage.NewStore(dbConn.DB, cfg.Database.Table)

	// Queue publisher
	publisher, queueCleanup, err := queue.NewPublisher(&cfg.Queue)
	if err != nil {
		dbCleanup()
		return nil, nil, fmt.Errorf("failed to connect to queue: %w", err)
	}

	// Semester resolver
	resolver := semester.NewResolver(cfg.Semesters)

	// Relay job
	relayJob := jobs.NewRelayJob(cfg, store, publisher, resolver, slogLogger)

	// Dispatcher
	dispatcher := jobs.NewDispatcher(relayJob, cfg.MaxWorkers, slogLogger)

	// Server
	srv := server.NewServer(ctx, cfg, dispatcher, slogLogger)

	// App
	application := app.NewApp(ctx, cfg, srv, dispatcher, resolver, slogLogger)

	cleanup := func() {
		queueCleanup()
		dbCleanup()
	}

	return application, cleanup, nil
}
