// Package app initializes and orchestrates the main components of the relay.
// It wires together the configuration, server, and pipeline services.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/classtools/push-relay/internal/config"
	"github.com/classtools/push-relay/internal/core"
	"github.com/classtools/push-relay/internal/semester"
	"github.com/classtools/push-relay/internal/server"
)

// App holds the main application components. Configuration and the long-lived
// client handles behind the dispatcher are established once here and reused
// for the process lifetime.
type App struct {
	ctx        context.Context
	cfg        *config.Config
	server     *server.Server
	dispatcher core.JobDispatcher
	resolver   *semester.Resolver
	logger     *slog.Logger
}

// NewApp assembles the application from its already-constructed parts.
func NewApp(ctx context.Context, cfg *config.Config, srv *server.Server, dispatcher core.JobDispatcher, resolver *semester.Resolver, logger *slog.Logger) *App {
	return &App{
		ctx:        ctx,
		cfg:        cfg,
		server:     srv,
		dispatcher: dispatcher,
		resolver:   resolver,
		logger:     logger,
	}
}

// Start logs the effective configuration and runs the HTTP server.
func (a *App) Start() error {
	current, _ := a.resolver.Resolve(time.Now())
	a.logger.Info("starting push relay",
		"port", a.cfg.Port,
		"webhook_path", a.cfg.WebhookPath,
		"table", a.cfg.Database.Table,
		"queue", a.cfg.Queue.Namespace+":"+a.cfg.Queue.Name,
		"max_workers", a.cfg.MaxWorkers,
		"semesters", len(a.cfg.Semesters),
		"current_semester", current,
	)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly: the HTTP server first so no new
// deliveries arrive, then the dispatcher so in-flight deliveries finish.
func (a *App) Stop() error {
	a.logger.Info("shutting down push relay")

	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
		// Continue to stop other components even if the server failed.
	}

	a.dispatcher.Stop()

	if serverErr != nil {
		return serverErr
	}

	a.logger.Info("push relay stopped successfully")
	return nil
}
