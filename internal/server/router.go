package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/classtools/push-relay/internal/config"
	"github.com/classtools/push-relay/internal/core"
	"github.com/classtools/push-relay/internal/server/handler"
)

// NewRouter creates and configures a new HTTP router with middleware and the
// webhook route. Requests to any other path get chi's 404, which is what the
// webhook sender sees for an unknown path.
func NewRouter(cfg *config.Config, dispatcher core.JobDispatcher, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Configure middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	webhookHandler := handler.NewWebhookHandler(cfg, dispatcher, logger)
	r.Post(cfg.WebhookPath, webhookHandler.Handle)

	return r
}
