// Package handler provides the HTTP handlers for the relay.
package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v73/github"

	"github.com/classtools/push-relay/internal/config"
	"github.com/classtools/push-relay/internal/core"
)

// WebhookHandler processes incoming webhooks from GitHub.
type WebhookHandler struct {
	cfg        *config.Config
	dispatcher core.JobDispatcher
	logger     *slog.Logger
}

// NewWebhookHandler creates a new webhook handler with the given configuration and dispatcher.
func NewWebhookHandler(cfg *config.Config, dispatcher core.JobDispatcher, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		cfg:        cfg,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle verifies and parses GitHub webhook requests. Only push events enter
// the relay pipeline; ping and every other event kind are acknowledged and
// dropped, which is not an error. The sender only ever observes the outcome
// of this HTTP exchange; persistence and enqueueing happen asynchronously.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := github.ValidatePayload(r, []byte(h.cfg.Secret))
	if err != nil {
		h.logger.Warn("rejected webhook delivery with invalid signature", "error", err)
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	event, err := github.ParseWebHook(github.WebHookType(r), payload)
	if err != nil {
		h.logger.Error("could not parse webhook", "error", err)
		http.Error(w, "Could not parse webhook", http.StatusBadRequest)
		return
	}

	switch e := event.(type) {
	case *github.PushEvent:
		h.handlePush(w, r, e, payload)
	case *github.PingEvent:
		_, _ = fmt.Fprint(w, "pong")
	default:
		h.logger.Debug("ignoring unhandled webhook event type", "type", github.WebHookType(r))
		_, _ = fmt.Fprint(w, "Event type not handled")
	}
}

// handlePush hands a verified push delivery to the dispatcher. A 202 means
// the delivery was accepted, not that it has been persisted or enqueued.
func (h *WebhookHandler) handlePush(w http.ResponseWriter, r *http.Request, event *github.PushEvent, payload []byte) {
	pushEvent, err := core.EventFromPush(github.DeliveryID(r), event, payload)
	if err != nil {
		h.logger.Error("rejecting malformed push delivery", "error", err)
		http.Error(w, "Malformed push event", http.StatusBadRequest)
		return
	}

	if err := h.dispatcher.Dispatch(r.Context(), pushEvent); err != nil {
		h.logger.Error("failed to dispatch push delivery", "error", err, "id", pushEvent.ID)
		http.Error(w, "Relay is overloaded", http.StatusServiceUnavailable)
		return
	}

	h.logger.Info("push delivery accepted",
		"id", pushEvent.ID,
		"repo", pushEvent.RepoFullName,
		"ref", pushEvent.Ref,
	)
	w.WriteHeader(http.StatusAccepted)
	_, _ = fmt.Fprint(w, "Push accepted")
}
