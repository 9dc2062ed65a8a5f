package server

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/classtools/push-relay/internal/config"
	"github.com/classtools/push-relay/internal/core"
)

type noopDispatcher struct {
	dispatched int
}

func (d *noopDispatcher) Dispatch(_ context.Context, _ *core.PushEvent) error {
	d.dispatched++
	return nil
}

func (d *noopDispatcher) Stop() {}

func TestRouterUnknownPathIs404(t *testing.T) {
	cfg := &config.Config{Secret: "s3cret", WebhookPath: "/"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := &noopDispatcher{}
	router := NewRouter(cfg, dispatcher, logger)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/not-the-webhook", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, dispatcher.dispatched)
}

func TestRouterConfiguredWebhookPath(t *testing.T) {
	cfg := &config.Config{Secret: "s3cret", WebhookPath: "/hooks/github"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := &noopDispatcher{}
	router := NewRouter(cfg, dispatcher, logger)

	body := []byte(`{
		"ref": "refs/heads/main",
		"repository": {"full_name": "cs125/example-repo"},
		"pusher": {"name": "octocat"}
	}`)
	mac := hmac.New(sha256.New, []byte(cfg.Secret))
	mac.Write(body)

	r := httptest.NewRequest(http.MethodPost, "/hooks/github", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("X-GitHub-Event", "push")
	r.Header.Set("X-GitHub-Delivery", "delivery-1")
	r.Header.Set("X-Hub-Signature-256", "sha256="+hex.EncodeToString(mac.Sum(nil)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, 1, dispatcher.dispatched)
}

func TestRouterHealth(t *testing.T) {
	cfg := &config.Config{Secret: "s3cret", WebhookPath: "/"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(cfg, &noopDispatcher{}, logger)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
