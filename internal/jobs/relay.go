// Package jobs defines the background work run for each verified delivery.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/classtools/push-relay/internal/config"
	"github.com/classtools/push-relay/internal/core"
	"github.com/classtools/push-relay/internal/semester"
)

// RelayJob carries one verified push delivery through annotate, persist, and
// enqueue. Persist happens strictly before enqueue; an enqueue failure never
// rolls back the committed upsert.
type RelayJob struct {
	cfg      *config.Config
	store    core.EventStore
	queue    core.QueuePublisher
	resolver *semester.Resolver
	logger   *slog.Logger
	now      func() time.Time
}

// NewRelayJob creates the relay job shared by all dispatcher workers.
func NewRelayJob(cfg *config.Config, store core.EventStore, queue core.QueuePublisher, resolver *semester.Resolver, logger *slog.Logger) core.Job {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if store == nil {
		panic("event store cannot be nil")
	}
	if queue == nil {
		panic("queue publisher cannot be nil")
	}
	if resolver == nil {
		panic("semester resolver cannot be nil")
	}
	return &RelayJob{
		cfg:      cfg,
		store:    store,
		queue:    queue,
		resolver: resolver,
		logger:   logger,
		now:      time.Now,
	}
}

// Run annotates the event with its receipt time and semester, upserts it, and
// publishes the delivery ID. Both external calls are bounded by configured
// timeouts so a stalled dependency cannot pin a worker indefinitely.
func (j *RelayJob) Run(ctx context.Context, event *core.PushEvent) error {
	now := j.now()
	event.ReceivedAt = now
	if label, ok := j.resolver.Resolve(now); ok {
		event.ReceivedSemester = label
	}

	upsertCtx, cancel := context.WithTimeout(ctx, j.cfg.StoreTimeout)
	err := j.store.Upsert(upsertCtx, event)
	cancel()
	if err != nil {
		// The delivery is lost from the relay's perspective; there is no
		// local retry queue. Operators must remediate externally.
		j.logger.Error("failed to persist push event, delivery lost",
			"id", event.ID,
			"repo", event.RepoFullName,
			"error", err,
		)
		return fmt.Errorf("persist push %s: %w", event.ID, err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, j.cfg.PublishTimeout)
	err = j.queue.Publish(publishCtx, j.cfg.Queue.Name, event.ID)
	cancel()
	if err != nil {
		// The event is durably stored but unannounced. Downstream
		// processing stalls until an operator re-enqueues it (relayctl
		// requeue), so this must be loud in production logs.
		j.logger.Error("push event persisted but enqueue failed, manual requeue required",
			"id", event.ID,
			"repo", event.RepoFullName,
			"queue", j.cfg.Queue.Name,
			"error", err,
		)
		return fmt.Errorf("enqueue push %s: %w", event.ID, err)
	}

	j.logger.Info("push event relayed",
		"id", event.ID,
		"repo", event.RepoFullName,
		"ref", event.Ref,
		"semester", event.ReceivedSemester,
	)
	return nil
}
