package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/classtools/push-relay/internal/core"
)

// dispatcher implements core.JobDispatcher and manages a pool of worker
// goroutines that run the relay pipeline for verified deliveries. The handler
// stays free to accept new connections while upserts and publishes are in
// flight.
type dispatcher struct {
	relayJob   core.Job             // Job implementation executed by each worker.
	jobQueue   chan *core.PushEvent // Queue of verified deliveries.
	maxWorkers int                  // Number of concurrent workers.
	wg         sync.WaitGroup       // Tracks active workers for graceful shutdown.
	logger     *slog.Logger         // Logger instance for the dispatcher.
}

// NewDispatcher initializes a dispatcher with a worker pool.
// If maxWorkers is 0 or negative, it defaults to 1.
func NewDispatcher(relayJob core.Job, maxWorkers int, logger *slog.Logger) core.JobDispatcher {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	d := &dispatcher{
		relayJob:   relayJob,
		maxWorkers: maxWorkers,
		jobQueue:   make(chan *core.PushEvent, 100),
		logger:     logger,
	}
	d.startWorkers()
	return d
}

// startWorkers launches maxWorkers goroutines to process jobs from the queue.
func (d *dispatcher) startWorkers() {
	for i := range d.maxWorkers {
		d.wg.Add(1)
		go d.startWorker(i)
	}
}

// startWorker processes deliveries from the queue until it's closed.
func (d *dispatcher) startWorker(workerID int) {
	defer d.wg.Done()
	d.logger.Info("starting relay worker", "id", workerID)

	for event := range d.jobQueue {
		d.processEvent(workerID, event)
	}

	d.logger.Info("shutting down relay worker", "id", workerID)
}

// processEvent runs the relay pipeline for one delivery. Failures are logged
// inside the job; nothing is retried here.
func (d *dispatcher) processEvent(workerID int, event *core.PushEvent) {
	d.logger.Debug("worker processing delivery",
		"worker_id", workerID,
		"id", event.ID,
		"repo", event.RepoFullName,
	)

	if err := d.relayJob.Run(context.Background(), event); err != nil {
		d.logger.Error("relay job failed",
			"id", event.ID,
			"repo", event.RepoFullName,
			"error", err,
		)
	}
}

// Dispatch queues a verified delivery for processing by a worker.
func (d *dispatcher) Dispatch(_ context.Context, event *core.PushEvent) error {
	d.logger.Debug("queuing push delivery", "id", event.ID, "repo", event.RepoFullName)

	select {
	case d.jobQueue <- event:
		return nil
	default:
		return fmt.Errorf("job queue is full, cannot accept new delivery")
	}
}

// Stop gracefully shuts down the dispatcher, waiting for all workers to finish.
func (d *dispatcher) Stop() {
	d.logger.Info("stopping dispatcher and waiting for deliveries to finish")
	close(d.jobQueue)
	d.wg.Wait()
	d.logger.Info("all relay jobs have finished")
}
