package core

import (
	"context"
)

// JobDispatcher defines the contract for a system that can accept and queue
// verified deliveries for asynchronous processing. This interface decouples
// the webhook handler from the relay execution mechanism.
type JobDispatcher interface {
	// Dispatch accepts a PushEvent and queues it for processing. It returns
	// an error if the job cannot be queued, for example, if the queue is
	// full, providing a mechanism for backpressure.
	Dispatch(ctx context.Context, event *PushEvent) error

	// Stop shuts down the dispatcher, waiting for in-flight deliveries to
	// finish.
	Stop()
}

// Job represents a single, executable unit of work run for one delivery.
type Job interface {
	// Run executes the job's logic for one delivery. It returns an error if
	// the delivery could not be fully relayed.
	Run(ctx context.Context, event *PushEvent) error
}

// EventStore is the persistence contract consumed by the relay. Upsert must
// fully replace any existing document with the same ID (last write wins) and
// report failures to the caller rather than swallowing them.
type EventStore interface {
	Upsert(ctx context.Context, event *PushEvent) error
}

// QueuePublisher announces successfully persisted deliveries to downstream
// consumers. The message is the delivery ID only; messages are not
// deduplicated and no cross-delivery ordering is guaranteed.
type QueuePublisher interface {
	Publish(ctx context.Context, queue, message string) error
}
