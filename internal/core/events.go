// Package core defines the essential interfaces and data structures that form
// the backbone of the relay. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the pipeline.
package core

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/go-github/v73/github"
)

// PushEvent is the persisted record of one webhook delivery. The raw payload
// is kept verbatim and stays opaque to the relay beyond the fields lifted out
// here for logging and storage keys.
type PushEvent struct {
	// ID is the delivery GUID assigned by GitHub (X-GitHub-Delivery). It is
	// the store's primary key and the only value published to the queue.
	ID string

	Ref          string
	Before       string
	After        string
	RepoFullName string
	Pusher       string

	// Payload is the raw webhook body as delivered.
	Payload json.RawMessage

	// ReceivedAt is assigned by the relay at ingest time.
	ReceivedAt time.Time

	// ReceivedSemester is the semester label in effect at ReceivedAt, empty
	// when no configured interval contains it.
	ReceivedSemester string
}

// EventFromPush transforms a raw GitHub push event into the relay's internal
// record. It acts as an anti-corruption layer: the delivery must carry a
// delivery GUID and repository information before it enters the pipeline.
func EventFromPush(deliveryID string, event *github.PushEvent, payload []byte) (*PushEvent, error) {
	if deliveryID == "" {
		return nil, fmt.Errorf("delivery ID is missing from the request")
	}
	if event.GetRepo() == nil || event.GetRepo().GetFullName() == "" {
		return nil, fmt.Errorf("repository information is missing from the event")
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("event payload is empty")
	}

	return &PushEvent{
		ID:           deliveryID,
		Ref:          event.GetRef(),
		Before:       event.GetBefore(),
		After:        event.GetAfter(),
		RepoFullName: event.GetRepo().GetFullName(),
		Pusher:       event.GetPusher().GetName(),
		Payload:      json.RawMessage(payload),
	}, nil
}
