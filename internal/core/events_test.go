package core

import (
	"testing"

	"github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPush() *github.PushEvent {
	return &github.PushEvent{
		Ref:    github.Ptr("refs/heads/main"),
		Before: github.Ptr("0000000000000000000000000000000000000000"),
		After:  github.Ptr("abc1230000000000000000000000000000000000"),
		Repo: &github.PushEventRepository{
			FullName: github.Ptr("cs125/example-repo"),
		},
		Pusher: &github.CommitAuthor{Name: github.Ptr("octocat")},
	}
}

func TestEventFromPush(t *testing.T) {
	payload := []byte(`{"ref":"refs/heads/main"}`)

	event, err := EventFromPush("delivery-1", validPush(), payload)
	require.NoError(t, err)

	assert.Equal(t, "delivery-1", event.ID)
	assert.Equal(t, "refs/heads/main", event.Ref)
	assert.Equal(t, "cs125/example-repo", event.RepoFullName)
	assert.Equal(t, "octocat", event.Pusher)
	assert.Equal(t, payload, []byte(event.Payload))
	assert.True(t, event.ReceivedAt.IsZero(), "annotation happens in the relay, not at parse time")
	assert.Empty(t, event.ReceivedSemester)
}

func TestEventFromPushRejectsIncompleteDeliveries(t *testing.T) {
	payload := []byte(`{}`)

	tests := []struct {
		name       string
		deliveryID string
		event      *github.PushEvent
		payload    []byte
	}{
		{"missing delivery ID", "", validPush(), payload},
		{"missing repository", "delivery-1", &github.PushEvent{}, payload},
		{"empty payload", "delivery-1", validPush(), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EventFromPush(tt.deliveryID, tt.event, tt.payload)
			assert.Error(t, err)
		})
	}
}
