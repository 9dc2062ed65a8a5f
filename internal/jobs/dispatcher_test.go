package jobs

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classtools/push-relay/internal/core"
)

type countingJob struct {
	mu  sync.Mutex
	ids []string
}

func (j *countingJob) Run(_ context.Context, event *core.PushEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ids = append(j.ids, event.ID)
	return nil
}

func TestDispatcherProcessesAllDeliveries(t *testing.T) {
	job := &countingJob{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := NewDispatcher(job, 3, logger)

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, d.Dispatch(context.Background(), &core.PushEvent{ID: id}))
	}
	d.Stop()

	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e"}, job.ids)
}

func TestDispatcherDefaultsToOneWorker(t *testing.T) {
	job := &countingJob{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := NewDispatcher(job, 0, logger)

	require.NoError(t, d.Dispatch(context.Background(), &core.PushEvent{ID: "only"}))
	d.Stop()

	assert.Equal(t, []string{"only"}, job.ids)
}
