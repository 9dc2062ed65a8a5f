// Package queue publishes delivery pointers to the Redis message queue.
package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/classtools/push-relay/internal/config"
	"github.com/classtools/push-relay/internal/core"
)

// publisher pushes messages onto Redis lists named <namespace>:<queue>, the
// key layout the downstream grader consumes from.
type publisher struct {
	client    *redis.Client
	namespace string
}

// NewPublisher connects to Redis using the configured URL and verifies the
// connection with a bounded ping. The returned cleanup closes the client.
func NewPublisher(cfg *config.QueueConfig) (core.QueuePublisher, func(), error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, func() {}, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, func() {}, fmt.Errorf("redis connection failed: %w", err)
	}

	return NewWithClient(client, cfg.Namespace), func() {
		_ = client.Close()
	}, nil
}

// NewWithClient wraps an existing Redis client. Used by tests and the
// operator CLI, which manage the client lifecycle themselves.
func NewWithClient(client *redis.Client, namespace string) core.QueuePublisher {
	return &publisher{client: client, namespace: namespace}
}

// Publish appends the message to the named queue. One call produces at most
// one message; there is no retry and no deduplication.
func (p *publisher) Publish(ctx context.Context, queue, message string) error {
	key := fmt.Sprintf("%s:%s", p.namespace, queue)
	if err := p.client.LPush(ctx, key, message).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", key, err)
	}
	return nil
}
