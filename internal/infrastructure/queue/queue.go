package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task types processed by cmd/worker.
const (
	// TypeImageDelete removes a single object from storage. Enqueued
	// when a cover is replaced, or as compensation when an upload
	// succeeded but the database write did not.
	TypeImageDelete = "image:delete"

	// TypeImageSweep reconciles bucket contents against the image_key
	// columns and removes stale orphans. Scheduled periodically.
	TypeImageSweep = "image:sweep"
)

// ImageDeletePayload identifies the object to remove.
type ImageDeletePayload struct {
	Key string `json:"key"`
}

// Enqueuer is the task-submission contract handed to the domain
// services. The asynq client implements it; tests use a recorder and
// deployments without a worker use Noop.
type Enqueuer interface {
	EnqueueImageDelete(ctx context.Context, key string) error
}

// Client wraps an asynq.Client as an Enqueuer.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, redisPassword string, redisDB int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

var _ Enqueuer = (*Client)(nil)

func (c *Client) EnqueueImageDelete(ctx context.Context, key string) error {
	payload, err := json.Marshal(ImageDeletePayload{Key: key})
	if err != nil {
		return fmt.Errorf("failed to marshal image delete payload: %w", err)
	}

	task := asynq.NewTask(TypeImageDelete, payload, asynq.MaxRetry(5))
	if _, err := c.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", TypeImageDelete, err)
	}

	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Noop discards every task. Used when no worker is deployed; cleanup
// then falls back to the periodic sweep.
type Noop struct{}

var _ Enqueuer = Noop{}

func (Noop) EnqueueImageDelete(ctx context.Context, key string) error {
	return nil
}
