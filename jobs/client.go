package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"
)

// ErrRefreshPending is returned while an identical refresh is still queued.
var ErrRefreshPending = errors.New("jobs: balance refresh already queued")

// Enqueuer submits balance refresh tasks.
type Enqueuer interface {
	EnqueueBalancesRefresh(ctx context.Context, payload BalancesRefreshPayload) (string, error)
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisConnOpt) (*Client, error) {
	return &Client{client: asynq.NewClient(redisOpts)}, nil
}

// EnqueueBalancesRefresh queues a refresh. Repeated requests for the same
// company within a minute collapse into one task.
func (c *Client) EnqueueBalancesRefresh(ctx context.Context, payload BalancesRefreshPayload) (string, error) {
	task, err := NewBalancesRefreshTask(payload)
	if err != nil {
		return "", err
	}
	info, err := c.client.EnqueueContext(ctx, task, asynq.Unique(time.Minute), asynq.MaxRetry(1))
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return "", ErrRefreshPending
	}
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
