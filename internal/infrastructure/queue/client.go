package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Enqueuer là phần của queue mà domain services dùng để đẩy task
type Enqueuer interface {
	Enqueue(ctx context.Context, taskType string, payload interface{}, opts ...asynq.Option) error
}

// Client wraps asynq.Client, payload được encode JSON
type Client struct {
	client *asynq.Client
}

var _ Enqueuer = (*Client)(nil)

func NewClient(redisAddr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		}),
	}
}

func (c *Client) Enqueue(ctx context.Context, taskType string, payload interface{}, opts ...asynq.Option) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}

	if _, err := c.client.EnqueueContext(ctx, asynq.NewTask(taskType, data), opts...); err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
