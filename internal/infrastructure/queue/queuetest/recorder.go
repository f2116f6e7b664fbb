// Package queuetest provides a recording queue.Enqueuer for tests.
package queuetest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hibiken/asynq"

	"blog-backend/internal/infrastructure/queue"
)

type Task struct {
	Type    string
	Payload []byte
}

// Recorder giữ lại mọi task đã enqueue. Err != nil → Enqueue lỗi.
type Recorder struct {
	mu    sync.Mutex
	tasks []Task
	Err   error
}

var _ queue.Enqueuer = (*Recorder)(nil)

func (r *Recorder) Enqueue(_ context.Context, taskType string, payload interface{}, _ ...asynq.Option) error {
	if r.Err != nil {
		return r.Err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, Task{Type: taskType, Payload: data})
	return nil
}

// Tasks trả về các task có type taskType
func (r *Recorder) Tasks(taskType string) []Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Task
	for _, t := range r.tasks {
		if t.Type == taskType {
			out = append(out, t)
		}
	}
	return out
}
