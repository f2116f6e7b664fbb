package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"
	zlog "github.com/rs/zerolog/log"

	"blog-backend/internal/shared"
	"blog-backend/pkg/container"
)

// asynqServer wraps asynq.Server with additional functionality
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer creates and configures the Asynq server
func setupAsynqServer(c *container.Container, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	redisCfg := c.Config.Redis
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisCfg.Host, Password: redisCfg.Password, DB: redisCfg.DB},
		asynq.Config{
			// Trigger quan trọng nhất: user phải vào READERS ngay sau confirm
			Queues: map[string]int{
				shared.QueueTriggers:    6,
				shared.QueueEmail:       3,
				shared.QueueMaintenance: 1,
			},
			Concurrency: c.Config.Jobs.WorkerConcurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				zlog.Error().
					Err(err).
					Str("task_type", task.Type()).
					Int("retry", retried).
					Int("max_retry", maxRetry).
					Msg("Task failed")
			}),
		},
	)

	go func() {
		log.Println("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] Failed: %v", err)
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown waits for in-flight tasks (asynq ShutdownTimeout, default 8s)
func (s *asynqServer) Shutdown() {
	log.Println("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Println("[Worker] ✓ Gracefully stopped")
}
