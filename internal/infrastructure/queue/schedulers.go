package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"blog-backend/internal/config"
	"blog-backend/internal/shared"
	"blog-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redis config.RedisConfig, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redis.Host, Password: redis.Password, DB: redis.DB},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterCleanupJobs() error {
	return s.registerCleanupExpiredCodesJob()
}

// ================================================
// JOB: Cleanup expired confirmation codes (daily)
// ================================================
func (s *Scheduler) registerCleanupExpiredCodesJob() error {
	payload, err := json.Marshal(shared.CleanupExpiredCodesPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCleanupExpiredCodes, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.CleanupExpiredCodesCron,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register CleanupExpiredCodes job", err)
		return err
	}

	logger.Info("✓ Registered CleanupExpiredCodes", map[string]interface{}{
		"cron": s.jobConfig.CleanupExpiredCodesCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
