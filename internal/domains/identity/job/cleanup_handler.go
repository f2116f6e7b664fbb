package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/identity"
	"blog-backend/internal/shared"
	"blog-backend/pkg/logger"
)

type CleanupExpiredCodesHandler struct {
	repo identity.Repository
	now  func() time.Time
}

func NewCleanupExpiredCodesHandler(repo identity.Repository) *CleanupExpiredCodesHandler {
	return &CleanupExpiredCodesHandler{repo: repo, now: time.Now}
}

func (h *CleanupExpiredCodesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.CleanupExpiredCodesPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			logger.Error("Unmarshal cleanup payload failed", err)
			return fmt.Errorf("unmarshal cleanup payload: %v: %w", err, asynq.SkipRetry)
		}
	}

	cutoff := h.now()
	if !payload.Date.IsZero() {
		cutoff = payload.Date
	}

	log.Info().
		Time("cutoff", cutoff).
		Msg("Starting cleanup of expired confirmation codes")

	cleared, err := h.repo.ClearExpiredCodes(ctx, cutoff)
	if err != nil {
		logger.Error("Clear expired confirmation codes failed", err)
		return err
	}

	log.Info().
		Int("codes_cleared", cleared).
		Msg("Successfully cleaned up expired confirmation codes")
	return nil
}
