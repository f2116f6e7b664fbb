package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/shared"
	"blog-backend/pkg/logger"
)

// FolderRemover: media service thoả interface này
type FolderRemover interface {
	RemoveAllForUser(ctx context.Context, userID string) error
}

// RemoveUserMediaHandler xoá media/<user_id>/ sau khi account bị xoá
type RemoveUserMediaHandler struct {
	media FolderRemover
}

func NewRemoveUserMediaHandler(media FolderRemover) *RemoveUserMediaHandler {
	return &RemoveUserMediaHandler{media: media}
}

func (h *RemoveUserMediaHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.RemoveUserMediaPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("Unmarshal remove media payload failed", err)
		return fmt.Errorf("unmarshal remove media payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.UserID == "" {
		return fmt.Errorf("remove media payload without userId: %w", asynq.SkipRetry)
	}

	log.Info().
		Str("user_id", payload.UserID).
		Msg("Removing user media folder")

	// Lỗi storage → asynq retry
	if err := h.media.RemoveAllForUser(ctx, payload.UserID); err != nil {
		logger.Error("Remove user media failed", err)
		return err
	}

	log.Info().
		Str("user_id", payload.UserID).
		Msg("User media removed")
	return nil
}
