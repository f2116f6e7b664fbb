package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/infrastructure/email"
	"blog-backend/internal/shared"
)

// ============================================
// Confirmation Code Email Handler
// ============================================

type ConfirmationCodeHandler struct {
	emailService email.EmailService
}

func NewConfirmationCodeHandler(emailService email.EmailService) *ConfirmationCodeHandler {
	return &ConfirmationCodeHandler{
		emailService: emailService,
	}
}

func (h *ConfirmationCodeHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ConfirmationCodePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ConfirmationCode payload")
		// Sai format payload, retry cũng vô ích
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Str("email", payload.Email).
		Msg("Sending confirmation code")

	err := h.emailService.SendConfirmationCode(ctx, email.ConfirmationCodeData{
		Email:     payload.Email,
		Code:      payload.Code,
		ExpiresIn: payload.ExpiresIn,
	})
	if err != nil {
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to send confirmation code")
		return fmt.Errorf("send confirmation code: %w", err)
	}

	log.Info().
		Str("email", payload.Email).
		Msg("Confirmation code sent successfully")

	return nil
}
