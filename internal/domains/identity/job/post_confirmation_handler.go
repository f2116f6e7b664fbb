package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/identity"
	"blog-backend/internal/infrastructure/metrics"
)

// GroupAdder là phần admin API mà trigger cần
type GroupAdder interface {
	AdminAddUserToGroup(ctx context.Context, userPoolID, userName, group string) error
}

// PostConfirmationHandler adds newly confirmed users to the reader group.
type PostConfirmationHandler struct {
	admin GroupAdder
	group string
}

var _ identity.PostConfirmationTrigger = (*PostConfirmationHandler)(nil)

func NewPostConfirmationHandler(admin GroupAdder, group string) *PostConfirmationHandler {
	return &PostConfirmationHandler{admin: admin, group: group}
}

// Handle never fails. Errors from the admin call are logged and the event is
// returned unchanged so the confirmation flow is never blocked.
func (h *PostConfirmationHandler) Handle(ctx context.Context, event identity.PostConfirmationEvent) identity.PostConfirmationEvent {
	// Chỉ chạy cho sign-up confirmation, bỏ qua admin actions / forgot password
	if event.TriggerSource != identity.TriggerSourceConfirmSignUp {
		log.Info().
			Str("trigger_source", event.TriggerSource).
			Str("user", event.UserName).
			Msg("Trigger source is not sign-up confirmation, skipping group assignment")
		metrics.ObserveTrigger(event.TriggerSource, "skipped")
		return event
	}

	log.Info().
		Str("user", event.UserName).
		Str("group", h.group).
		Msg("Attempting to add user to group")

	if err := h.admin.AdminAddUserToGroup(ctx, event.UserPoolID, event.UserName, h.group); err != nil {
		log.Error().
			Err(err).
			Str("user", event.UserName).
			Str("group", h.group).
			Msg("Error adding user to group")
		metrics.ObserveTrigger(event.TriggerSource, "failed")
		return event
	}

	log.Info().
		Str("user", event.UserName).
		Str("group", h.group).
		Msg("Successfully added user to group")
	metrics.ObserveTrigger(event.TriggerSource, "added")
	return event
}

// ProcessTask là asynq adapter. Payload hỏng → SkipRetry, còn lại luôn nil
func (h *PostConfirmationHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var event identity.PostConfirmationEvent
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		log.Error().Err(err).Msg("Malformed post-confirmation payload")
		return fmt.Errorf("unmarshal post-confirmation event: %v: %w", err, asynq.SkipRetry)
	}

	h.Handle(ctx, event)
	return nil
}
