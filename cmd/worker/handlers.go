package main

import (
	"github.com/hibiken/asynq"

	identityJob "blog-backend/internal/domains/identity/job"
	mediaJob "blog-backend/internal/domains/media/job"
	emailjob "blog-backend/internal/infrastructure/email/job"
	"blog-backend/internal/shared"
	"blog-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Trigger
	postConfirmation *identityJob.PostConfirmationHandler

	// Email
	confirmationCode *emailjob.ConfirmationCodeHandler

	// Maintenance
	cleanupCodes    *identityJob.CleanupExpiredCodesHandler
	removeUserMedia *mediaJob.RemoveUserMediaHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		postConfirmation: c.PostConfirmation,
		confirmationCode: emailjob.NewConfirmationCodeHandler(c.Email),
		cleanupCodes:     identityJob.NewCleanupExpiredCodesHandler(c.IdentityRepo),
		removeUserMedia:  mediaJob.NewRemoveUserMediaHandler(c.MediaService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypePostConfirmation, h.postConfirmation.ProcessTask)
	mux.HandleFunc(shared.TypeSendConfirmationCode, h.confirmationCode.ProcessTask)
	mux.HandleFunc(shared.TypeCleanupExpiredCodes, h.cleanupCodes.ProcessTask)
	mux.HandleFunc(shared.TypeRemoveUserMedia, h.removeUserMedia.ProcessTask)
}
