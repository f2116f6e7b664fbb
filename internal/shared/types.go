package shared

import "time"

// Task types (asynq)
const (
	TypePostConfirmation     = "identity:post_confirmation"
	TypeCleanupExpiredCodes  = "identity:cleanup_expired_codes"
	TypeSendConfirmationCode = "email:confirmation_code"
	TypeRemoveUserMedia      = "media:remove_user_folder"
)

// Queue names, priority được set ở cmd/worker
const (
	QueueTriggers    = "triggers"
	QueueEmail       = "email"
	QueueMaintenance = "maintenance"
)

// ConfirmationCodePayload là payload của TypeSendConfirmationCode
type ConfirmationCodePayload struct {
	Email     string `json:"email"`
	Code      string `json:"code"`
	ExpiresIn string `json:"expiresIn"`
}

// RemoveUserMediaPayload là payload của TypeRemoveUserMedia
type RemoveUserMediaPayload struct {
	UserID string `json:"userId"`
}

// CleanupExpiredCodesPayload: Date zero → time.Now()
type CleanupExpiredCodesPayload struct {
	Date time.Time `json:"date,omitempty"`
}
