package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const MaxCommentLength = 2000

// =====================================================
// COMMENT ENTITY
// =====================================================

// Comment luôn thuộc đúng một Blogpost
type Comment struct {
	ID          uuid.UUID `json:"id"`
	Comment     string    `json:"comment"`
	UserID      uuid.UUID `json:"user_id"`
	BlogpostID  uuid.UUID `json:"blogpost_id"`
	AuthorEmail string    `json:"author_email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// =====================================================
// REQUEST DTOs
// =====================================================

type CreateCommentRequest struct {
	Comment string `json:"comment"`
}

func (r *CreateCommentRequest) Normalize() {
	r.Comment = strings.TrimSpace(r.Comment)
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Comment,
			validation.Required.Error("comment is required"),
			validation.RuneLength(1, MaxCommentLength).Error("comment must be at most 2000 characters"),
		),
	)
}
