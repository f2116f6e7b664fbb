package model

import (
	"time"

	"github.com/google/uuid"

	"blog-backend/internal/shared/utils"
)

// =====================================================
// BLOGPOST ENTITY
// =====================================================

type Blogpost struct {
	ID          uuid.UUID
	Title       string
	Content     string // raw HTML từ editor, sanitize khi render
	UserID      *uuid.UUID
	AuthorName  string
	Category    string
	HeaderImage *string
	Date        *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnerID là user_id dạng string cho authz ("" khi author đã bị xoá)
func (b *Blogpost) OwnerID() string {
	if b.UserID == nil {
		return ""
	}
	return b.UserID.String()
}

// AuthorRef là lazy accessor của quan hệ author
type AuthorRef struct {
	ID          *uuid.UUID `json:"id"`
	DisplayName string     `json:"display_name"`
}

// ListFilter cho feed
type ListFilter struct {
	Category string
	UserID   *uuid.UUID
	Page     int
	Limit    int
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type PostSummary struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Lead        string     `json:"lead,omitempty"` // chỉ có ở featured post
	AuthorName  string     `json:"author_name"`
	Category    string     `json:"category"`
	HeaderImage *string    `json:"header_image,omitempty"`
	Date        *string    `json:"date,omitempty"`
	Featured    bool       `json:"featured"`
	CreatedAt   time.Time  `json:"created_at"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
}

type PostDetail struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	ContentHTML string     `json:"content_html"`
	AuthorName  string     `json:"author_name"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	Category    string     `json:"category"`
	HeaderImage *string    `json:"header_image,omitempty"`
	Date        *string    `json:"date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type PostPage struct {
	Posts []PostSummary `json:"posts"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func formatDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := d.Format(DateLayout)
	return &s
}

func (b *Blogpost) ToSummary() PostSummary {
	return PostSummary{
		ID:          b.ID,
		Title:       b.Title,
		Excerpt:     utils.Excerpt(b.Title, b.Content),
		AuthorName:  b.AuthorName,
		Category:    b.Category,
		HeaderImage: b.HeaderImage,
		Date:        formatDate(b.Date),
		CreatedAt:   b.CreatedAt,
		UserID:      b.UserID,
	}
}

func (b *Blogpost) ToDetail() PostDetail {
	return PostDetail{
		ID:          b.ID,
		Title:       b.Title,
		ContentHTML: utils.SanitizeHTML(b.Content),
		AuthorName:  b.AuthorName,
		UserID:      b.UserID,
		Category:    b.Category,
		HeaderImage: b.HeaderImage,
		Date:        formatDate(b.Date),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
