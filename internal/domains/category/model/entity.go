package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// CATEGORY ENTITY
// =====================================================

type Category struct {
	ID           uuid.UUID `json:"id"`
	CategoryName string    `json:"category_name"`
	Slug         string    `json:"slug"`
	PostCount    int       `json:"post_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// =====================================================
// REQUEST DTOs
// =====================================================

type CreateCategoryRequest struct {
	CategoryName string `json:"category_name"`
}

func (r *CreateCategoryRequest) Normalize() {
	r.CategoryName = strings.Join(strings.Fields(r.CategoryName), " ")
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CategoryName,
			validation.Required.Error("category name is required"),
			validation.RuneLength(1, 100).Error("category name must be at most 100 characters"),
		),
	)
}
