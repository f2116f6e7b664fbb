package model

import "errors"

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrInvalidSlug       = errors.New("category name must contain at least one letter or digit")
)
