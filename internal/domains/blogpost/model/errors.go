package model

import "errors"

var (
	ErrPostNotFound     = errors.New("blog post not found")
	ErrCategoryNotFound = errors.New("category does not exist")
)
