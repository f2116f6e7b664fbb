package model

import (
	"errors"
	"time"
)

const (
	MaxUploadSize    = 5 * 1024 * 1024
	DefaultListLimit = 20
	MaxListLimit     = 100
)

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds 5MB")
	ErrUnsupportedType = errors.New("file type not allowed")
	ErrInvalidImage    = errors.New("invalid image")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrInvalidSort     = errors.New("sort_by must be one of name, last_modified, size")
)

type SortField string

const (
	SortByName         SortField = "name"
	SortByLastModified SortField = "last_modified"
	SortBySize         SortField = "size"
)

// Item là một file của user, kèm public URL
type Item struct {
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

type ListOptions struct {
	Limit  int
	Offset int
	SortBy SortField
	Desc   bool
}

type ListResult struct {
	Items []Item `json:"items"`
	Total int    `json:"total"`
}

type RemoveRequest struct {
	Paths []string `json:"paths"`
}
