package model

import "errors"

var (
	ErrCommentNotFound   = errors.New("comment not found")
	ErrPostNotFound      = errors.New("blog post not found")
	ErrUserRecordMissing = errors.New("user record not found")
)
