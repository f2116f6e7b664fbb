package utils

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	ExcerptLength         = 150
	ShortExcerptLength    = 100
	LongTitleThreshold    = 50
	FeaturedExcerptLength = 350
	excerptEllipsis       = "..."
)

// Policies are safe for concurrent use once built.
var (
	contentPolicy = bluemonday.UGCPolicy()
	stripPolicy   = bluemonday.StrictPolicy()
)

// SanitizeHTML removes scripts, event-handler attributes and unsafe URLs from
// rich-text post content before it is rendered.
func SanitizeHTML(raw string) string {
	return contentPolicy.Sanitize(raw)
}

// StripTags converts rich text to plain text with collapsed whitespace.
func StripTags(raw string) string {
	text := html.UnescapeString(stripPolicy.Sanitize(raw))
	return strings.Join(strings.Fields(text), " ")
}

// Truncate cắt theo rune (không cắt giữa ký tự UTF-8), thêm "..." nếu bị cắt
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:n]), " ") + excerptEllipsis
}

// Excerpt: tags stripped; 150 chars, or 100 when the title is longer than 50 chars.
func Excerpt(title, content string) string {
	limit := ExcerptLength
	if utf8.RuneCountInString(title) > LongTitleThreshold {
		limit = ShortExcerptLength
	}
	return Truncate(StripTags(content), limit)
}

// FeaturedExcerpt is the longer lead text shown for the newest post.
func FeaturedExcerpt(content string) string {
	return Truncate(StripTags(content), FeaturedExcerptLength)
}
