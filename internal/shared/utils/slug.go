package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalid  = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphens  = regexp.MustCompile(`-+`)
	letterFolder = strings.NewReplacer("đ", "d", "Đ", "D", "ø", "o", "Ø", "O", "ł", "l", "Ł", "L", "ß", "ss")
)

// RemoveDiacritics: "Nguyễn Nhật Ánh" → "Nguyen Nhat Anh", "Café" → "Cafe"
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, letterFolder.Replace(input))
	if err != nil {
		return input
	}
	return out
}

// GenerateSlug: "Công Nghệ & AI" → "cong-nghe-ai"
func GenerateSlug(input string) string {
	s := strings.ToLower(RemoveDiacritics(input))
	s = strings.Join(strings.Fields(s), "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
