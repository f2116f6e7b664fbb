package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHTMLRemovesScriptsAndHandlers(t *testing.T) {
	cases := []string{
		`<p onclick="steal()">hi</p><script>alert(1)</script>`,
		`<img src="https://cdn.example/a.png" onerror="alert(1)">`,
		`<a href="javascript:alert(1)">click</a>`,
		`<div onmouseover="x()"><SCRIPT src="//evil.js"></SCRIPT>text</div>`,
	}

	for _, in := range cases {
		out := strings.ToLower(SanitizeHTML(in))
		assert.NotContains(t, out, "<script", in)
		assert.NotContains(t, out, "onclick", in)
		assert.NotContains(t, out, "onerror", in)
		assert.NotContains(t, out, "onmouseover", in)
		assert.NotContains(t, out, "javascript:", in)
	}
}

func TestSanitizeHTMLKeepsFormatting(t *testing.T) {
	out := SanitizeHTML(`<h2>Title</h2><p><strong>bold</strong> and <em>em</em></p>`)
	assert.Equal(t, `<h2>Title</h2><p><strong>bold</strong> and <em>em</em></p>`, out)
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Hello world & friends", StripTags("<p>Hello <b>world</b></p>\n<p>&amp; friends</p>"))
	assert.Equal(t, "", StripTags("<script>alert(1)</script>"))
}

func TestExcerptLengthDependsOnTitle(t *testing.T) {
	body := "<p>" + strings.Repeat("a", 400) + "</p>"

	short := Excerpt("Short title", body)
	assert.Equal(t, strings.Repeat("a", 150)+"...", short)

	longTitle := strings.Repeat("t", 51)
	assert.Equal(t, strings.Repeat("a", 100)+"...", Excerpt(longTitle, body))

	exactly50 := strings.Repeat("t", 50)
	assert.Equal(t, strings.Repeat("a", 150)+"...", Excerpt(exactly50, body))
}

func TestExcerptDoesNotPadShortContent(t *testing.T) {
	assert.Equal(t, "tiny post", Excerpt("t", "<p>tiny post</p>"))
}

func TestTruncateCountsRunes(t *testing.T) {
	assert.Equal(t, "h\u00e9llo...", Truncate("h\u00e9llo w\u00f6rld", 5))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestFeaturedExcerpt(t *testing.T) {
	body := strings.Repeat("b", 500)
	assert.Equal(t, strings.Repeat("b", 350)+"...", FeaturedExcerpt(body))
}
