package utils

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizer = bluemonday.UGCPolicy()
	stripper  = bluemonday.StrictPolicy()
)

// ExcerptLength is the rune length of question card previews.
const ExcerptLength = 150

// Sanitize cleans HTML content to prevent XSS attacks.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}

// PlainText removes all markup and collapses whitespace.
func PlainText(input string) string {
	text := html.UnescapeString(stripper.Sanitize(input))
	return strings.Join(strings.Fields(text), " ")
}

// Excerpt returns the first n runes of the plain text of input, with an
// ellipsis when it was cut.
func Excerpt(input string, n int) string {
	text := PlainText(input)
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	r := []rune(text)
	return strings.TrimSpace(string(r[:n])) + "..."
}
