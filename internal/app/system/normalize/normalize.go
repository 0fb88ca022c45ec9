// Package normalize standardizes user-supplied values before they are
// persisted or compared. All stores normalize on write so lookups can
// rely on a single canonical form.
package normalize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Nickname trims a nickname and strips any HTML markup, preserving case.
func Nickname(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// Text strips HTML from free-form user text (store descriptions, comment
// content) and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// Category lowercases and trims a store category token.
func Category(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
