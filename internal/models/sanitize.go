package models

import (
	"html"
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(` +`)

// sanitizeDescription escapes HTML special characters so descriptions
// can be rendered as-is, collapses runs of spaces and trims surrounding
// whitespace.
func sanitizeDescription(s string) string {
	s = html.EscapeString(s)
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
