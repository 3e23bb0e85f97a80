package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// SanitizeText strips markup from free text typed into a form (notes,
// history descriptions, addresses) and trims it. Entities escaped by the
// policy are turned back into plain characters since the value is stored
// as text, not HTML.
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}
