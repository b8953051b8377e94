package utils

import "github.com/microcosm-cc/bluemonday"

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// Sanitize keeps a safe HTML subset in post content.
func Sanitize(input string) string {
	return ugcPolicy.Sanitize(input)
}

// StripTags removes all HTML from plain-text fields such as titles and
// contact form input.
func StripTags(input string) string {
	return strictPolicy.Sanitize(input)
}
