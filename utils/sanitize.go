package utils

import "github.com/microcosm-cc/bluemonday"

var (
	ugcPolicy   = bluemonday.UGCPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

// SanitizeHTML cleans rich post content, keeping user-generated markup that
// is safe to render.
func SanitizeHTML(input string) string {
	return ugcPolicy.Sanitize(input)
}

// SanitizePlain strips all markup; used for comment fields which are rendered
// as plain text.
func SanitizePlain(input string) string {
	return plainPolicy.Sanitize(input)
}
