// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips markup from user-supplied strings before
// they are persisted. Profile fields and log detail payloads are plain
// text; anything that looks like HTML is removed, not escaped.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Strip removes all HTML elements and attributes from s and trims the
// result. Plain text passes through unchanged.
func Strip(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
