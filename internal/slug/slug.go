// Package slug derives URL slugs from titles and names.
package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases s, collapses every run of characters outside [a-z0-9]
// into a single dash and trims leading and trailing dashes.
func Make(s string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// OrFrom returns slug when it is set, otherwise Make(source).
func OrFrom(slug, source string) string {
	if s := strings.TrimSpace(slug); s != "" {
		return Make(s)
	}
	return Make(source)
}
