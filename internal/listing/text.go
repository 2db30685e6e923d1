package listing

import (
	"regexp"
	"strings"
)

var (
	tagRE = regexp.MustCompile(`<[^>]*>`)

	entityReplacer = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// StripHTML removes tags and decodes the handful of entities rich-text
// editors emit.
func StripHTML(html string) string {
	return strings.TrimSpace(entityReplacer.Replace(tagRE.ReplaceAllString(html, "")))
}

// TextPreview returns the plain text of html cut to maxLen runes, with
// "..." appended when cut.
func TextPreview(html string, maxLen int) string {
	text := StripHTML(html)
	r := []rune(text)
	if maxLen <= 0 || len(r) <= maxLen {
		return text
	}
	return string(r[:maxLen]) + "..."
}

// DefaultExcerpt is the excerpt the editor fills in from content: its plain
// text cut to maxLen runes, without an ellipsis.
func DefaultExcerpt(html string, maxLen int) string {
	r := []rune(StripHTML(html))
	if maxLen > 0 && len(r) > maxLen {
		r = r[:maxLen]
	}
	return strings.TrimSpace(string(r))
}

// Excerpt is the post excerpt when set, otherwise a preview of content.
func Excerpt(excerpt, content string, maxLen int) string {
	if s := StripHTML(excerpt); s != "" {
		return s
	}
	return TextPreview(content, maxLen)
}
