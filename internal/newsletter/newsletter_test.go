package newsletter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandVars(t *testing.T) {
	now := time.Date(2025, 2, 14, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "Scholarships 2025-02-14 (2025-W07)", ExpandVars("Scholarships {.CurrentDate} ({.Week})", now))
	assert.Equal(t, "  ", ExpandVars("  ", now))
}

func TestRender(t *testing.T) {
	out, err := Render(Data{
		Title:      `Weekly "Top" Scholarships`,
		Slug:       "weekly-2025-W07",
		Datetime:   "2025-02-14 09:00",
		Summary:    "Three new programs.",
		Preface:    "Hello readers!",
		Postscript: "See you next week.",
		SiteURL:    "https://example.org",
		Items: []Item{
			{Title: "DAAD", URL: "https://example.org/blog/daad", Country: "Germany", Deadline: "2025-03-01", DaysLeft: 15, Excerpt: "Fully funded masters."},
			{Title: "Chevening", URL: "https://example.org/blog/chevening"},
		},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "---\ntitle: \"Weekly \\\"Top\\\" Scholarships\"\n"))
	assert.Contains(t, out, "slug: weekly-2025-W07")
	assert.Contains(t, out, "## 1. [DAAD](https://example.org/blog/daad)")
	assert.Contains(t, out, "- Country: Germany")
	assert.Contains(t, out, "- Deadline: 2025-03-01 (15 days left)")
	assert.Contains(t, out, "## 2. [Chevening](https://example.org/blog/chevening)")
	assert.Contains(t, out, "Hello readers!")
	assert.Contains(t, out, "See you next week.")
	assert.Contains(t, out, "https://example.org/blog")
}
