package newsletter

import (
	"fmt"
	"strings"
	"time"
)

// ExpandVars performs simple placeholder substitutions for template strings
// used in config-provided text fields (e.g., title, preface, postscript).
//
// Supported variables:
// - {.CurrentDate} => formatted as YYYY-MM-DD (UTC)
// - {.Week}        => ISO week, e.g. 2025-W07 (UTC)
func ExpandVars(s string, now time.Time) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	now = now.UTC()
	year, week := now.ISOWeek()
	r := strings.NewReplacer(
		"{.CurrentDate}", now.Format("2006-01-02"),
		"{.Week}", fmt.Sprintf("%04d-W%02d", year, week),
	)
	return r.Replace(s)
}
