package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Time is a timestamp as sent by the API. It accepts RFC 3339, a bare
// "YYYY-MM-DDTHH:MM:SS", "YYYY-MM-DD HH:MM:SS" or a date, and null or "".
// Anything else decodes as the zero time so one bad record cannot fail a
// whole list.
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses any of the layouts accepted by Time.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

func (t *Time) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	t.Time = time.Time{}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		slog.Warn("model: ignoring non-string time", "value", string(b))
		return nil
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parsed, err := ParseTime(s)
	if err != nil {
		slog.Warn("model: ignoring unparseable time", "value", s)
		return nil
	}
	t.Time = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// NewTime wraps a time.Time.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}
