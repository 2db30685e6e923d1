package worker

import (
	"context"
	"fmt"
	"time"
)

// Worker is a long-running background job. Start blocks until ctx is done.
type Worker interface {
	Start(ctx context.Context) error
}

// periodKey names the digest period containing t.
func periodKey(freq string, t time.Time) string {
	utc := t.UTC()
	switch freq {
	case "weekly":
		y, w := utc.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", y, w)
	default: // daily
		return utc.Format("2006-01-02")
	}
}

// runEvery calls fn immediately and then on every tick until ctx is done.
func runEvery(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	fn(ctx)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fn(ctx)
		}
	}
}
