package worker

import (
	"context"
	"log/slog"
	"time"

	"scholarship-portal/internal/seo"
)

// SitemapSaver shares a rendered sitemap with other instances.
type SitemapSaver interface {
	SaveSitemap(ctx context.Context, xml []byte, ttl time.Duration) error
}

// SitemapRefresher rebuilds the sitemap on an interval and keeps the latest
// copy in Snapshot.
type SitemapRefresher struct {
	Builder  *seo.Builder
	Snapshot *seo.Snapshot
	Store    SitemapSaver // optional
	Interval time.Duration
}

func (w *SitemapRefresher) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = time.Hour
	}
	runEvery(ctx, w.Interval, w.refresh)
	return nil
}

func (w *SitemapRefresher) refresh(ctx context.Context) {
	start := time.Now()
	body, err := w.Builder.Build(ctx)
	if err != nil {
		slog.Error("sitemap: build failed", "err", err)
		return
	}
	w.Snapshot.Store(body, time.Now())
	if w.Store != nil {
		if err := w.Store.SaveSitemap(ctx, body, 2*w.Interval); err != nil {
			slog.Warn("sitemap: save to redis failed", "err", err)
		}
	}
	slog.Info("sitemap: refreshed", "bytes", len(body), "took", time.Since(start))
}
