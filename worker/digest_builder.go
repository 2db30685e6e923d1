package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"scholarship-portal/internal/ai"
	"scholarship-portal/internal/listing"
	"scholarship-portal/internal/model"
	"scholarship-portal/internal/newsletter"
	"scholarship-portal/internal/seo"
)

// digestChannel is the bookkeeping namespace for digest periods.
const digestChannel = "digest"

// ErrTooFewItems is returned when a period has fewer scholarships than the
// configured minimum.
var ErrTooFewItems = errors.New("digest: not enough scholarships for this period")

// PostLister is the subset of the API client the digest needs.
type PostLister interface {
	ListPosts(ctx context.Context) ([]model.Post, error)
}

// PeriodStore records which digest periods were already written.
type PeriodStore interface {
	IsPublished(ctx context.Context, channel, period string) (bool, error)
	MarkPublished(ctx context.Context, channel, period string) error
}

// DigestBuilder periodically renders a Markdown digest of the scholarships
// published in the current period.
type DigestBuilder struct {
	Posts      PostLister
	Store      PeriodStore // nil falls back to checking the output file
	Writer     ai.Writer   // optional
	Frequency  string      // daily or weekly
	TopN       int
	MinItems   int
	OutputDir  string
	Interval   time.Duration
	Title      string
	Preface    string
	Postscript string
	Language   string
	SiteURL    string

	now func() time.Time
}

func (w *DigestBuilder) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 30 * time.Minute
	}
	if err := os.MkdirAll(w.OutputDir, 0o755); err != nil {
		return err
	}
	runEvery(ctx, w.Interval, w.runOnce)
	return nil
}

func (w *DigestBuilder) runOnce(ctx context.Context) {
	path, err := w.Build(ctx, false)
	switch {
	case errors.Is(err, ErrTooFewItems):
		slog.Debug("digest: skipped", "reason", err)
	case err != nil:
		slog.Error("digest: build failed", "err", err)
	case path != "":
		slog.Info("digest: published", "path", path)
	}
}

// Build writes the digest for the current period and returns its path. An
// empty path with a nil error means the period was already published. With
// force the published check is skipped.
func (w *DigestBuilder) Build(ctx context.Context, force bool) (string, error) {
	now := w.clock()
	period := periodKey(w.Frequency, now)
	path := filepath.Join(w.OutputDir, period+".md")

	if !force {
		done, err := w.published(ctx, period, path)
		if err != nil {
			return "", fmt.Errorf("digest: check published: %w", err)
		}
		if done {
			return "", nil
		}
	}

	posts, err := w.Posts.ListPosts(ctx)
	if err != nil {
		return "", fmt.Errorf("digest: list posts: %w", err)
	}
	items := w.Select(posts, now)
	if len(items) < w.MinItems || len(items) == 0 {
		return "", fmt.Errorf("%w: period=%s have=%d want=%d", ErrTooFewItems, period, len(items), w.MinItems)
	}

	md, err := w.render(ctx, period, items, now)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.OutputDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("digest: write file: %w", err)
	}
	if w.Store != nil {
		if err := w.Store.MarkPublished(ctx, digestChannel, period); err != nil {
			slog.Error("digest: mark published", "period", period, "err", err)
		}
	}
	return path, nil
}

// Select returns the published scholarships created in the period containing
// now, most viewed first, capped at TopN.
func (w *DigestBuilder) Select(posts []model.Post, now time.Time) []model.Post {
	period := periodKey(w.Frequency, now)
	out := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if !p.Published() || p.CreatedAt.IsZero() {
			continue
		}
		if periodKey(w.Frequency, p.CreatedAt.Time) != period {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	if w.TopN > 0 && len(out) > w.TopN {
		out = out[:w.TopN]
	}
	return out
}

func (w *DigestBuilder) published(ctx context.Context, period, path string) (bool, error) {
	if w.Store != nil {
		return w.Store.IsPublished(ctx, digestChannel, period)
	}
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (w *DigestBuilder) render(ctx context.Context, period string, posts []model.Post, now time.Time) (string, error) {
	site := seo.Site{URL: w.SiteURL}
	title := strings.TrimSpace(newsletter.ExpandVars(w.Title, now))
	if title == "" {
		title = fmt.Sprintf("Scholarship digest %s", period)
	}
	data := newsletter.Data{
		Title:      title,
		Slug:       "digest-" + strings.ToLower(period),
		Datetime:   now.UTC().Format("2006-01-02 15:04"),
		Preface:    newsletter.ExpandVars(w.Preface, now),
		Postscript: newsletter.ExpandVars(w.Postscript, now),
		SiteURL:    strings.TrimRight(w.SiteURL, "/"),
		Items:      make([]newsletter.Item, 0, len(posts)),
	}
	for _, p := range posts {
		it := newsletter.Item{
			Title:    p.Title,
			URL:      site.URLFor("/blog/" + p.Slug),
			Provider: p.ScholarshipProvider,
			Excerpt:  listing.Excerpt(p.Excerpt, p.Content, 200),
			Views:    p.Views,
		}
		if p.Country != nil {
			it.Country = p.Country.Name
		}
		if !p.ApplicationDeadline.IsZero() {
			it.Deadline = p.ApplicationDeadline.UTC().Format("2006-01-02")
			it.DaysLeft = seo.DaysLeft(p.ApplicationDeadline.Time, now)
		}
		data.Items = append(data.Items, it)
	}

	if w.Writer != nil {
		if s, err := w.Writer.SummarizeDigest(ctx, posts, w.Language); err == nil {
			data.Summary = strings.TrimSpace(s)
		} else {
			slog.Warn("digest: ai summary failed", "err", err)
		}
	}
	if data.Summary == "" {
		n := min(3, len(posts))
		titles := make([]string, 0, n)
		for _, p := range posts[:n] {
			titles = append(titles, p.Title)
		}
		data.Summary = fmt.Sprintf("Top scholarships this period: %s.", strings.Join(titles, ", "))
	}

	out, err := newsletter.Render(data)
	if err != nil {
		return "", fmt.Errorf("digest: render: %w", err)
	}
	return out, nil
}

func (w *DigestBuilder) clock() time.Time {
	if w.now != nil {
		return w.now()
	}
	return time.Now().UTC()
}
