package seo

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"scholarship-portal/internal/model"
)

// Change frequencies used by the sitemap.
const (
	Daily   = "daily"
	Weekly  = "weekly"
	Monthly = "monthly"
	Yearly  = "yearly"
)

// Entry is one <url> of the sitemap.
type Entry struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   float64
}

// Static returns the fixed pages, all modified at now.
func Static(s Site, now time.Time) []Entry {
	return []Entry{
		{Loc: s.URLFor("/"), LastMod: now, ChangeFreq: Daily, Priority: 1.0},
		{Loc: s.URLFor("/blog"), LastMod: now, ChangeFreq: Daily, Priority: 0.9},
		{Loc: s.URLFor("/jobs"), LastMod: now, ChangeFreq: Daily, Priority: 0.9},
		{Loc: s.URLFor("/about"), LastMod: now, ChangeFreq: Monthly, Priority: 0.7},
		{Loc: s.URLFor("/contact"), LastMod: now, ChangeFreq: Monthly, Priority: 0.7},
		{Loc: s.URLFor("/privacy"), LastMod: now, ChangeFreq: Yearly, Priority: 0.5},
		{Loc: s.URLFor("/terms"), LastMod: now, ChangeFreq: Yearly, Priority: 0.5},
		{Loc: s.URLFor("/disclaimer"), LastMod: now, ChangeFreq: Yearly, Priority: 0.5},
	}
}

// Source lists the records that get their own sitemap entries.
type Source interface {
	ListPosts(ctx context.Context) ([]model.Post, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListCountries(ctx context.Context) ([]model.Country, error)
	ListDegreeLevels(ctx context.Context) ([]model.DegreeLevel, error)
	ListJobs(ctx context.Context, locationType string) ([]model.Job, error)
}

// Builder assembles the sitemap from the static pages and the API.
type Builder struct {
	site Site
	src  Source
	now  func() time.Time
}

func NewBuilder(site Site, src Source) *Builder {
	return &Builder{site: site, src: src, now: time.Now}
}

// Entries fetches every record family concurrently. A family whose fetch
// fails is left out and logged; the static pages are always present.
func (b *Builder) Entries(ctx context.Context) []Entry {
	now := b.now()
	// one slot per family keeps the output order fixed
	dynamic := make([][]Entry, 5)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	g.Go(func() error {
		posts, err := b.src.ListPosts(gctx)
		if err != nil {
			slog.Warn("sitemap: list posts failed", "err", err)
			return nil
		}
		var es []Entry
		for _, p := range posts {
			if !p.Published() {
				continue
			}
			es = append(es, Entry{Loc: b.site.URLFor("/blog/" + p.Slug), LastMod: p.LastModified().Time, ChangeFreq: Weekly, Priority: 0.8})
		}
		dynamic[0] = es
		return nil
	})
	g.Go(func() error {
		cats, err := b.src.ListCategories(gctx)
		if err != nil {
			slog.Warn("sitemap: list categories failed", "err", err)
			return nil
		}
		es := make([]Entry, 0, len(cats))
		for _, c := range cats {
			es = append(es, Entry{Loc: b.site.URLFor("/blog/category/" + c.Slug), LastMod: now, ChangeFreq: Daily, Priority: 0.7})
		}
		dynamic[1] = es
		return nil
	})
	g.Go(func() error {
		countries, err := b.src.ListCountries(gctx)
		if err != nil {
			slog.Warn("sitemap: list countries failed", "err", err)
			return nil
		}
		es := make([]Entry, 0, len(countries))
		for _, c := range countries {
			es = append(es, Entry{Loc: b.site.URLFor("/blog/country/" + c.Slug), LastMod: now, ChangeFreq: Daily, Priority: 0.7})
		}
		dynamic[2] = es
		return nil
	})
	g.Go(func() error {
		levels, err := b.src.ListDegreeLevels(gctx)
		if err != nil {
			slog.Warn("sitemap: list degree levels failed", "err", err)
			return nil
		}
		es := make([]Entry, 0, len(levels))
		for _, l := range levels {
			es = append(es, Entry{Loc: b.site.URLFor("/blog/degree/" + l.Slug), LastMod: now, ChangeFreq: Daily, Priority: 0.7})
		}
		dynamic[3] = es
		return nil
	})
	g.Go(func() error {
		jobs, err := b.src.ListJobs(gctx, "")
		if err != nil {
			slog.Warn("sitemap: list jobs failed", "err", err)
			return nil
		}
		var es []Entry
		for _, j := range jobs {
			if !j.Published() {
				continue
			}
			es = append(es, Entry{Loc: b.site.URLFor("/jobs/" + j.Slug), LastMod: j.LastModified().Time, ChangeFreq: Weekly, Priority: 0.7})
		}
		dynamic[4] = es
		return nil
	})
	_ = g.Wait()

	out := Static(b.site, now)
	for _, es := range dynamic {
		out = append(out, es...)
	}
	return out
}

// Build returns the encoded sitemap.
func (b *Builder) Build(ctx context.Context) ([]byte, error) {
	return Encode(b.Entries(ctx))
}

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Encode renders entries as a sitemaps.org urlset.
func Encode(entries []Entry) ([]byte, error) {
	set := urlset{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9", URLs: make([]xmlURL, 0, len(entries))}
	for _, e := range entries {
		u := xmlURL{Loc: e.Loc, ChangeFreq: e.ChangeFreq}
		if !e.LastMod.IsZero() {
			u.LastMod = e.LastMod.UTC().Format(time.RFC3339)
		}
		if e.Priority > 0 {
			u.Priority = fmt.Sprintf("%.1f", e.Priority)
		}
		set.URLs = append(set.URLs, u)
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Snapshot holds the last built sitemap so requests do not hit the API.
type Snapshot struct {
	v atomic.Pointer[snapshot]
}

type snapshot struct {
	body    []byte
	builtAt time.Time
}

func (s *Snapshot) Store(body []byte, at time.Time) {
	s.v.Store(&snapshot{body: body, builtAt: at})
}

// Load returns the stored sitemap if it was built within maxAge.
func (s *Snapshot) Load(now time.Time, maxAge time.Duration) ([]byte, bool) {
	snap := s.v.Load()
	if snap == nil || now.Sub(snap.builtAt) > maxAge {
		return nil, false
	}
	return snap.body, true
}

// Robots renders robots.txt.
func Robots(s Site) string {
	return fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin\nDisallow: /admin/\n\nSitemap: %s\n", s.URLFor("/sitemap.xml"))
}
