// Package seo builds page metadata, schema.org structured data, the
// sitemap and robots.txt.
package seo

import (
	"strings"
	"time"
)

// PageMeta is rendered into the <head> of every page.
type PageMeta struct {
	Title       string
	Description string
	Keywords    string
	Canonical   string
	OGType      string // website or article
	Image       string
	NoIndex     bool
}

// Robots is the content of the robots meta tag.
func (m PageMeta) Robots() string {
	if m.NoIndex {
		return "noindex, nofollow"
	}
	return "index, follow, max-image-preview:large, max-snippet:-1, max-video-preview:-1"
}

// Site carries the site-wide defaults pages build their metadata from.
type Site struct {
	URL         string
	Name        string
	Description string
	Keywords    string
}

// URLFor joins the site URL and an absolute path.
func (s Site) URLFor(path string) string {
	if path == "" || path == "/" {
		return s.URL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.URL + path
}

// Page returns metadata for path. An empty title falls back to the site
// name and a set title gets the site name appended.
func (s Site) Page(path, title, description string) PageMeta {
	full := s.Name
	if title != "" {
		full = title + " | " + s.Name
	}
	if description == "" {
		description = s.Description
	}
	return PageMeta{
		Title:       full,
		Description: description,
		Keywords:    s.Keywords,
		Canonical:   s.URLFor(path),
		OGType:      "website",
	}
}

// Countdown is the time left before a deadline.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	Passed  bool
}

// CountdownTo splits the time from now to deadline into days, hours,
// minutes and seconds. A deadline at or before now has Passed set.
func CountdownTo(deadline, now time.Time) Countdown {
	d := deadline.Sub(now)
	if d <= 0 {
		return Countdown{Passed: true}
	}
	secs := int(d / time.Second)
	return Countdown{
		Days:    secs / 86400,
		Hours:   secs % 86400 / 3600,
		Minutes: secs % 3600 / 60,
		Seconds: secs % 60,
	}
}

// DaysLeft rounds the remaining time up to whole days. It is zero once the
// deadline passed.
func DaysLeft(deadline, now time.Time) int {
	d := deadline.Sub(now)
	if d <= 0 {
		return 0
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}
