// Package listing filters and sorts the records shown on listing pages.
// Every function is pure and keeps input order for ties.
package listing

import (
	"slices"
	"sort"
	"strings"
	"time"

	"scholarship-portal/internal/model"
)

// Deadline filters posts by application deadline relative to now.
type Deadline string

const (
	DeadlineAll      Deadline = "all"
	DeadlineUpcoming Deadline = "upcoming"
	DeadlinePast     Deadline = "past"
)

// ParseDeadline maps unknown values to DeadlineAll.
func ParseDeadline(s string) Deadline {
	switch d := Deadline(strings.ToLower(strings.TrimSpace(s))); d {
	case DeadlineUpcoming, DeadlinePast:
		return d
	}
	return DeadlineAll
}

// SortOrder names a scholarship ordering.
type SortOrder string

const (
	SortLatest      SortOrder = "latest"
	SortDeadline    SortOrder = "deadline"
	SortPopular     SortOrder = "popular"
	SortFullyFunded SortOrder = "fully-funded"
)

// ParseSort maps unknown values to SortLatest.
func ParseSort(s string) SortOrder {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case SortDeadline, SortPopular, SortFullyFunded:
		return o
	}
	return SortLatest
}

// ScholarshipQuery holds the predicates of the scholarship listing. The
// zero value lists every published post, newest first.
type ScholarshipQuery struct {
	Search         string
	CountryID      string
	CategoryID     string
	DegreeLevelIDs []string
	FundingTypeIDs []string
	Deadline       Deadline
	Sort           SortOrder
}

// ActiveFilters counts the predicates that narrow the result. Sort is not
// a filter.
func (q ScholarshipQuery) ActiveFilters() int {
	n := 0
	if strings.TrimSpace(q.Search) != "" {
		n++
	}
	if q.CountryID != "" {
		n++
	}
	if q.CategoryID != "" {
		n++
	}
	if len(q.DegreeLevelIDs) > 0 {
		n++
	}
	if len(q.FundingTypeIDs) > 0 {
		n++
	}
	if q.Deadline != "" && q.Deadline != DeadlineAll {
		n++
	}
	return n
}

// Apply returns the published posts matching q, sorted by q.Sort. The
// input slice is not modified.
func (q ScholarshipQuery) Apply(posts []model.Post, now time.Time) []model.Post {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if !p.Published() {
			continue
		}
		if search != "" && !postMatches(p, search) {
			continue
		}
		if q.CountryID != "" && p.CountryID != q.CountryID {
			continue
		}
		if q.CategoryID != "" && p.CategoryID != q.CategoryID {
			continue
		}
		if len(q.DegreeLevelIDs) > 0 && !anyDegree(p, q.DegreeLevelIDs) {
			continue
		}
		if len(q.FundingTypeIDs) > 0 && (p.FundingTypeID == "" || !slices.Contains(q.FundingTypeIDs, p.FundingTypeID)) {
			continue
		}
		if !deadlineMatches(q.Deadline, p.ApplicationDeadline, now) {
			continue
		}
		out = append(out, p)
	}
	SortPosts(out, q.Sort)
	return out
}

// SortPosts sorts posts in place. The sort is stable.
func SortPosts(posts []model.Post, order SortOrder) {
	switch order {
	case SortDeadline:
		sort.SliceStable(posts, func(i, j int) bool {
			return deadlineLess(posts[i].ApplicationDeadline, posts[j].ApplicationDeadline)
		})
	case SortPopular:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].Views > posts[j].Views
		})
	case SortFullyFunded:
		sort.SliceStable(posts, func(i, j int) bool {
			return fullyFunded(posts[i]) && !fullyFunded(posts[j])
		})
	default:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.After(posts[j].CreatedAt.Time)
		})
	}
}

func postMatches(p model.Post, search string) bool {
	for _, f := range []string{p.Title, p.Excerpt, p.Content, p.ScholarshipProvider, p.UniversityName} {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func anyDegree(p model.Post, ids []string) bool {
	for _, dl := range p.DegreeLevels {
		if slices.Contains(ids, dl.ID) {
			return true
		}
	}
	return false
}

func fullyFunded(p model.Post) bool {
	return p.FundingType != nil && p.FundingType.Slug == model.FullyFundedSlug
}

// deadlineMatches treats a missing deadline as already past.
func deadlineMatches(d Deadline, deadline model.Time, now time.Time) bool {
	switch d {
	case DeadlineUpcoming:
		return !deadline.IsZero() && !deadline.Before(now)
	case DeadlinePast:
		return deadline.IsZero() || deadline.Before(now)
	}
	return true
}

// deadlineLess orders ascending with missing deadlines last.
func deadlineLess(a, b model.Time) bool {
	switch {
	case a.IsZero():
		return false
	case b.IsZero():
		return true
	}
	return a.Before(b.Time)
}
