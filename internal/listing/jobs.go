package listing

import (
	"sort"
	"strings"

	"scholarship-portal/internal/model"
)

// JobQuery holds the predicates of the job listing.
type JobQuery struct {
	Search           string
	LocationType     string // all, national or international
	CountryID        string
	EmploymentTypeID string
	Sort             SortOrder // latest or deadline
}

// ActiveFilters counts the predicates that narrow the result.
func (q JobQuery) ActiveFilters() int {
	n := 0
	if strings.TrimSpace(q.Search) != "" {
		n++
	}
	if q.LocationType != "" && q.LocationType != "all" {
		n++
	}
	if q.CountryID != "" {
		n++
	}
	if q.EmploymentTypeID != "" {
		n++
	}
	return n
}

// Apply returns the published jobs matching q, newest first or by
// ascending deadline.
func (q JobQuery) Apply(jobs []model.Job) []model.Job {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		if !j.Published() {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(j.Title), search) &&
			!strings.Contains(strings.ToLower(j.CompanyName), search) &&
			!strings.Contains(strings.ToLower(j.Excerpt), search) {
			continue
		}
		if q.LocationType != "" && q.LocationType != "all" && string(j.LocationType) != q.LocationType {
			continue
		}
		if q.CountryID != "" && j.CountryID != q.CountryID {
			continue
		}
		if q.EmploymentTypeID != "" && j.EmploymentTypeID != q.EmploymentTypeID {
			continue
		}
		out = append(out, j)
	}
	if q.Sort == SortDeadline {
		sort.SliceStable(out, func(a, b int) bool {
			return deadlineLess(out[a].ApplicationDeadline, out[b].ApplicationDeadline)
		})
	} else {
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].CreatedAt.After(out[b].CreatedAt.Time)
		})
	}
	return out
}
