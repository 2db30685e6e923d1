package web

import (
	"net/url"
	"strings"

	"scholarship-portal/internal/listing"
)

// scholarshipQuery reads ?q=&country=&category=&degree=&funding=&deadline=&sort=.
// degree and funding may repeat.
func scholarshipQuery(v url.Values) listing.ScholarshipQuery {
	return listing.ScholarshipQuery{
		Search:         strings.TrimSpace(v.Get("q")),
		CountryID:      strings.TrimSpace(v.Get("country")),
		CategoryID:     strings.TrimSpace(v.Get("category")),
		DegreeLevelIDs: multi(v, "degree"),
		FundingTypeIDs: multi(v, "funding"),
		Deadline:       listing.ParseDeadline(v.Get("deadline")),
		Sort:           listing.ParseSort(v.Get("sort")),
	}
}

// jobQuery reads ?q=&location=&country=&type=&sort=.
func jobQuery(v url.Values) listing.JobQuery {
	loc := strings.ToLower(strings.TrimSpace(v.Get("location")))
	switch loc {
	case "national", "international":
	default:
		loc = "all"
	}
	sort := listing.SortLatest
	if listing.ParseSort(v.Get("sort")) == listing.SortDeadline {
		sort = listing.SortDeadline
	}
	return listing.JobQuery{
		Search:           strings.TrimSpace(v.Get("q")),
		LocationType:     loc,
		CountryID:        strings.TrimSpace(v.Get("country")),
		EmploymentTypeID: strings.TrimSpace(v.Get("type")),
		Sort:             sort,
	}
}

// multi returns the non-empty values of key, also splitting comma lists.
func multi(v url.Values, key string) []string {
	var out []string
	for _, raw := range v[key] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
