package listing

import (
	"strings"

	"scholarship-portal/internal/model"
)

// PostStats are the dashboard counters.
type PostStats struct {
	Total      int
	Published  int
	Drafts     int
	TotalViews int
}

func Stats(posts []model.Post) PostStats {
	s := PostStats{Total: len(posts)}
	for _, p := range posts {
		switch p.Status {
		case model.StatusPublished:
			s.Published++
		case model.StatusDraft:
			s.Drafts++
		}
		s.TotalViews += p.Views
	}
	return s
}

// SubscriberStats summarises the newsletter tab.
type SubscriberStats struct {
	Total    int
	Active   int
	Inactive int
}

func CountSubscribers(subs []model.Subscriber) SubscriberStats {
	s := SubscriberStats{Total: len(subs)}
	for _, sub := range subs {
		if sub.IsActive {
			s.Active++
		}
	}
	s.Inactive = s.Total - s.Active
	return s
}

// FilterSubscribers keeps active subscribers when activeOnly is set and
// those whose email contains search, case-insensitively.
func FilterSubscribers(subs []model.Subscriber, search string, activeOnly bool) []model.Subscriber {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]model.Subscriber, 0, len(subs))
	for _, s := range subs {
		if activeOnly && !s.IsActive {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(s.Email), search) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FilterCountries is the admin country search over name, code, region
// and description.
func FilterCountries(countries []model.Country, search string) []model.Country {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return countries
	}
	var out []model.Country
	for _, c := range countries {
		for _, f := range []string{c.Name, c.Code, c.Region, c.Description} {
			if strings.Contains(strings.ToLower(f), search) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
