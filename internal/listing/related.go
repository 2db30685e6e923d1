package listing

import (
	"time"

	"scholarship-portal/internal/model"
)

const (
	relatedByCountry  = 2
	relatedByCategory = 2
	relatedByDegree   = 1
	relatedMax        = 3
	featuredMax       = 5
)

// RelatedPosts picks published posts related to current: up to two from
// the same country, then up to two from the same category, then one
// sharing a degree level. Results are unique and capped at three.
func RelatedPosts(current model.Post, posts []model.Post) []model.Post {
	var related []model.Post
	seen := map[string]bool{}
	take := func(limit int, match func(model.Post) bool) {
		n := 0
		for _, p := range posts {
			if n == limit {
				return
			}
			if !p.Published() || p.Slug == current.Slug || seen[p.ID] || !match(p) {
				continue
			}
			related = append(related, p)
			seen[p.ID] = true
			n++
		}
	}

	if current.CountryID != "" {
		take(relatedByCountry, func(p model.Post) bool { return p.CountryID == current.CountryID })
	}
	if current.CategoryID != "" {
		take(relatedByCategory, func(p model.Post) bool { return p.CategoryID == current.CategoryID })
	}
	if len(current.DegreeLevels) > 0 {
		take(relatedByDegree, func(p model.Post) bool {
			for _, dl := range current.DegreeLevels {
				if p.HasDegreeLevel(dl.ID) {
					return true
				}
			}
			return false
		})
	}
	if len(related) > relatedMax {
		related = related[:relatedMax]
	}
	return related
}

// FeaturedPosts returns up to five published, featured posts other than
// the one with excludeSlug.
func FeaturedPosts(posts []model.Post, excludeSlug string) []model.Post {
	var out []model.Post
	for _, p := range posts {
		if len(out) == featuredMax {
			break
		}
		if p.Published() && p.IsFeatured && p.Slug != excludeSlug {
			out = append(out, p)
		}
	}
	return out
}

// PostsByDegreeSlug returns the published posts carrying the degree level
// with the given slug, newest first, together with that level. The level
// is nil when no listed level has the slug.
func PostsByDegreeSlug(posts []model.Post, levels []model.DegreeLevel, slug string) ([]model.Post, *model.DegreeLevel) {
	var level *model.DegreeLevel
	for i := range levels {
		if levels[i].Slug == slug {
			level = &levels[i]
			break
		}
	}
	if level == nil {
		return nil, nil
	}
	out := ScholarshipQuery{DegreeLevelIDs: []string{level.ID}}.Apply(posts, time.Time{})
	return out, level
}
