package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarship-portal/internal/model"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func day(offset int) model.Time {
	return model.NewTime(now.AddDate(0, 0, offset))
}

func ids(posts []model.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func fixture() []model.Post {
	fully := &model.FundingType{ID: "f1", Slug: model.FullyFundedSlug}
	partial := &model.FundingType{ID: "f2", Slug: "partial"}
	master := model.DegreeLevel{ID: "d1", Slug: "masters"}
	phd := model.DegreeLevel{ID: "d2", Slug: "phd"}
	return []model.Post{
		{ID: "1", Slug: "daad", Title: "DAAD Scholarship", Status: model.StatusPublished, CountryID: "de", CategoryID: "gov",
			FundingTypeID: "f1", FundingType: fully, DegreeLevels: []model.DegreeLevel{master}, Views: 10,
			ApplicationDeadline: day(30), CreatedAt: day(-10)},
		{ID: "2", Slug: "chevening", Title: "Chevening", ScholarshipProvider: "UK Government", Status: model.StatusPublished,
			CountryID: "uk", CategoryID: "gov", FundingTypeID: "f2", FundingType: partial, Views: 50,
			ApplicationDeadline: day(-5), CreatedAt: day(-2)},
		{ID: "3", Slug: "eth", Title: "ETH Excellence", UniversityName: "ETH Zurich", Status: model.StatusPublished,
			CountryID: "ch", CategoryID: "uni", FundingTypeID: "f1", FundingType: fully,
			DegreeLevels: []model.DegreeLevel{phd}, Views: 50, CreatedAt: day(-1)},
		{ID: "4", Slug: "draft", Title: "Draft DAAD", Status: model.StatusDraft, CountryID: "de", CreatedAt: day(0)},
		{ID: "5", Slug: "erasmus", Title: "Erasmus Mundus", Content: "<p>Joint <b>master</b> degrees</p>", Status: model.StatusPublished,
			CountryID: "de", CategoryID: "uni", DegreeLevels: []model.DegreeLevel{master, phd}, Views: 5,
			ApplicationDeadline: day(10), CreatedAt: day(-20)},
	}
}

func TestScholarshipQuery_DefaultListsPublishedNewestFirst(t *testing.T) {
	got := ScholarshipQuery{}.Apply(fixture(), now)
	assert.Equal(t, []string{"3", "2", "1", "5"}, ids(got))
}

func TestScholarshipQuery_Search(t *testing.T) {
	cases := map[string][]string{
		"daad":          {"1"},
		"uk government": {"2"},
		"eth zurich":    {"3"},
		"MASTER":        {"5"},
	}
	for q, want := range cases {
		got := ScholarshipQuery{Search: q}.Apply(fixture(), now)
		assert.Equal(t, want, ids(got), q)
	}
}

func TestScholarshipQuery_Filters(t *testing.T) {
	posts := fixture()

	got := ScholarshipQuery{CountryID: "de"}.Apply(posts, now)
	assert.Equal(t, []string{"1", "5"}, ids(got))

	got = ScholarshipQuery{CategoryID: "uni"}.Apply(posts, now)
	assert.Equal(t, []string{"3", "5"}, ids(got))

	// posts without degree levels drop out once the filter is active
	got = ScholarshipQuery{DegreeLevelIDs: []string{"d2"}}.Apply(posts, now)
	assert.Equal(t, []string{"3", "5"}, ids(got))

	got = ScholarshipQuery{FundingTypeIDs: []string{"f2"}}.Apply(posts, now)
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestScholarshipQuery_Deadline(t *testing.T) {
	posts := fixture()

	got := ScholarshipQuery{Deadline: DeadlineUpcoming}.Apply(posts, now)
	assert.Equal(t, []string{"1", "5"}, ids(got))

	// missing deadlines count as past
	got = ScholarshipQuery{Deadline: DeadlinePast}.Apply(posts, now)
	assert.Equal(t, []string{"3", "2"}, ids(got))
}

func TestScholarshipQuery_Sorts(t *testing.T) {
	posts := fixture()

	got := ScholarshipQuery{Sort: SortDeadline}.Apply(posts, now)
	assert.Equal(t, []string{"2", "5", "1", "3"}, ids(got), "missing deadline sorts last")

	got = ScholarshipQuery{Sort: SortPopular}.Apply(posts, now)
	assert.Equal(t, []string{"2", "3", "1", "5"}, ids(got), "ties keep input order")

	got = ScholarshipQuery{Sort: SortFullyFunded}.Apply(posts, now)
	assert.Equal(t, []string{"1", "3", "2", "5"}, ids(got))
}

func TestScholarshipQuery_DoesNotMutateInput(t *testing.T) {
	posts := fixture()
	_ = ScholarshipQuery{Sort: SortPopular}.Apply(posts, now)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(posts))
}

func TestActiveFilters(t *testing.T) {
	assert.Equal(t, 0, ScholarshipQuery{Deadline: DeadlineAll, Sort: SortPopular}.ActiveFilters())
	q := ScholarshipQuery{
		Search:         "x",
		CountryID:      "de",
		CategoryID:     "gov",
		DegreeLevelIDs: []string{"d1", "d2"},
		FundingTypeIDs: []string{"f1"},
		Deadline:       DeadlinePast,
	}
	assert.Equal(t, 6, q.ActiveFilters())
}

func TestParse(t *testing.T) {
	assert.Equal(t, DeadlineUpcoming, ParseDeadline(" Upcoming "))
	assert.Equal(t, DeadlineAll, ParseDeadline("soon"))
	assert.Equal(t, SortFullyFunded, ParseSort("fully-funded"))
	assert.Equal(t, SortLatest, ParseSort(""))
}

func TestJobQuery(t *testing.T) {
	jobs := []model.Job{
		{ID: "a", Title: "Go Engineer", CompanyName: "Acme", Status: model.StatusPublished, LocationType: model.LocationInternational,
			CountryID: "de", EmploymentTypeID: "ft", CreatedAt: day(-3)},
		{ID: "b", Title: "Lecturer", CompanyName: "School", Status: model.StatusPublished, LocationType: model.LocationNational,
			ApplicationDeadline: day(5), CreatedAt: day(-1)},
		{ID: "c", Title: "Draft", Status: model.StatusDraft, CreatedAt: day(0)},
		{ID: "d", Title: "Researcher", CompanyName: "Acme Labs", Status: model.StatusPublished, LocationType: model.LocationInternational,
			ApplicationDeadline: day(2), CreatedAt: day(-7)},
	}

	collect := func(js []model.Job) []string {
		var out []string
		for _, j := range js {
			out = append(out, j.ID)
		}
		return out
	}

	assert.Equal(t, []string{"b", "a", "d"}, collect(JobQuery{}.Apply(jobs)))
	assert.Equal(t, []string{"a", "d"}, collect(JobQuery{Search: "acme"}.Apply(jobs)))
	assert.Equal(t, []string{"b"}, collect(JobQuery{LocationType: "national"}.Apply(jobs)))
	assert.Equal(t, []string{"a"}, collect(JobQuery{CountryID: "de", EmploymentTypeID: "ft"}.Apply(jobs)))
	assert.Equal(t, []string{"d", "b", "a"}, collect(JobQuery{Sort: SortDeadline}.Apply(jobs)))
	assert.Equal(t, 2, JobQuery{LocationType: "national", Search: "x"}.ActiveFilters())
}

func TestRelatedPosts(t *testing.T) {
	current := model.Post{ID: "x", Slug: "x", CountryID: "de", CategoryID: "gov", DegreeLevels: []model.DegreeLevel{{ID: "d2"}}}
	posts := []model.Post{
		{ID: "x", Slug: "x", Status: model.StatusPublished, CountryID: "de"},
		{ID: "1", Slug: "1", Status: model.StatusPublished, CountryID: "de"},
		{ID: "2", Slug: "2", Status: model.StatusDraft, CountryID: "de"},
		{ID: "3", Slug: "3", Status: model.StatusPublished, CountryID: "de", CategoryID: "gov"},
		{ID: "4", Slug: "4", Status: model.StatusPublished, CountryID: "de"},
		{ID: "5", Slug: "5", Status: model.StatusPublished, CategoryID: "gov"},
		{ID: "6", Slug: "6", Status: model.StatusPublished, DegreeLevels: []model.DegreeLevel{{ID: "d2"}}},
	}

	got := RelatedPosts(current, posts)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"1", "3", "5"}, ids(got))
}

func TestRelatedPosts_DegreeFallback(t *testing.T) {
	current := model.Post{ID: "x", Slug: "x", DegreeLevels: []model.DegreeLevel{{ID: "d1"}}}
	posts := []model.Post{
		{ID: "1", Slug: "1", Status: model.StatusPublished, DegreeLevels: []model.DegreeLevel{{ID: "d1"}}},
		{ID: "2", Slug: "2", Status: model.StatusPublished, DegreeLevels: []model.DegreeLevel{{ID: "d1"}}},
	}
	assert.Equal(t, []string{"1"}, ids(RelatedPosts(current, posts)))
}

func TestFeaturedPosts(t *testing.T) {
	var posts []model.Post
	for i := 0; i < 8; i++ {
		posts = append(posts, model.Post{ID: string(rune('a' + i)), Slug: string(rune('a' + i)), Status: model.StatusPublished, IsFeatured: i != 2})
	}
	got := FeaturedPosts(posts, "a")
	assert.Equal(t, []string{"b", "d", "e", "f", "g"}, ids(got))
}

func TestPostsByDegreeSlug(t *testing.T) {
	levels := []model.DegreeLevel{{ID: "d1", Slug: "masters"}, {ID: "d2", Slug: "phd"}}
	got, level := PostsByDegreeSlug(fixture(), levels, "phd")
	require.NotNil(t, level)
	assert.Equal(t, "d2", level.ID)
	assert.Equal(t, []string{"3", "5"}, ids(got))

	got, level = PostsByDegreeSlug(fixture(), levels, "bachelors")
	assert.Nil(t, level)
	assert.Empty(t, got)
}

func TestTextPreview(t *testing.T) {
	assert.Equal(t, `Tom & "Jerry" <3`, TextPreview(`<p>Tom &amp; &quot;Jerry&quot;&nbsp;&lt;3</p>`, 100))
	assert.Equal(t, "abc...", TextPreview("<b>abcdef</b>", 3))
	assert.Equal(t, "héll...", TextPreview("héllo wörld", 4))
	assert.Equal(t, "", TextPreview("", 10))

	assert.Equal(t, "abc", DefaultExcerpt("<b>abc</b>def", 3))
	assert.Equal(t, "héllo", DefaultExcerpt("<p>héllo</p>", 200))
	assert.Equal(t, "short", Excerpt("<p>short</p>", "<p>long content</p>", 5))
	assert.Equal(t, "long ...", Excerpt("", "<p>long content</p>", 5))
}

func TestStatsAndSubscribers(t *testing.T) {
	s := Stats(fixture())
	assert.Equal(t, PostStats{Total: 5, Published: 4, Drafts: 1, TotalViews: 115}, s)

	subs := []model.Subscriber{
		{Email: "Alice@Example.com", IsActive: true},
		{Email: "bob@example.com", IsActive: false},
		{Email: "carol@test.org", IsActive: true},
	}
	assert.Len(t, FilterSubscribers(subs, "", false), 3)
	assert.Len(t, FilterSubscribers(subs, "EXAMPLE", false), 2)
	got := FilterSubscribers(subs, "example", true)
	require.Len(t, got, 1)
	assert.Equal(t, "Alice@Example.com", got[0].Email)
	assert.Equal(t, SubscriberStats{Total: 3, Active: 2, Inactive: 1}, CountSubscribers(subs))
}

func TestFilterCountries(t *testing.T) {
	cs := []model.Country{{Name: "Germany", Code: "DE", Region: "Europe"}, {Name: "Japan", Code: "JP", Region: "Asia"}}
	assert.Len(t, FilterCountries(cs, ""), 2)
	got := FilterCountries(cs, "asia")
	require.Len(t, got, 1)
	assert.Equal(t, "Japan", got[0].Name)
	assert.Len(t, FilterCountries(cs, "de"), 1)
}
