package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scholarship-portal/internal/api"
	"scholarship-portal/internal/listing"
	"scholarship-portal/internal/model"
)

func TestScholarshipQuery(t *testing.T) {
	q := scholarshipQuery(url.Values{
		"q":        {"  erasmus "},
		"country":  {"c1"},
		"degree":   {"d1,d2", "d3"},
		"funding":  {"f1"},
		"deadline": {"upcoming"},
		"sort":     {"popular"},
	})
	assert.Equal(t, "erasmus", q.Search)
	assert.Equal(t, "c1", q.CountryID)
	assert.Equal(t, []string{"d1", "d2", "d3"}, q.DegreeLevelIDs)
	assert.Equal(t, []string{"f1"}, q.FundingTypeIDs)
	assert.Equal(t, listing.DeadlineUpcoming, q.Deadline)
	assert.Equal(t, listing.SortPopular, q.Sort)
}

func TestJobQuery(t *testing.T) {
	q := jobQuery(url.Values{"location": {"Remote"}, "sort": {"popular"}})
	assert.Equal(t, "all", q.LocationType)
	assert.Equal(t, listing.SortLatest, q.Sort)

	q = jobQuery(url.Values{"location": {"international"}, "sort": {"deadline"}, "type": {"e1"}})
	assert.Equal(t, "international", q.LocationType)
	assert.Equal(t, listing.SortDeadline, q.Sort)
	assert.Equal(t, "e1", q.EmploymentTypeID)
}

func TestFormStatus(t *testing.T) {
	assert.Equal(t, model.StatusPublished, formStatus(url.Values{"action": {"publish"}, "status": {"draft"}}))
	assert.Equal(t, model.StatusDraft, formStatus(url.Values{"action": {"draft"}, "status": {"published"}}))
	assert.Equal(t, model.StatusPublished, formStatus(url.Values{"status": {"published"}}))
	assert.Equal(t, model.StatusDraft, formStatus(url.Values{"status": {"archived"}}))
}

func TestPostRequestForm(t *testing.T) {
	req, err := postRequestForm(url.Values{
		"title":                  {" DAAD Scholarship 2025 "},
		"tags":                   {"t1", "t2"},
		"is_featured":            {"on"},
		"application_fee":        {"on"},
		"application_fee_amount": {"25.5"},
		"available_seats":        {"12"},
		"application_deadline":   {"2025-10-15T00:00:00Z"},
		"scheduled_publish_at":   {"2025-09-01T08:30"},
		"faq_data":               {`[{"question":"Q","answer":"A"}]`},
	})
	require.NoError(t, err)
	assert.Equal(t, "DAAD Scholarship 2025", req.Title)
	assert.Equal(t, "daad-scholarship-2025", req.Slug)
	assert.Equal(t, model.StatusDraft, req.Status)
	assert.True(t, req.IsFeatured)
	assert.Equal(t, 25.5, req.ApplicationFeeAmount)
	assert.Equal(t, 12, req.AvailableSeats)
	assert.Equal(t, "2025-10-15", req.ApplicationDeadline)
	assert.Equal(t, "2025-09-01T08:30:00Z", req.ScheduledPublishAt)
	assert.Equal(t, []string{"t1", "t2"}, req.Tags)
	assert.JSONEq(t, `[{"question":"Q","answer":"A"}]`, string(req.FAQData))
}

func TestPostRequestForm_FillsExcerptAndEmptyLists(t *testing.T) {
	long := strings.Repeat("a", 250)
	req, err := postRequestForm(url.Values{
		"title":   {"T"},
		"content": {"<p>Tuition &amp; stipend</p><p>" + long + "</p>"},
	})
	require.NoError(t, err)
	assert.Len(t, []rune(req.Excerpt), 200)
	assert.True(t, strings.HasPrefix(req.Excerpt, "Tuition & stipend"))
	assert.NotContains(t, req.Excerpt, "...")
	assert.Equal(t, []string{}, req.DegreeLevelIDs)
	assert.Equal(t, []string{}, req.Tags)

	req, err = postRequestForm(url.Values{"title": {"T"}, "excerpt": {"Kept"}, "content": {"<p>Other</p>"}})
	require.NoError(t, err)
	assert.Equal(t, "Kept", req.Excerpt)

	b, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"degree_level_ids":[]`)
	assert.Contains(t, string(b), `"country_id":""`)
}

func TestPostRequestForm_Invalid(t *testing.T) {
	cases := map[string]url.Values{
		"Title is required":                                    {"content": {"x"}},
		"Application deadline must be a valid date":            {"title": {"T"}, "application_deadline": {"next week"}},
		"Application fee amount must be a positive number":     {"title": {"T"}, "application_fee_amount": {"-1"}},
		"Available seats must be a whole number":               {"title": {"T"}, "available_seats": {"many"}},
		"FAQ data must be valid JSON":                          {"title": {"T"}, "faq_data": {"{"}},
		"Scheduled publish time must be a valid date and time": {"title": {"T"}, "scheduled_publish_at": {"soon"}},
	}
	for want, v := range cases {
		_, err := postRequestForm(v)
		msg, ok := formMessage(err)
		assert.True(t, ok, want)
		assert.Equal(t, want, msg)
	}
}

func TestPostRequestFrom_RoundTripsEditorFields(t *testing.T) {
	var p model.Post
	require.NoError(t, json.Unmarshal([]byte(`{
		"id":"p1","title":"T","slug":"t","status":"published","tags":["t1"],
		"degree_levels":[{"id":"d1","name":"PhD"}],
		"application_deadline":"2025-10-15T00:00:00Z",
		"scheduled_publish_at":"2025-09-01T08:30:00Z"
	}`), &p))
	req := postRequestFrom(p)
	assert.Equal(t, []string{"t1"}, req.Tags)
	assert.Equal(t, []string{"d1"}, req.DegreeLevelIDs)
	assert.Equal(t, "2025-10-15", req.ApplicationDeadline)
	assert.Equal(t, "2025-09-01T08:30", req.ScheduledPublishAt)
	assert.Equal(t, model.StatusPublished, req.Status)
}

func TestJobRequestForm(t *testing.T) {
	req, err := jobRequestForm(url.Values{"title": {"Analyst"}, "company_name": {"Acme"}, "action": {"publish"}})
	require.NoError(t, err)
	assert.Equal(t, model.LocationNational, req.LocationType)
	assert.Equal(t, model.StatusPublished, req.Status)
	assert.Equal(t, "analyst", req.Slug)

	_, err = jobRequestForm(url.Values{"title": {"Analyst"}})
	msg, _ := formMessage(err)
	assert.Equal(t, "Company name is required", msg)

	_, err = jobRequestForm(url.Values{"title": {"Analyst"}, "company_name": {"Acme"}, "location_type": {"mars"}})
	msg, _ = formMessage(err)
	assert.Equal(t, "Location type must be national or international", msg)
}

func TestAPIMessage(t *testing.T) {
	assert.Equal(t, "Email already subscribed", apiMessage(&api.Error{Body: `{"error":"Email already subscribed"}`}))
	assert.Equal(t, "Saved", apiMessage(&api.Error{Body: `{"message":"Saved","error":"ignored"}`}))
	assert.Equal(t, "", apiMessage(&api.Error{Body: `<html>bad gateway</html>`}))
}

func TestValidEmail(t *testing.T) {
	for _, s := range []string{"a@b.co", "first.last@uni.ac.uk"} {
		assert.True(t, validEmail(s), s)
	}
	for _, s := range []string{"", "plain", "@b.co", "a@b", "a@b.", "a@@b.co", "a b@c.de"} {
		assert.False(t, validEmail(s), s)
	}
}

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	redirectWith(rec, httptest.NewRequest(http.MethodPost, "/x", nil), "/done", "success", "Post published")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/done", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/done", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	out := httptest.NewRecorder()
	f := popFlash(out, req)
	assert.Equal(t, flash{Kind: "success", Message: "Post published"}, f)
	cleared := out.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)

	assert.Equal(t, flash{}, popFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestMethodOverride(t *testing.T) {
	var got string
	h := methodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { got = r.Method }))

	h.ServeHTTP(httptest.NewRecorder(), formRequest(http.MethodPost, "/", url.Values{"_method": {"delete"}}))
	assert.Equal(t, http.MethodDelete, got)

	h.ServeHTTP(httptest.NewRecorder(), formRequest(http.MethodPost, "/", url.Values{"_method": {"GET"}}))
	assert.Equal(t, http.MethodPost, got)

	h.ServeHTTP(httptest.NewRecorder(), formRequest(http.MethodGet, "/?_method=PUT", nil))
	assert.Equal(t, http.MethodGet, got)
}

func TestIPLimiter(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newIPLimiter(2)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("1.2.3.4"))
	assert.True(t, l.allow("1.2.3.4"))
	assert.False(t, l.allow("1.2.3.4"))
	assert.True(t, l.allow("5.6.7.8"))

	// one token refills every 30s
	now = now.Add(30 * time.Second)
	assert.True(t, l.allow("1.2.3.4"))

	now = now.Add(5 * time.Minute)
	l.sweep(2 * time.Minute)
	assert.Empty(t, l.clients)
}
