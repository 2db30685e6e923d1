package web

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"scholarship-portal/internal/api"
	"scholarship-portal/internal/carousel"
	"scholarship-portal/internal/listing"
	"scholarship-portal/internal/model"
	"scholarship-portal/internal/seo"
)

const (
	homeLatest     = 15
	homeCategories = 12
)

type homeData struct {
	Latest         []model.Post
	Featured       carousel.Track[model.Post]
	Countries      carousel.Track[model.Country]
	Categories     []model.Category
	MoreCategories bool
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	var (
		posts      []model.Post
		countries  []model.Country
		categories []model.Category
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(fetchLimit)
	g.Go(func() (err error) { posts, err = s.api.ListPosts(ctx); return })
	g.Go(func() (err error) { countries, err = s.api.ListCountries(ctx); return })
	g.Go(func() (err error) { categories, err = s.api.ListCategories(ctx); return })
	if err := g.Wait(); err != nil {
		s.renderError(w, r, err)
		return
	}

	latest := listing.ScholarshipQuery{}.Apply(posts, s.now())
	if len(latest) > homeLatest {
		latest = latest[:homeLatest]
	}
	data := homeData{
		Latest:         latest,
		Featured:       carousel.NewTrack(listing.FeaturedPosts(posts, "")),
		Countries:      carousel.NewTrack(countries),
		Categories:     categories,
		MoreCategories: len(categories) > homeCategories,
	}
	if data.MoreCategories {
		data.Categories = categories[:homeCategories]
	}
	s.render(w, r, http.StatusOK, "home", page{
		Meta:   s.site.Page("/", "", ""),
		JSONLD: s.scripts(seo.WebSite(s.site), seo.Organization(s.site)),
		Nav:    "home",
		Data:   data,
	})
}

type blogListData struct {
	Query         listing.ScholarshipQuery
	Values        url.Values
	Posts         []model.Post
	Countries     []model.Country
	Categories    []model.Category
	DegreeLevels  []model.DegreeLevel
	FundingTypes  []model.FundingType
	ActiveFilters int
}

func (s *Server) blogList(w http.ResponseWriter, r *http.Request) {
	var data blogListData
	var posts []model.Post
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(fetchLimit)
	g.Go(func() (err error) { posts, err = s.api.ListPosts(ctx); return })
	g.Go(func() (err error) { data.Countries, err = s.api.ListCountries(ctx); return })
	g.Go(func() (err error) { data.Categories, err = s.api.ListCategories(ctx); return })
	g.Go(func() (err error) { data.DegreeLevels, err = s.api.ListDegreeLevels(ctx); return })
	g.Go(func() (err error) { data.FundingTypes, err = s.api.ListFundingTypes(ctx); return })
	if err := g.Wait(); err != nil {
		s.renderError(w, r, err)
		return
	}

	data.Values = r.URL.Query()
	data.Query = scholarshipQuery(data.Values)
	data.Posts = data.Query.Apply(posts, s.now())
	data.ActiveFilters = data.Query.ActiveFilters()

	meta := s.site.Page("/blog", "Scholarships", "Browse fully funded and partial scholarships by country, degree level and deadline.")
	if data.ActiveFilters > 0 {
		// filtered views are duplicates of /blog
		meta.NoIndex = true
	}
	s.render(w, r, http.StatusOK, "blog", page{Meta: meta, Nav: "blog", Data: data})
}

type postData struct {
	Post      model.Post
	Countdown seo.Countdown
	Deadline  bool
	Related   []model.Post
	Featured  []model.Post
}

func (s *Server) blogDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := s.api.PostBySlug(r.Context(), slug)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	posts, err := s.api.ListPosts(r.Context())
	if err != nil {
		// the page is still useful without related posts
		slog.Warn("web: related posts unavailable", "slug", slug, "err", err)
	}

	data := postData{
		Post:     *post,
		Related:  listing.RelatedPosts(*post, posts),
		Featured: listing.FeaturedPosts(posts, post.Slug),
	}
	if !post.ApplicationDeadline.IsZero() {
		data.Deadline = true
		data.Countdown = seo.CountdownTo(post.ApplicationDeadline.Time, s.now())
	}

	path := "/blog/" + post.Slug
	title := post.SEOTitle
	if title == "" {
		title = post.Title
	}
	desc := post.MetaDescription
	if desc == "" {
		desc = listing.Excerpt(post.Excerpt, post.Content, 160)
	}
	meta := s.site.Page(path, title, desc)
	meta.OGType = "article"
	meta.Image = post.FeaturedImage
	if post.MetaKeywords != "" {
		meta.Keywords = post.MetaKeywords
	}
	s.render(w, r, http.StatusOK, "post", page{
		Meta:   meta,
		JSONLD: s.scripts(seo.Scholarship(*post, s.site.URLFor(path))),
		Nav:    "blog",
		Data:   data,
	})
}

type archiveData struct {
	Kind        string // Category, Country or Degree level
	Name        string
	Description string
	Flag        string
	Posts       []model.Post
}

func (s *Server) categoryPosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	res, err := s.api.PostsByCategorySlug(r.Context(), slug)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if res.Category == nil {
		s.render404(w, r)
		return
	}
	s.renderArchive(w, r, "/blog/category/"+slug, archiveData{
		Kind:        "Category",
		Name:        res.Category.Name,
		Description: res.Category.Description,
		Posts:       listing.ScholarshipQuery{}.Apply(res.Data, s.now()),
	})
}

func (s *Server) countryPosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	res, err := s.api.PostsByCountrySlug(r.Context(), slug)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if res.Country == nil {
		s.render404(w, r)
		return
	}
	s.renderArchive(w, r, "/blog/country/"+slug, archiveData{
		Kind:        "Country",
		Name:        res.Country.Name,
		Description: res.Country.Description,
		Flag:        res.Country.FlagEmoji,
		Posts:       listing.ScholarshipQuery{}.Apply(res.Data, s.now()),
	})
}

func (s *Server) degreePosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	var (
		posts  []model.Post
		levels []model.DegreeLevel
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) { posts, err = s.api.ListPosts(ctx); return })
	g.Go(func() (err error) { levels, err = s.api.ListDegreeLevels(ctx); return })
	if err := g.Wait(); err != nil {
		s.renderError(w, r, err)
		return
	}
	matched, level := listing.PostsByDegreeSlug(posts, levels, slug)
	if level == nil {
		s.render404(w, r)
		return
	}
	s.renderArchive(w, r, "/blog/degree/"+slug, archiveData{
		Kind:        "Degree level",
		Name:        level.Name,
		Description: level.Description,
		Posts:       matched,
	})
}

func (s *Server) renderArchive(w http.ResponseWriter, r *http.Request, path string, data archiveData) {
	desc := data.Description
	if desc == "" {
		desc = "Scholarships for " + data.Name + "."
	}
	s.render(w, r, http.StatusOK, "archive", page{
		Meta: s.site.Page(path, data.Name+" Scholarships", desc),
		Nav:  "blog",
		Data: data,
	})
}

type jobListData struct {
	Query           listing.JobQuery
	Values          url.Values
	Jobs            []model.Job
	Countries       []model.Country
	EmploymentTypes []model.EmploymentType
	ActiveFilters   int
}

func (s *Server) jobList(w http.ResponseWriter, r *http.Request) {
	data := jobListData{Values: r.URL.Query()}
	data.Query = jobQuery(data.Values)
	var jobs []model.Job
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(fetchLimit)
	g.Go(func() (err error) { jobs, err = s.api.ListJobs(ctx, data.Query.LocationType); return })
	g.Go(func() (err error) { data.Countries, err = s.api.ListCountries(ctx); return })
	g.Go(func() (err error) { data.EmploymentTypes, err = s.api.ListEmploymentTypes(ctx); return })
	if err := g.Wait(); err != nil {
		s.renderError(w, r, err)
		return
	}
	data.Jobs = data.Query.Apply(jobs)
	data.ActiveFilters = data.Query.ActiveFilters()

	meta := s.site.Page("/jobs", "Jobs", "National and international job opportunities for graduates.")
	if data.ActiveFilters > 0 {
		meta.NoIndex = true
	}
	s.render(w, r, http.StatusOK, "jobs", page{Meta: meta, Nav: "jobs", Data: data})
}

type jobData struct {
	Job       model.Job
	Deadline  bool
	Countdown seo.Countdown
}

func (s *Server) jobDetail(w http.ResponseWriter, r *http.Request) {
	job, err := s.api.GetJobBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if !job.Published() {
		s.render404(w, r)
		return
	}
	data := jobData{Job: *job}
	if !job.ApplicationDeadline.IsZero() {
		data.Deadline = true
		data.Countdown = seo.CountdownTo(job.ApplicationDeadline.Time, s.now())
	}
	path := "/jobs/" + job.Slug
	title := job.SEOTitle
	if title == "" {
		title = job.Title + " at " + job.CompanyName
	}
	desc := job.MetaDescription
	if desc == "" {
		desc = listing.Excerpt(job.Excerpt, job.Content, 160)
	}
	meta := s.site.Page(path, title, desc)
	meta.OGType = "article"
	meta.Image = job.FeaturedImage
	s.render(w, r, http.StatusOK, "job", page{
		Meta:   meta,
		JSONLD: s.scripts(seo.JobPosting(*job, s.site.URLFor(path))),
		Nav:    "jobs",
		Data:   data,
	})
}

type staticPage struct {
	name        string
	title       string
	description string
}

var staticPages = []staticPage{
	{"about", "About Us", "Who we are and how we help students find scholarships abroad."},
	{"contact", "Contact Us", "Get in touch with our team."},
	{"privacy", "Privacy Policy", "How we collect, use and protect your information."},
	{"terms", "Terms of Service", "The terms that govern the use of this website."},
	{"disclaimer", "Disclaimer", "Scholarship information is provided as is. Always confirm details with the provider."},
}

func (s *Server) staticPage(sp staticPage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusOK, sp.name, page{
			Meta: s.site.Page("/"+sp.name, sp.title, sp.description),
			Nav:  sp.name,
		})
	}
}

// sitemapXML serves the refreshed snapshot, then a copy shared through
// Redis, and builds one on demand as the last resort.
func (s *Server) sitemapXML(w http.ResponseWriter, r *http.Request) {
	body, ok := s.sitemap.Load(s.now(), s.sitemapMaxAge)
	if !ok && s.sitemapStore != nil {
		if b, err := s.sitemapStore.LoadSitemap(r.Context()); err != nil {
			slog.Warn("web: load stored sitemap", "err", err)
		} else if len(b) > 0 {
			body, ok = b, true
		}
	}
	if !ok {
		b, err := s.sitemapSrc.Build(r.Context())
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		s.sitemap.Store(b, s.now())
		body = b
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(body)
}

func (s *Server) robotsTxt(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.Robots(s.site)))
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	s.newsletter(w, r, true)
}

func (s *Server) unsubscribe(w http.ResponseWriter, r *http.Request) {
	s.newsletter(w, r, false)
}

// newsletter answers JSON to script callers and redirects form posts back
// with a flash.
func (s *Server) newsletter(w http.ResponseWriter, r *http.Request, subscribe bool) {
	var email string
	if isForm(r) {
		email = r.PostFormValue("email")
	} else {
		var req model.SubscribeRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, model.NewsletterResponse{Message: "Invalid request body"})
			return
		}
		email = req.Email
	}
	email = strings.TrimSpace(email)

	var (
		res *model.NewsletterResponse
		err error
	)
	switch {
	case !validEmail(email):
		err = errInvalidEmail
	case subscribe:
		res, err = s.api.Subscribe(r.Context(), email)
	default:
		res, err = s.api.Unsubscribe(r.Context(), email)
	}

	status := http.StatusOK
	if err != nil {
		res = &model.NewsletterResponse{Message: newsletterError(err, subscribe)}
		status = http.StatusBadRequest
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status >= 500 {
			status = http.StatusBadGateway
		}
		if !errors.Is(err, errInvalidEmail) {
			slog.Warn("web: newsletter request failed", "subscribe", subscribe, "err", err)
		}
	}

	if !isForm(r) || wantsJSON(r) {
		render.Status(r, status)
		render.JSON(w, r, res)
		return
	}
	kind := "success"
	if err != nil {
		kind = "error"
	}
	back := "/"
	if ref, perr := url.Parse(r.Referer()); perr == nil && ref.Path != "" && ref.Host == r.Host {
		back = ref.RequestURI()
	}
	redirectWith(w, r, back, kind, res.Message)
}

var errInvalidEmail = errors.New("invalid email address")

// validEmail is the same loose check the signup form performs in the
// browser.
func validEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}
	domain := s[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1 && !strings.ContainsAny(s, " \t\r\n")
}

func newsletterError(err error, subscribe bool) string {
	if errors.Is(err, errInvalidEmail) {
		return "Please enter a valid email address."
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status < 500 {
		if msg := apiMessage(apiErr); msg != "" {
			return msg
		}
	}
	if subscribe {
		return "Failed to subscribe. Please try again."
	}
	return "Failed to unsubscribe. Please try again."
}

func (s *Server) scripts(lds ...any) []template.JS {
	out := make([]template.JS, 0, len(lds))
	for _, ld := range lds {
		js, err := seo.Script(ld)
		if err != nil {
			slog.Error("web: encode json-ld", "err", err)
			continue
		}
		out = append(out, js)
	}
	return out
}
