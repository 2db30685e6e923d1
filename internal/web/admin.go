package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"scholarship-portal/internal/api"
	"scholarship-portal/internal/imaging"
	"scholarship-portal/internal/listing"
	"scholarship-portal/internal/model"
)

type adminTab struct {
	ID    string
	Label string
}

var adminTabs = []adminTab{
	{"posts", "Posts"},
	{"jobs", "Jobs"},
	{"categories", "Categories"},
	{"countries", "Countries"},
	{"degree-levels", "Degree Levels"},
	{"tags", "Tags"},
	{"newsletter", "Newsletter"},
	{"stats", "Statistics"},
}

func validTab(id string) bool {
	for _, t := range adminTabs {
		if t.ID == id {
			return true
		}
	}
	return false
}

type dashboardData struct {
	Tab             string
	Tabs            []adminTab
	Stats           listing.PostStats
	Posts           []model.Post
	Jobs            []model.Job
	Categories      []model.Category
	Countries       []model.Country
	DegreeLevels    []model.DegreeLevel
	Tags            []model.Tag
	Subscribers     []model.Subscriber
	SubscriberStats listing.SubscriberStats
	JobsPublished   int
	Search          string
	ActiveOnly      bool
}

func (s *Server) adminDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := dashboardData{
		Tab:        q.Get("tab"),
		Tabs:       adminTabs,
		Search:     strings.TrimSpace(q.Get("q")),
		ActiveOnly: checked(q, "active"),
	}
	if !validTab(data.Tab) {
		data.Tab = "posts"
	}

	var subs []model.Subscriber
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(fetchLimit)
	g.Go(func() (err error) { data.Posts, err = s.api.ListPosts(ctx); return })
	switch data.Tab {
	case "jobs", "stats":
		g.Go(func() (err error) { data.Jobs, err = s.api.ListJobs(ctx, ""); return })
	case "categories":
		g.Go(func() (err error) { data.Categories, err = s.api.ListCategories(ctx); return })
	case "countries":
		g.Go(func() (err error) { data.Countries, err = s.api.ListCountries(ctx); return })
	case "degree-levels":
		g.Go(func() (err error) { data.DegreeLevels, err = s.api.ListDegreeLevels(ctx); return })
	case "tags":
		g.Go(func() (err error) { data.Tags, err = s.api.ListTags(ctx); return })
	}
	if data.Tab == "newsletter" || data.Tab == "stats" {
		g.Go(func() (err error) { subs, err = s.api.ListSubscribers(ctx); return })
	}
	if err := g.Wait(); err != nil {
		s.renderError(w, r, err)
		return
	}

	data.Stats = listing.Stats(data.Posts)
	listing.SortPosts(data.Posts, listing.SortLatest)
	for _, j := range data.Jobs {
		if j.Published() {
			data.JobsPublished++
		}
	}
	data.SubscriberStats = listing.CountSubscribers(subs)
	data.Subscribers = listing.FilterSubscribers(subs, data.Search, data.ActiveOnly)
	if data.Tab == "countries" {
		data.Countries = listing.FilterCountries(data.Countries, data.Search)
	}

	meta := s.site.Page("/admin", "Admin", "")
	meta.NoIndex = true
	s.render(w, r, http.StatusOK, "admin", page{Meta: meta, Nav: "admin", Data: data})
}

// postFormData drives the scholarship editor for both create and edit.
type postFormData struct {
	ID            string
	Post          model.PostRequest
	Categories    []model.Category
	Countries     []model.Country
	DegreeLevels  []model.DegreeLevel
	FundingTypes  []model.FundingType
	Tags          []model.Tag
	AIEnabled     bool
	UploadEnabled bool
	Error         string
}

func (s *Server) postFormOptions(ctx context.Context, d *postFormData) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchLimit)
	g.Go(func() (err error) { d.Categories, err = s.api.ListCategories(ctx); return })
	g.Go(func() (err error) { d.Countries, err = s.api.ListCountries(ctx); return })
	g.Go(func() (err error) { d.DegreeLevels, err = s.api.ListDegreeLevels(ctx); return })
	g.Go(func() (err error) { d.FundingTypes, err = s.api.ListFundingTypes(ctx); return })
	g.Go(func() (err error) { d.Tags, err = s.api.ListTags(ctx); return })
	d.AIEnabled = s.writer != nil
	d.UploadEnabled = s.uploader != nil
	return g.Wait()
}

func (s *Server) renderPostForm(w http.ResponseWriter, r *http.Request, status int, d postFormData) {
	if err := s.postFormOptions(r.Context(), &d); err != nil {
		s.renderError(w, r, err)
		return
	}
	title := "New Scholarship"
	if d.ID != "" {
		title = "Edit Scholarship"
	}
	meta := s.site.Page(r.URL.Path, title, "")
	meta.NoIndex = true
	s.render(w, r, status, "post_form", page{Meta: meta, Nav: "admin", Data: d})
}

func (s *Server) adminNewPost(w http.ResponseWriter, r *http.Request) {
	s.renderPostForm(w, r, http.StatusOK, postFormData{Post: model.PostRequest{Status: model.StatusDraft}})
}

func (s *Server) adminEditPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := s.api.GetPost(r.Context(), id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.renderPostForm(w, r, http.StatusOK, postFormData{ID: id, Post: postRequestFrom(*p)})
}

func (s *Server) adminCreatePost(w http.ResponseWriter, r *http.Request) {
	s.savePost(w, r, "")
}

func (s *Server) adminUpdatePost(w http.ResponseWriter, r *http.Request) {
	s.savePost(w, r, chi.URLParam(r, "id"))
}

func (s *Server) savePost(w http.ResponseWriter, r *http.Request, id string) {
	v, err := parseForm(r)
	if err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	req, err := postRequestForm(v)
	if err != nil {
		msg, _ := formMessage(err)
		s.renderPostForm(w, r, http.StatusBadRequest, postFormData{ID: id, Post: req, Error: msg})
		return
	}

	if id == "" {
		_, err = s.api.CreatePost(r.Context(), req)
	} else {
		_, err = s.api.UpdatePost(r.Context(), id, req)
	}
	if err != nil {
		slog.Error("admin: save post", "id", id, "slug", req.Slug, "err", err)
		msg := "Failed to save draft. Please try again."
		if req.Status == model.StatusPublished {
			msg = "Failed to publish post. Please try again."
		}
		s.renderPostForm(w, r, http.StatusBadGateway, postFormData{ID: id, Post: req, Error: msg})
		return
	}
	slog.Info("admin: post saved", "id", id, "slug", req.Slug, "status", req.Status)
	msg := "Draft saved"
	if req.Status == model.StatusPublished {
		msg = "Post published"
	}
	redirectWith(w, r, "/admin?tab=posts", "success", msg)
}

func (s *Server) adminDeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.api.DeletePost(r.Context(), id); err != nil {
		slog.Error("admin: delete post", "id", id, "err", err)
		redirectWith(w, r, "/admin?tab=posts", "error", "Failed to delete post")
		return
	}
	redirectWith(w, r, "/admin?tab=posts", "success", "Post deleted")
}

func (s *Server) adminTogglePostStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	next := model.Status(r.PostFormValue("status")).Toggle()
	if err := s.api.UpdatePostStatus(r.Context(), id, next); err != nil {
		slog.Error("admin: update post status", "id", id, "err", err)
		redirectWith(w, r, "/admin?tab=posts", "error", "Failed to update post status")
		return
	}
	redirectWith(w, r, "/admin?tab=posts", "success", "Post is now "+string(next))
}

type jobFormData struct {
	ID              string
	Job             model.JobRequest
	Countries       []model.Country
	EmploymentTypes []model.EmploymentType
	UploadEnabled   bool
	Error           string
}

func (s *Server) renderJobForm(w http.ResponseWriter, r *http.Request, status int, d jobFormData) {
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) { d.Countries, err = s.api.ListCountries(ctx); return })
	g.Go(func() (err error) { d.EmploymentTypes, err = s.api.ListEmploymentTypes(ctx); return })
	if err := g.Wait(); err != nil {
		s.renderError(w, r, err)
		return
	}
	d.UploadEnabled = s.uploader != nil
	title := "New Job"
	if d.ID != "" {
		title = "Edit Job"
	}
	meta := s.site.Page(r.URL.Path, title, "")
	meta.NoIndex = true
	s.render(w, r, status, "job_form", page{Meta: meta, Nav: "admin", Data: d})
}

func (s *Server) adminNewJob(w http.ResponseWriter, r *http.Request) {
	s.renderJobForm(w, r, http.StatusOK, jobFormData{Job: model.JobRequest{Status: model.StatusDraft, LocationType: model.LocationNational}})
}

func (s *Server) adminEditJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	j, err := s.api.GetJob(r.Context(), id)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.renderJobForm(w, r, http.StatusOK, jobFormData{ID: id, Job: jobRequestFrom(*j)})
}

func (s *Server) adminCreateJob(w http.ResponseWriter, r *http.Request) {
	s.saveJob(w, r, "")
}

func (s *Server) adminUpdateJob(w http.ResponseWriter, r *http.Request) {
	s.saveJob(w, r, chi.URLParam(r, "id"))
}

func (s *Server) saveJob(w http.ResponseWriter, r *http.Request, id string) {
	v, err := parseForm(r)
	if err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	req, err := jobRequestForm(v)
	if err != nil {
		msg, _ := formMessage(err)
		s.renderJobForm(w, r, http.StatusBadRequest, jobFormData{ID: id, Job: req, Error: msg})
		return
	}
	if id == "" {
		_, err = s.api.CreateJob(r.Context(), req)
	} else {
		_, err = s.api.UpdateJob(r.Context(), id, req)
	}
	if err != nil {
		slog.Error("admin: save job", "id", id, "slug", req.Slug, "err", err)
		msg := "Failed to save draft. Please try again."
		switch {
		case id != "":
			msg = "Failed to update job. Please try again."
		case req.Status == model.StatusPublished:
			msg = "Failed to publish job. Please try again."
		}
		s.renderJobForm(w, r, http.StatusBadGateway, jobFormData{ID: id, Job: req, Error: msg})
		return
	}
	slog.Info("admin: job saved", "id", id, "slug", req.Slug, "status", req.Status)
	msg := "Draft saved"
	if req.Status == model.StatusPublished {
		msg = "Job published"
	}
	redirectWith(w, r, "/admin?tab=jobs", "success", msg)
}

func (s *Server) adminDeleteJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.api.DeleteJob(r.Context(), id); err != nil {
		slog.Error("admin: delete job", "id", id, "err", err)
		redirectWith(w, r, "/admin?tab=jobs", "error", "Failed to delete job")
		return
	}
	redirectWith(w, r, "/admin?tab=jobs", "success", "Job deleted")
}

func (s *Server) adminToggleJobStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	next := model.Status(r.PostFormValue("status")).Toggle()
	if err := s.api.UpdateJobStatus(r.Context(), id, next); err != nil {
		slog.Error("admin: update job status", "id", id, "err", err)
		redirectWith(w, r, "/admin?tab=jobs", "error", "Failed to update job status")
		return
	}
	redirectWith(w, r, "/admin?tab=jobs", "success", "Job is now "+string(next))
}

type countriesData struct {
	Countries []model.Country
	Total     int
	Search    string
	EditID    string
}

func (s *Server) adminCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := s.api.ListCountries(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	q := r.URL.Query()
	data := countriesData{
		Total:  len(countries),
		Search: strings.TrimSpace(q.Get("q")),
		EditID: q.Get("edit"),
	}
	data.Countries = listing.FilterCountries(countries, data.Search)
	meta := s.site.Page("/admin/countries", "Countries", "")
	meta.NoIndex = true
	s.render(w, r, http.StatusOK, "countries", page{Meta: meta, Nav: "admin", Data: data})
}

// countriesReturn sends the editor back to where the form was submitted
// from: the dashboard tab or the countries page.
func countriesReturn(v url.Values) string {
	if v.Get("return") == "dashboard" {
		return "/admin?tab=countries"
	}
	return "/admin/countries"
}

func (s *Server) adminCreateCountry(w http.ResponseWriter, r *http.Request) {
	back := countriesReturn(postForm(r))
	req, err := countryRequestForm(postForm(r))
	if err != nil {
		msg, _ := formMessage(err)
		redirectWith(w, r, back, "error", msg)
		return
	}
	if _, err := s.api.CreateCountry(r.Context(), req); err != nil {
		slog.Error("admin: create country", "name", req.Name, "err", err)
		redirectWith(w, r, back, "error", "Failed to save country. Please try again.")
		return
	}
	redirectWith(w, r, back, "success", "Country "+req.Name+" created")
}

func (s *Server) adminUpdateCountry(w http.ResponseWriter, r *http.Request) {
	back := countriesReturn(postForm(r))
	id := chi.URLParam(r, "id")
	req, err := countryRequestForm(postForm(r))
	if err != nil {
		msg, _ := formMessage(err)
		redirectWith(w, r, back, "error", msg)
		return
	}
	if _, err := s.api.UpdateCountry(r.Context(), id, req); err != nil {
		slog.Error("admin: update country", "id", id, "err", err)
		redirectWith(w, r, back, "error", "Failed to save country. Please try again.")
		return
	}
	redirectWith(w, r, back, "success", "Country "+req.Name+" updated")
}

func (s *Server) adminDeleteCountry(w http.ResponseWriter, r *http.Request) {
	back := countriesReturn(postForm(r))
	id := chi.URLParam(r, "id")
	if err := s.api.DeleteCountry(r.Context(), id); err != nil {
		slog.Error("admin: delete country", "id", id, "err", err)
		redirectWith(w, r, back, "error", "Failed to delete country.")
		return
	}
	redirectWith(w, r, back, "success", "Country deleted")
}

// taxonomy describes one of the simple name/slug/description collections
// managed from the dashboard.
type taxonomy struct {
	path   string
	label  string
	create func(c *api.Client, ctx context.Context, req model.TaxonomyRequest) error
	update func(c *api.Client, ctx context.Context, id string, req model.TaxonomyRequest) error
	remove func(c *api.Client, ctx context.Context, id string) error
}

var taxonomies = []taxonomy{
	{
		path:  "categories",
		label: "Category",
		create: func(c *api.Client, ctx context.Context, req model.TaxonomyRequest) error {
			_, err := c.CreateCategory(ctx, req)
			return err
		},
		update: func(c *api.Client, ctx context.Context, id string, req model.TaxonomyRequest) error {
			_, err := c.UpdateCategory(ctx, id, req)
			return err
		},
		remove: (*api.Client).DeleteCategory,
	},
	{
		path:  "tags",
		label: "Tag",
		create: func(c *api.Client, ctx context.Context, req model.TaxonomyRequest) error {
			_, err := c.CreateTag(ctx, req)
			return err
		},
		update: func(c *api.Client, ctx context.Context, id string, req model.TaxonomyRequest) error {
			_, err := c.UpdateTag(ctx, id, req)
			return err
		},
		remove: (*api.Client).DeleteTag,
	},
	{
		path:  "degree-levels",
		label: "Degree level",
		create: func(c *api.Client, ctx context.Context, req model.TaxonomyRequest) error {
			_, err := c.CreateDegreeLevel(ctx, req)
			return err
		},
		update: func(c *api.Client, ctx context.Context, id string, req model.TaxonomyRequest) error {
			_, err := c.UpdateDegreeLevel(ctx, id, req)
			return err
		},
		remove: (*api.Client).DeleteDegreeLevel,
	},
}

func (tx taxonomy) back() string {
	return "/admin?tab=" + tx.path
}

func (s *Server) adminCreateTaxonomy(tx taxonomy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := taxonomyRequestForm(postForm(r))
		if err != nil {
			msg, _ := formMessage(err)
			redirectWith(w, r, tx.back(), "error", msg)
			return
		}
		if err := tx.create(s.api, r.Context(), req); err != nil {
			slog.Error("admin: create "+tx.path, "name", req.Name, "err", err)
			redirectWith(w, r, tx.back(), "error", "Failed to create "+strings.ToLower(tx.label))
			return
		}
		redirectWith(w, r, tx.back(), "success", tx.label+" created")
	}
}

func (s *Server) adminUpdateTaxonomy(tx taxonomy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		req, err := taxonomyRequestForm(postForm(r))
		if err != nil {
			msg, _ := formMessage(err)
			redirectWith(w, r, tx.back(), "error", msg)
			return
		}
		if err := tx.update(s.api, r.Context(), id, req); err != nil {
			slog.Error("admin: update "+tx.path, "id", id, "err", err)
			redirectWith(w, r, tx.back(), "error", "Failed to update "+strings.ToLower(tx.label))
			return
		}
		redirectWith(w, r, tx.back(), "success", tx.label+" updated")
	}
}

func (s *Server) adminDeleteTaxonomy(tx taxonomy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := tx.remove(s.api, r.Context(), id); err != nil {
			slog.Error("admin: delete "+tx.path, "id", id, "err", err)
			redirectWith(w, r, tx.back(), "error", "Failed to delete "+strings.ToLower(tx.label))
			return
		}
		redirectWith(w, r, tx.back(), "success", tx.label+" deleted")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func jsonError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg})
}

// adminUpload stores an image, or a PDF brochure when kind=pdf, and
// answers {"url": ...}.
func (s *Server) adminUpload(w http.ResponseWriter, r *http.Request) {
	if s.uploader == nil {
		jsonError(w, r, http.StatusNotFound, "Uploads are not configured")
		return
	}
	// leave room for the multipart envelope
	r.Body = http.MaxBytesReader(w, r.Body, s.uploader.MaxBytes()+1<<20)
	file, hdr, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			jsonError(w, r, http.StatusRequestEntityTooLarge, s.tooLargeMessage(r.URL.Query().Get("kind") != "pdf"))
			return
		}
		jsonError(w, r, http.StatusBadRequest, "Please select a file")
		return
	}
	defer file.Close()

	imagesOnly := r.FormValue("kind") != "pdf"
	u, err := s.uploader.Upload(r.Context(), hdr.Filename, file, imagesOnly)
	switch {
	case err == nil:
		render.JSON(w, r, model.UploadResponse{URL: u})
	case errors.Is(err, imaging.ErrTooLarge):
		jsonError(w, r, http.StatusRequestEntityTooLarge, s.tooLargeMessage(imagesOnly))
	case errors.Is(err, imaging.ErrUnsupported), errors.Is(err, imaging.ErrEmpty):
		msg := "Please select an image file"
		if !imagesOnly {
			msg = "Please select an image or PDF file"
		}
		jsonError(w, r, http.StatusUnsupportedMediaType, msg)
	default:
		slog.Error("admin: upload failed", "name", hdr.Filename, "err", err)
		msg := "Failed to upload image"
		if !imagesOnly {
			msg = "PDF upload failed"
		}
		jsonError(w, r, http.StatusBadGateway, msg)
	}
}

func (s *Server) tooLargeMessage(imagesOnly bool) string {
	what := "Image"
	if !imagesOnly {
		what = "File"
	}
	return fmt.Sprintf("%s size should be less than %s", what, byteSize(s.uploader.MaxBytes()))
}

// byteSize formats n as whole MB or KB when exact, else MB with one decimal.
func byteSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n < 1<<20 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%.1fMB", float64(n)/(1<<20))
	}
}

type suggestRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// adminSuggest drafts the excerpt and meta fields of the editor.
func (s *Server) adminSuggest(w http.ResponseWriter, r *http.Request) {
	if s.writer == nil {
		jsonError(w, r, http.StatusNotFound, "AI suggestions are not configured")
		return
	}
	var req suggestRequest
	if isForm(r) {
		req = suggestRequest{Title: r.PostFormValue("title"), Content: r.PostFormValue("content")}
	} else if err := render.DecodeJSON(r.Body, &req); err != nil {
		jsonError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Content) == "" {
		jsonError(w, r, http.StatusBadRequest, "Title or content is required")
		return
	}
	sug, err := s.writer.Suggest(r.Context(), req.Title, req.Content)
	if err != nil {
		jsonError(w, r, http.StatusBadGateway, "Failed to generate suggestions")
		return
	}
	render.JSON(w, r, sug)
}
