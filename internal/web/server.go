// Package web serves the public site and the admin CMS on top of the
// content API.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"scholarship-portal/internal/ai"
	"scholarship-portal/internal/api"
	"scholarship-portal/internal/config"
	"scholarship-portal/internal/seo"
	"scholarship-portal/internal/upload"
)

// fetchLimit bounds the concurrent API calls of a single page.
const fetchLimit = 4

// SitemapLoader returns a sitemap stored by another instance, or nil.
type SitemapLoader interface {
	LoadSitemap(ctx context.Context) ([]byte, error)
}

// Options wires the server's collaborators. API and Site are required.
type Options struct {
	API            *api.Client
	Uploader       *upload.Uploader // nil disables /admin/upload
	Writer         ai.Writer        // nil disables /admin/suggest
	Site           seo.Site
	AdClient       string
	Admin          config.AdminConfig
	SubscribeLimit int
	Sitemap        *seo.Snapshot
	SitemapStore   SitemapLoader
	SitemapMaxAge  time.Duration
	Metrics        *Metrics // nil disables /metrics
}

type Server struct {
	api           *api.Client
	uploader      *upload.Uploader
	writer        ai.Writer
	site          seo.Site
	adClient      string
	admin         config.AdminConfig
	sitemap       *seo.Snapshot
	sitemapStore  SitemapLoader
	sitemapMaxAge time.Duration
	sitemapSrc    *seo.Builder
	metrics       *Metrics
	limiter       *ipLimiter
	tpl           *renderer
	clock         func() time.Time
}

func New(o Options) (*Server, error) {
	tpl, err := newRenderer()
	if err != nil {
		return nil, err
	}
	if o.Sitemap == nil {
		o.Sitemap = &seo.Snapshot{}
	}
	if o.SitemapMaxAge <= 0 {
		o.SitemapMaxAge = 2 * time.Hour
	}
	return &Server{
		api:           o.API,
		uploader:      o.Uploader,
		writer:        o.Writer,
		site:          o.Site,
		adClient:      o.AdClient,
		admin:         o.Admin,
		sitemap:       o.Sitemap,
		sitemapStore:  o.SitemapStore,
		sitemapMaxAge: o.SitemapMaxAge,
		sitemapSrc:    seo.NewBuilder(o.Site, o.API),
		metrics:       o.Metrics,
		limiter:       newIPLimiter(o.SubscribeLimit),
		tpl:           tpl,
	}, nil
}

// Handler returns the router with every public and admin route.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	// before logging and metrics so both see the effective method
	r.Use(methodOverride)
	r.Use(logRequests)
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.middleware)
	}
	r.Use(secureHeaders)

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Get("/", s.home)
	r.Get("/blog", s.blogList)
	r.Get("/blog/{slug}", s.blogDetail)
	r.Get("/blog/category/{slug}", s.categoryPosts)
	r.Get("/blog/country/{slug}", s.countryPosts)
	r.Get("/blog/degree/{slug}", s.degreePosts)
	r.Get("/jobs", s.jobList)
	r.Get("/jobs/{slug}", s.jobDetail)
	for _, sp := range staticPages {
		r.Get("/"+sp.name, s.staticPage(sp))
	}
	r.Get("/sitemap.xml", s.sitemapXML)
	r.Get("/robots.txt", s.robotsTxt)

	r.Group(func(r chi.Router) {
		r.Use(s.limiter.middleware)
		r.Post("/newsletter/subscribe", s.subscribe)
		r.Post("/newsletter/unsubscribe", s.unsubscribe)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.sameOrigin)
		r.Use(requireAdmin(s.admin.Username, s.admin.PasswordHash))
		r.Use(noStore)
		r.Get("/", s.adminDashboard)

		r.Get("/post/new", s.adminNewPost)
		r.Get("/post/edit/{id}", s.adminEditPost)
		r.Post("/posts", s.adminCreatePost)
		r.Put("/posts/{id}", s.adminUpdatePost)
		r.Delete("/posts/{id}", s.adminDeletePost)
		r.Patch("/posts/{id}/status", s.adminTogglePostStatus)

		r.Get("/job/new", s.adminNewJob)
		r.Get("/job/edit/{id}", s.adminEditJob)
		r.Post("/jobs", s.adminCreateJob)
		r.Put("/jobs/{id}", s.adminUpdateJob)
		r.Delete("/jobs/{id}", s.adminDeleteJob)
		r.Patch("/jobs/{id}/status", s.adminToggleJobStatus)

		r.Get("/countries", s.adminCountries)
		r.Post("/countries", s.adminCreateCountry)
		r.Put("/countries/{id}", s.adminUpdateCountry)
		r.Delete("/countries/{id}", s.adminDeleteCountry)

		for _, tx := range taxonomies {
			r.Post("/"+tx.path, s.adminCreateTaxonomy(tx))
			r.Put("/"+tx.path+"/{id}", s.adminUpdateTaxonomy(tx))
			r.Delete("/"+tx.path+"/{id}", s.adminDeleteTaxonomy(tx))
		}

		r.Post("/upload", s.adminUpload)
		r.Post("/suggest", s.adminSuggest)
	})

	r.NotFound(s.render404)
	return r
}

// Start forgets idle rate limiter clients until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			s.limiter.sweep(2 * time.Minute)
		}
	}
}

func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("X-Robots-Tag", "noindex, nofollow")
		next.ServeHTTP(w, r)
	})
}
