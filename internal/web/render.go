package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"scholarship-portal/internal/api"
	"scholarship-portal/internal/listing"
	"scholarship-portal/internal/model"
	"scholarship-portal/internal/seo"
)

//go:embed templates
var templateFS embed.FS

// page is the data every template receives.
type page struct {
	Meta     seo.PageMeta
	Site     seo.Site
	AdClient string
	Flash    flash
	JSONLD   []template.JS
	Nav      string
	Year     int
	Data     any
}

var funcs = template.FuncMap{
	"formatDate": func(t model.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 02, 2006")
	},
	// localTime fills <input type="datetime-local"> from a stored RFC 3339 value.
	"localTime": func(s string) string {
		t, err := model.ParseTime(s)
		if err != nil {
			return s
		}
		return t.UTC().Format("2006-01-02T15:04")
	},
	"preview": listing.TextPreview,
	"excerpt": func(p model.Post) string { return listing.Excerpt(p.Excerpt, p.Content, 160) },
	// Content is authored in the admin editor and stored as HTML.
	"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	"has": func(ids []string, id string) bool {
		for _, v := range ids {
			if v == id {
				return true
			}
		}
		return false
	},
	"lines": func(s string) []string {
		var out []string
		for _, l := range strings.Split(s, "\n") {
			if l = strings.TrimSpace(l); l != "" {
				out = append(out, l)
			}
		}
		return out
	},
	"dict": func(kv ...any) (map[string]any, error) {
		if len(kv)%2 != 0 {
			return nil, errors.New("dict: odd number of arguments")
		}
		m := make(map[string]any, len(kv)/2)
		for i := 0; i < len(kv); i += 2 {
			k, ok := kv[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
			}
			m[k] = kv[i+1]
		}
		return m, nil
	},
	"pageURL": func(base string, q url.Values, key, val string) template.URL {
		v := url.Values{}
		for k, vs := range q {
			v[k] = append([]string(nil), vs...)
		}
		if val == "" {
			v.Del(key)
		} else {
			v.Set(key, val)
		}
		if len(v) == 0 {
			return template.URL(base)
		}
		return template.URL(base + "?" + v.Encode())
	},
}

// renderer holds one template set per page, each combined with the layout
// and the shared partials.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	files, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	r := &renderer{pages: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		name := strings.TrimSuffix(path.Base(f), ".html")
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/partials.html", f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// render executes into a buffer first so a failing template never sends a
// partial page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	t, ok := s.tpl.pages[name]
	if !ok {
		slog.Error("web: unknown template", "name", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if p.Site.URL == "" {
		p.Site = s.site
	}
	if p.Meta.Title == "" {
		p.Meta = s.site.Page(r.URL.Path, "", "")
	}
	p.AdClient = s.adClient
	p.Year = s.now().Year()
	if p.Flash.Message == "" {
		p.Flash = popFlash(w, r)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", p); err != nil {
		slog.Error("web: render template", "name", name, "err", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorPage struct {
	Status  int
	Title   string
	Message string
}

func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, title, msg string) {
	meta := s.site.Page(r.URL.Path, title, msg)
	meta.NoIndex = true
	s.render(w, r, status, "error", page{
		Meta: meta,
		Data: errorPage{Status: status, Title: title, Message: msg},
	})
}

func (s *Server) render404(w http.ResponseWriter, r *http.Request) {
	s.renderStatus(w, r, http.StatusNotFound, "Page not found", "The page you are looking for does not exist or was moved.")
}

// renderError maps API failures to an error page: not found becomes 404,
// a failing API 502 and anything else 500.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, api.ErrNotFound) {
		s.render404(w, r)
		return
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		slog.Error("web: api error", "path", r.URL.Path, "status", apiErr.Status, "err", err)
		s.renderStatus(w, r, http.StatusBadGateway, "Service unavailable", "We could not load this page right now. Please try again shortly.")
		return
	}
	slog.Error("web: request failed", "path", r.URL.Path, "err", err)
	s.renderStatus(w, r, http.StatusInternalServerError, "Something went wrong", "An unexpected error occurred. Please try again later.")
}

func (s *Server) now() time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return time.Now()
}
