package markdown

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scholarship-portal/internal/model"
)

const samplePost = "" +
	"---\n" +
	"title: \"DAAD Scholarship 2025 in Germany\"\n" +
	"status: published\n" +
	"category: Government\n" +
	"country: de\n" +
	"funding_type: fully-funded\n" +
	"degree_levels: [masters, PhD]\n" +
	"tags: [europe]\n" +
	"application_deadline: 2025-10-31\n" +
	"scholarship_provider: DAAD\n" +
	"---\n\n" +
	"## Benefits\n\nMonthly stipend of **934 EUR**.\n"

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestParseWithFrontmatter(t *testing.T) {
	doc, err := ParseFile(writeTemp(t, "post.md", samplePost))
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	for _, k := range []string{"title", "status", "country", "degree_levels", "application_deadline"} {
		if _, ok := doc.Frontmatter[k]; !ok {
			t.Errorf("missing %s in frontmatter", k)
		}
	}
	if want := "## Benefits"; !strings.Contains(doc.Body, want) {
		t.Errorf("body missing expected substring %q; got: %q", want, doc.Body)
	}
}

func TestParseWithoutFrontmatter(t *testing.T) {
	body := "# Hello\n\nNo frontmatter here.\n"
	doc, err := Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(doc.Frontmatter) != 0 {
		t.Fatalf("expected empty frontmatter, got: %+v", doc.Frontmatter)
	}
	if doc.Body != body {
		t.Errorf("body mismatch.\nwant: %q\n got: %q", body, doc.Body)
	}
}

func TestHTML(t *testing.T) {
	doc, err := Parse(strings.NewReader(samplePost))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	html, err := doc.HTML()
	if err != nil {
		t.Fatalf("HTML error: %v", err)
	}
	if !strings.Contains(html, "<h2>Benefits</h2>") || !strings.Contains(html, "<strong>934 EUR</strong>") {
		t.Errorf("unexpected html: %q", html)
	}
}

var taxonomy = Taxonomy{
	Categories:   []model.Category{{ID: "cat-1", Name: "Government", Slug: "government"}},
	Countries:    []model.Country{{ID: "c-de", Name: "Germany", Code: "DE", Slug: "germany"}},
	FundingTypes: []model.FundingType{{ID: "f-1", Name: "Fully Funded", Slug: "fully-funded"}},
	DegreeLevels: []model.DegreeLevel{{ID: "d-1", Name: "Masters", Slug: "masters"}, {ID: "d-2", Name: "PhD", Slug: "phd"}},
	Tags:         []model.Tag{{ID: "t-1", Name: "Europe", Slug: "europe"}},
}

func TestPostRequest(t *testing.T) {
	doc, err := Parse(strings.NewReader(samplePost))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	req, err := doc.PostRequest(taxonomy)
	if err != nil {
		t.Fatalf("PostRequest error: %v", err)
	}
	if req.Slug != "daad-scholarship-2025-in-germany" {
		t.Errorf("slug = %q", req.Slug)
	}
	if req.Status != model.StatusPublished {
		t.Errorf("status = %q", req.Status)
	}
	if req.CategoryID != "cat-1" || req.CountryID != "c-de" || req.FundingTypeID != "f-1" {
		t.Errorf("taxonomy ids not resolved: %+v", req)
	}
	if len(req.DegreeLevelIDs) != 2 || req.DegreeLevelIDs[1] != "d-2" {
		t.Errorf("degree levels = %v", req.DegreeLevelIDs)
	}
	if len(req.Tags) != 1 || req.Tags[0] != "t-1" {
		t.Errorf("tags = %v", req.Tags)
	}
	if req.ApplicationDeadline != "2025-10-31" {
		t.Errorf("deadline = %q", req.ApplicationDeadline)
	}
	if req.Excerpt != "Benefits\nMonthly stipend of 934 EUR." {
		t.Errorf("excerpt = %q", req.Excerpt)
	}
}

func TestPostRequestUnknownCountry(t *testing.T) {
	doc, err := Parse(strings.NewReader("---\ntitle: X\ncountry: Atlantis\n---\nbody\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	_, err = doc.PostRequest(taxonomy)
	if !errors.Is(err, ErrUnknownRef) {
		t.Fatalf("expected ErrUnknownRef, got %v", err)
	}
}

func TestPostRequestDefaults(t *testing.T) {
	doc, err := Parse(strings.NewReader("---\ntitle: Short One\n---\nHello\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	req, err := doc.PostRequest(Taxonomy{})
	if err != nil {
		t.Fatalf("PostRequest error: %v", err)
	}
	if req.Status != model.StatusDraft {
		t.Errorf("status = %q, want draft", req.Status)
	}
	if req.Slug != "short-one" {
		t.Errorf("slug = %q", req.Slug)
	}
}

func TestPostRequestRequiresTitle(t *testing.T) {
	doc, _ := Parse(strings.NewReader("no frontmatter\n"))
	if _, err := doc.PostRequest(Taxonomy{}); err == nil {
		t.Fatal("expected error for missing title")
	}
}
