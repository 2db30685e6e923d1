package markdown

import (
	"errors"
	"fmt"
	"strings"

	"scholarship-portal/internal/listing"
	"scholarship-portal/internal/model"
	"scholarship-portal/internal/slug"
)

// PostMeta is the frontmatter accepted by `import`. Taxonomy fields take
// a slug or a name.
type PostMeta struct {
	Title               string   `yaml:"title"`
	Slug                string   `yaml:"slug"`
	Excerpt             string   `yaml:"excerpt"`
	Status              string   `yaml:"status"`
	Featured            bool     `yaml:"featured"`
	FeaturedImage       string   `yaml:"featured_image"`
	Category            string   `yaml:"category"`
	Country             string   `yaml:"country"`
	FundingType         string   `yaml:"funding_type"`
	DegreeLevels        []string `yaml:"degree_levels"`
	Tags                []string `yaml:"tags"`
	Provider            string   `yaml:"scholarship_provider"`
	University          string   `yaml:"university_name"`
	ApplicationDeadline string   `yaml:"application_deadline"`
	ProgramDuration     string   `yaml:"program_duration"`
	ApplyLink           string   `yaml:"apply_link"`
	OfficialWebsite     string   `yaml:"official_website"`
	ApplicationMode     string   `yaml:"application_mode"`
	ContactEmail        string   `yaml:"contact_email"`
	MetaDescription     string   `yaml:"meta_description"`
	MetaKeywords        string   `yaml:"meta_keywords"`
	SEOTitle            string   `yaml:"seo_title"`
}

// Taxonomy resolves frontmatter references to API ids.
type Taxonomy struct {
	Categories   []model.Category
	Countries    []model.Country
	FundingTypes []model.FundingType
	DegreeLevels []model.DegreeLevel
	Tags         []model.Tag
}

// ErrUnknownRef is returned when a frontmatter reference matches nothing.
var ErrUnknownRef = errors.New("unknown reference")

func match(ref, slugVal, name string) bool {
	ref = strings.TrimSpace(ref)
	return strings.EqualFold(ref, slugVal) || strings.EqualFold(ref, name)
}

func (t Taxonomy) category(ref string) (string, error) {
	for _, c := range t.Categories {
		if match(ref, c.Slug, c.Name) {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("category %q: %w", ref, ErrUnknownRef)
}

func (t Taxonomy) country(ref string) (string, error) {
	for _, c := range t.Countries {
		if match(ref, c.Slug, c.Name) || strings.EqualFold(strings.TrimSpace(ref), c.Code) {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("country %q: %w", ref, ErrUnknownRef)
}

func (t Taxonomy) fundingType(ref string) (string, error) {
	for _, f := range t.FundingTypes {
		if match(ref, f.Slug, f.Name) {
			return f.ID, nil
		}
	}
	return "", fmt.Errorf("funding type %q: %w", ref, ErrUnknownRef)
}

func (t Taxonomy) degreeLevel(ref string) (string, error) {
	for _, d := range t.DegreeLevels {
		if match(ref, d.Slug, d.Name) {
			return d.ID, nil
		}
	}
	return "", fmt.Errorf("degree level %q: %w", ref, ErrUnknownRef)
}

func (t Taxonomy) tag(ref string) (string, error) {
	for _, tg := range t.Tags {
		if match(ref, tg.Slug, tg.Name) {
			return tg.ID, nil
		}
	}
	return "", fmt.Errorf("tag %q: %w", ref, ErrUnknownRef)
}

// PostRequest builds the create payload for d. The body is rendered to
// HTML; a missing slug comes from the title and a missing excerpt from the
// first 200 characters of the content. Status defaults to draft.
func (d Document) PostRequest(tax Taxonomy) (model.PostRequest, error) {
	var meta PostMeta
	if err := d.Decode(&meta); err != nil {
		return model.PostRequest{}, fmt.Errorf("decode frontmatter: %w", err)
	}
	if strings.TrimSpace(meta.Title) == "" {
		return model.PostRequest{}, errors.New("frontmatter: title is required")
	}
	html, err := d.HTML()
	if err != nil {
		return model.PostRequest{}, fmt.Errorf("render body: %w", err)
	}

	status := model.Status(strings.ToLower(strings.TrimSpace(meta.Status)))
	if status == "" {
		status = model.StatusDraft
	}
	if !status.Valid() {
		return model.PostRequest{}, fmt.Errorf("frontmatter: invalid status %q", meta.Status)
	}

	req := model.PostRequest{
		Title:               meta.Title,
		Slug:                slug.OrFrom(meta.Slug, meta.Title),
		Excerpt:             meta.Excerpt,
		Content:             html,
		FeaturedImage:       meta.FeaturedImage,
		IsFeatured:          meta.Featured,
		Status:              status,
		ScholarshipProvider: meta.Provider,
		UniversityName:      meta.University,
		ProgramDuration:     meta.ProgramDuration,
		ApplyLink:           meta.ApplyLink,
		OfficialWebsite:     meta.OfficialWebsite,
		ApplicationMode:     meta.ApplicationMode,
		ContactEmail:        meta.ContactEmail,
		MetaDescription:     meta.MetaDescription,
		MetaKeywords:        meta.MetaKeywords,
		SEOTitle:            meta.SEOTitle,
	}
	if req.Excerpt == "" {
		req.Excerpt = listing.DefaultExcerpt(html, 200)
	}
	if meta.ApplicationDeadline != "" {
		t, err := model.ParseTime(meta.ApplicationDeadline)
		if err != nil {
			return model.PostRequest{}, fmt.Errorf("frontmatter: application_deadline: %w", err)
		}
		req.ApplicationDeadline = t.Format("2006-01-02")
	}
	if meta.Category != "" {
		if req.CategoryID, err = tax.category(meta.Category); err != nil {
			return model.PostRequest{}, err
		}
	}
	if meta.Country != "" {
		if req.CountryID, err = tax.country(meta.Country); err != nil {
			return model.PostRequest{}, err
		}
	}
	if meta.FundingType != "" {
		if req.FundingTypeID, err = tax.fundingType(meta.FundingType); err != nil {
			return model.PostRequest{}, err
		}
	}
	for _, ref := range meta.DegreeLevels {
		id, err := tax.degreeLevel(ref)
		if err != nil {
			return model.PostRequest{}, err
		}
		req.DegreeLevelIDs = append(req.DegreeLevelIDs, id)
	}
	if req.DegreeLevelIDs == nil {
		req.DegreeLevelIDs = []string{}
	}
	for _, ref := range meta.Tags {
		id, err := tax.tag(ref)
		if err != nil {
			return model.PostRequest{}, err
		}
		req.Tags = append(req.Tags, id)
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}
	return req, nil
}
