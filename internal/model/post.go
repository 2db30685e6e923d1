package model

import "encoding/json"

// Status is the publication state shared by posts and jobs.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Toggle flips published to draft and anything else to published.
func (s Status) Toggle() Status {
	if s == StatusPublished {
		return StatusDraft
	}
	return StatusPublished
}

// FullyFundedSlug identifies the funding type ranked first by the
// "fully-funded" sort.
const FullyFundedSlug = "fully-funded"

// Post is a scholarship as returned by the API.
type Post struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Slug          string  `json:"slug"`
	Excerpt       string  `json:"excerpt,omitempty"`
	Content       string  `json:"content"`
	FeaturedImage string  `json:"featured_image,omitempty"`
	IsFeatured    bool    `json:"is_featured"`
	Status        Status  `json:"status"`
	CategoryID    string  `json:"category_id,omitempty"`
	CountryID     string  `json:"country_id,omitempty"`
	FundingTypeID string  `json:"funding_type_id,omitempty"`
	Tags          TagRefs `json:"tags,omitempty"`
	Views         int     `json:"views"`

	Category     *Category     `json:"categories,omitempty"`
	Country      *Country      `json:"countries,omitempty"`
	FundingType  *FundingType  `json:"funding_types,omitempty"`
	DegreeLevels []DegreeLevel `json:"degree_levels,omitempty"`

	MetaDescription string `json:"meta_description,omitempty"`
	MetaKeywords    string `json:"meta_keywords,omitempty"`
	SEOTitle        string `json:"seo_title,omitempty"`

	ScholarshipProvider    string          `json:"scholarship_provider,omitempty"`
	UniversityName         string          `json:"university_name,omitempty"`
	ApplicationDeadline    Time            `json:"application_deadline"`
	ProgramDuration        string          `json:"program_duration,omitempty"`
	EligibleNationalities  string          `json:"eligible_nationalities,omitempty"`
	ApplicationFee         bool            `json:"application_fee"`
	ApplicationFeeAmount   float64         `json:"application_fee_amount,omitempty"`
	OfficialWebsite        string          `json:"official_website,omitempty"`
	ApplyLink              string          `json:"apply_link,omitempty"`
	ScholarshipBenefits    string          `json:"scholarship_benefits,omitempty"`
	EligibilityCriteria    string          `json:"eligibility_criteria,omitempty"`
	RequiredDocuments      string          `json:"required_documents,omitempty"`
	HowToApply             string          `json:"how_to_apply,omitempty"`
	Notes                  string          `json:"notes,omitempty"`
	ContactEmail           string          `json:"contact_email,omitempty"`
	ApplicationMode        string          `json:"application_mode,omitempty"`
	AvailableSeats         int             `json:"available_seats,omitempty"`
	HostUniversityLogo     string          `json:"host_university_logo,omitempty"`
	ScholarshipBrochurePDF string          `json:"scholarship_brochure_pdf,omitempty"`
	VideoEmbed             string          `json:"video_embed,omitempty"`
	FAQData                json.RawMessage `json:"faq_data,omitempty"`
	ScheduledPublishAt     Time            `json:"scheduled_publish_at"`

	CreatedAt Time `json:"created_at"`
	UpdatedAt Time `json:"updated_at"`
}

// Published reports whether the post is publicly visible.
func (p Post) Published() bool {
	return p.Status == StatusPublished
}

// HasDegreeLevel reports whether the post carries the degree level id.
func (p Post) HasDegreeLevel(id string) bool {
	for _, dl := range p.DegreeLevels {
		if dl.ID == id {
			return true
		}
	}
	return false
}

// FAQ is one question and answer pair from faq_data.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQs decodes faq_data. Malformed data yields no entries.
func (p Post) FAQs() []FAQ {
	if len(p.FAQData) == 0 {
		return nil
	}
	var out []FAQ
	if err := json.Unmarshal(p.FAQData, &out); err != nil {
		return nil
	}
	return out
}

// LastModified is updated_at, falling back to created_at.
func (p Post) LastModified() Time {
	if !p.UpdatedAt.IsZero() {
		return p.UpdatedAt
	}
	return p.CreatedAt
}

// PostRequest is the create/update payload for scholarships. Updates send
// the whole editor state, so empty strings and an empty degree_level_ids
// clear the stored values. Zero numbers are left out, as the editor does
// for blank numeric inputs.
type PostRequest struct {
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	FeaturedImage string   `json:"featured_image"`
	IsFeatured    bool     `json:"is_featured"`
	Status        Status   `json:"status"`
	CategoryID    string   `json:"category_id"`
	CountryID     string   `json:"country_id"`
	Tags          []string `json:"tags"`

	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
	SEOTitle        string `json:"seo_title"`

	ScholarshipProvider    string          `json:"scholarship_provider"`
	UniversityName         string          `json:"university_name"`
	FundingTypeID          string          `json:"funding_type_id"`
	ApplicationDeadline    string          `json:"application_deadline"`
	ProgramDuration        string          `json:"program_duration"`
	EligibleNationalities  string          `json:"eligible_nationalities"`
	ApplicationFee         bool            `json:"application_fee"`
	ApplicationFeeAmount   float64         `json:"application_fee_amount,omitempty"`
	OfficialWebsite        string          `json:"official_website"`
	ApplyLink              string          `json:"apply_link"`
	ScholarshipBenefits    string          `json:"scholarship_benefits"`
	EligibilityCriteria    string          `json:"eligibility_criteria"`
	RequiredDocuments      string          `json:"required_documents"`
	HowToApply             string          `json:"how_to_apply"`
	Notes                  string          `json:"notes"`
	ContactEmail           string          `json:"contact_email"`
	ApplicationMode        string          `json:"application_mode"`
	AvailableSeats         int             `json:"available_seats,omitempty"`
	HostUniversityLogo     string          `json:"host_university_logo"`
	ScholarshipBrochurePDF string          `json:"scholarship_brochure_pdf"`
	VideoEmbed             string          `json:"video_embed"`
	FAQData                json.RawMessage `json:"faq_data"`
	ScheduledPublishAt     string          `json:"scheduled_publish_at"`
	DegreeLevelIDs         []string        `json:"degree_level_ids"`
}

// StatusRequest is the payload for PATCH /posts/{id}/status and /jobs/{id}/status.
type StatusRequest struct {
	Status Status `json:"status"`
}
