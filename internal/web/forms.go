package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"scholarship-portal/internal/api"
	"scholarship-portal/internal/listing"
	"scholarship-portal/internal/model"
	"scholarship-portal/internal/slug"
)

// formError is a validation failure shown to the editor as is.
type formError struct{ msg string }

func (e *formError) Error() string { return e.msg }

func invalid(msg string) error { return &formError{msg: msg} }

func formMessage(err error) (string, bool) {
	var fe *formError
	if errors.As(err, &fe) {
		return fe.msg, true
	}
	return "", false
}

// formStatus reads which submit button was used. "draft" and "publish"
// override the status select.
func formStatus(v url.Values) model.Status {
	switch v.Get("action") {
	case "publish":
		return model.StatusPublished
	case "draft":
		return model.StatusDraft
	}
	if s := model.Status(v.Get("status")); s.Valid() {
		return s
	}
	return model.StatusDraft
}

func checked(v url.Values, key string) bool {
	switch strings.ToLower(v.Get(key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func text(v url.Values, key string) string {
	return strings.TrimSpace(v.Get(key))
}

// dateValue normalizes a date or datetime input to YYYY-MM-DD.
func dateValue(v url.Values, key, label string) (string, error) {
	s := text(v, key)
	if s == "" {
		return "", nil
	}
	t, err := model.ParseTime(s)
	if err != nil {
		return "", invalid(label + " must be a valid date")
	}
	return t.Format("2006-01-02"), nil
}

// dateTimeValue keeps the time of day for scheduled publishing.
func dateTimeValue(v url.Values, key, label string) (string, error) {
	s := text(v, key)
	if s == "" {
		return "", nil
	}
	t, err := model.ParseTime(s)
	if err != nil {
		return "", invalid(label + " must be a valid date and time")
	}
	return t.UTC().Format(time.RFC3339), nil
}

// excerptLen is the length of an excerpt filled in from content.
const excerptLen = 200

// idList is multi for editor selections: nothing selected is sent as an
// empty list so an update clears the stored one.
func idList(v url.Values, key string) []string {
	if ids := multi(v, key); ids != nil {
		return ids
	}
	return []string{}
}

// postRequestForm builds the API payload from the post editor.
func postRequestForm(v url.Values) (model.PostRequest, error) {
	req := model.PostRequest{
		Title:                  text(v, "title"),
		Excerpt:                text(v, "excerpt"),
		Content:                v.Get("content"),
		FeaturedImage:          text(v, "featured_image"),
		IsFeatured:             checked(v, "is_featured"),
		Status:                 formStatus(v),
		CategoryID:             text(v, "category_id"),
		CountryID:              text(v, "country_id"),
		FundingTypeID:          text(v, "funding_type_id"),
		Tags:                   idList(v, "tags"),
		DegreeLevelIDs:         idList(v, "degree_level_ids"),
		MetaDescription:        text(v, "meta_description"),
		MetaKeywords:           text(v, "meta_keywords"),
		SEOTitle:               text(v, "seo_title"),
		ScholarshipProvider:    text(v, "scholarship_provider"),
		UniversityName:         text(v, "university_name"),
		ProgramDuration:        text(v, "program_duration"),
		EligibleNationalities:  text(v, "eligible_nationalities"),
		ApplicationFee:         checked(v, "application_fee"),
		OfficialWebsite:        text(v, "official_website"),
		ApplyLink:              text(v, "apply_link"),
		ScholarshipBenefits:    v.Get("scholarship_benefits"),
		EligibilityCriteria:    v.Get("eligibility_criteria"),
		RequiredDocuments:      v.Get("required_documents"),
		HowToApply:             v.Get("how_to_apply"),
		Notes:                  v.Get("notes"),
		ContactEmail:           text(v, "contact_email"),
		ApplicationMode:        text(v, "application_mode"),
		HostUniversityLogo:     text(v, "host_university_logo"),
		ScholarshipBrochurePDF: text(v, "scholarship_brochure_pdf"),
		VideoEmbed:             v.Get("video_embed"),
	}
	if req.Title == "" {
		return req, invalid("Title is required")
	}
	req.Slug = slug.OrFrom(v.Get("slug"), req.Title)
	if req.Excerpt == "" {
		req.Excerpt = listing.DefaultExcerpt(req.Content, excerptLen)
	}

	var err error
	if req.ApplicationDeadline, err = dateValue(v, "application_deadline", "Application deadline"); err != nil {
		return req, err
	}
	if req.ScheduledPublishAt, err = dateTimeValue(v, "scheduled_publish_at", "Scheduled publish time"); err != nil {
		return req, err
	}
	if s := text(v, "application_fee_amount"); s != "" {
		f, perr := strconv.ParseFloat(s, 64)
		if perr != nil || f < 0 {
			return req, invalid("Application fee amount must be a positive number")
		}
		req.ApplicationFeeAmount = f
	}
	if s := text(v, "available_seats"); s != "" {
		n, perr := strconv.Atoi(s)
		if perr != nil || n < 0 {
			return req, invalid("Available seats must be a whole number")
		}
		req.AvailableSeats = n
	}
	if s := text(v, "faq_data"); s != "" {
		if !json.Valid([]byte(s)) {
			return req, invalid("FAQ data must be valid JSON")
		}
		req.FAQData = json.RawMessage(s)
	}
	return req, nil
}

// postRequestFrom fills the editor from a stored post.
func postRequestFrom(p model.Post) model.PostRequest {
	req := model.PostRequest{
		Title:                  p.Title,
		Slug:                   p.Slug,
		Excerpt:                p.Excerpt,
		Content:                p.Content,
		FeaturedImage:          p.FeaturedImage,
		IsFeatured:             p.IsFeatured,
		Status:                 p.Status,
		CategoryID:             p.CategoryID,
		CountryID:              p.CountryID,
		FundingTypeID:          p.FundingTypeID,
		Tags:                   p.Tags.IDs(),
		MetaDescription:        p.MetaDescription,
		MetaKeywords:           p.MetaKeywords,
		SEOTitle:               p.SEOTitle,
		ScholarshipProvider:    p.ScholarshipProvider,
		UniversityName:         p.UniversityName,
		ProgramDuration:        p.ProgramDuration,
		EligibleNationalities:  p.EligibleNationalities,
		ApplicationFee:         p.ApplicationFee,
		ApplicationFeeAmount:   p.ApplicationFeeAmount,
		OfficialWebsite:        p.OfficialWebsite,
		ApplyLink:              p.ApplyLink,
		ScholarshipBenefits:    p.ScholarshipBenefits,
		EligibilityCriteria:    p.EligibilityCriteria,
		RequiredDocuments:      p.RequiredDocuments,
		HowToApply:             p.HowToApply,
		Notes:                  p.Notes,
		ContactEmail:           p.ContactEmail,
		ApplicationMode:        p.ApplicationMode,
		AvailableSeats:         p.AvailableSeats,
		HostUniversityLogo:     p.HostUniversityLogo,
		ScholarshipBrochurePDF: p.ScholarshipBrochurePDF,
		VideoEmbed:             p.VideoEmbed,
		FAQData:                p.FAQData,
	}
	if !p.ApplicationDeadline.IsZero() {
		req.ApplicationDeadline = p.ApplicationDeadline.UTC().Format("2006-01-02")
	}
	if !p.ScheduledPublishAt.IsZero() {
		req.ScheduledPublishAt = p.ScheduledPublishAt.UTC().Format("2006-01-02T15:04")
	}
	for _, dl := range p.DegreeLevels {
		req.DegreeLevelIDs = append(req.DegreeLevelIDs, dl.ID)
	}
	return req
}

func jobRequestForm(v url.Values) (model.JobRequest, error) {
	req := model.JobRequest{
		Title:               text(v, "title"),
		Excerpt:             text(v, "excerpt"),
		Content:             v.Get("content"),
		FeaturedImage:       text(v, "featured_image"),
		IsFeatured:          checked(v, "is_featured"),
		Status:              formStatus(v),
		CompanyName:         text(v, "company_name"),
		CompanyLogo:         text(v, "company_logo"),
		LocationType:        model.LocationType(text(v, "location_type")),
		CountryID:           text(v, "country_id"),
		EmploymentTypeID:    text(v, "employment_type_id"),
		SalaryRange:         text(v, "salary_range"),
		RemoteWork:          text(v, "remote_work"),
		ApplyLink:           text(v, "apply_link"),
		ContactEmail:        text(v, "contact_email"),
		JobRequirements:     v.Get("job_requirements"),
		JobResponsibilities: v.Get("job_responsibilities"),
		Benefits:            v.Get("benefits"),
		ExperienceLevel:     text(v, "experience_level"),
		MetaDescription:     text(v, "meta_description"),
		MetaKeywords:        text(v, "meta_keywords"),
		SEOTitle:            text(v, "seo_title"),
	}
	if req.Title == "" {
		return req, invalid("Title is required")
	}
	if req.CompanyName == "" {
		return req, invalid("Company name is required")
	}
	switch req.LocationType {
	case model.LocationNational, model.LocationInternational:
	case "":
		req.LocationType = model.LocationNational
	default:
		return req, invalid("Location type must be national or international")
	}
	req.Slug = slug.OrFrom(v.Get("slug"), req.Title)

	var err error
	if req.ApplicationDeadline, err = dateValue(v, "application_deadline", "Application deadline"); err != nil {
		return req, err
	}
	if req.ScheduledPublishAt, err = dateTimeValue(v, "scheduled_publish_at", "Scheduled publish time"); err != nil {
		return req, err
	}
	return req, nil
}

func jobRequestFrom(j model.Job) model.JobRequest {
	req := model.JobRequest{
		Title:               j.Title,
		Slug:                j.Slug,
		Excerpt:             j.Excerpt,
		Content:             j.Content,
		FeaturedImage:       j.FeaturedImage,
		IsFeatured:          j.IsFeatured,
		Status:              j.Status,
		CompanyName:         j.CompanyName,
		CompanyLogo:         j.CompanyLogo,
		LocationType:        j.LocationType,
		CountryID:           j.CountryID,
		EmploymentTypeID:    j.EmploymentTypeID,
		SalaryRange:         j.SalaryRange,
		RemoteWork:          j.RemoteWork,
		ApplyLink:           j.ApplyLink,
		ContactEmail:        j.ContactEmail,
		JobRequirements:     j.JobRequirements,
		JobResponsibilities: j.JobResponsibilities,
		Benefits:            j.Benefits,
		ExperienceLevel:     j.ExperienceLevel,
		MetaDescription:     j.MetaDescription,
		MetaKeywords:        j.MetaKeywords,
		SEOTitle:            j.SEOTitle,
	}
	if !j.ApplicationDeadline.IsZero() {
		req.ApplicationDeadline = j.ApplicationDeadline.UTC().Format("2006-01-02")
	}
	if !j.ScheduledPublishAt.IsZero() {
		req.ScheduledPublishAt = j.ScheduledPublishAt.UTC().Format("2006-01-02T15:04")
	}
	return req
}

func taxonomyRequestForm(v url.Values) (model.TaxonomyRequest, error) {
	req := model.TaxonomyRequest{
		Name:        text(v, "name"),
		Description: text(v, "description"),
	}
	if req.Name == "" {
		return req, invalid("Name is required")
	}
	req.Slug = slug.OrFrom(v.Get("slug"), req.Name)
	return req, nil
}

func countryRequestForm(v url.Values) (model.CountryRequest, error) {
	req := model.CountryRequest{
		Name:        text(v, "name"),
		Code:        strings.ToUpper(text(v, "code")),
		FlagEmoji:   text(v, "flag_emoji"),
		FlagImage:   text(v, "flag_image"),
		Region:      text(v, "region"),
		Description: text(v, "description"),
	}
	if req.Name == "" || req.Code == "" {
		return req, invalid("Country name and code are required")
	}
	req.Slug = slug.OrFrom(v.Get("slug"), req.Name)
	return req, nil
}

// apiMessage extracts {"message": ...} or {"error": ...} from an API error
// body.
func apiMessage(e *api.Error) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal([]byte(e.Body), &body) != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// parseForm accepts urlencoded and multipart bodies.
func parseForm(r *http.Request) (url.Values, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

// postForm returns the urlencoded body, parsing it when methodOverride has
// not already done so.
func postForm(r *http.Request) url.Values {
	_ = r.ParseForm()
	return r.PostForm
}
