package seo

import (
	"encoding/json"
	"html/template"
	"strings"

	"scholarship-portal/internal/listing"
	"scholarship-portal/internal/model"
)

const schemaContext = "https://schema.org"

type thing struct {
	Type      string `json:"@type"`
	Name      string `json:"name"`
	LegalName string `json:"legalName,omitempty"`
	URL       string `json:"url,omitempty"`
	Logo      string `json:"logo,omitempty"`
}

// Scholarship is the schema.org Scholarship object for a post page.
func Scholarship(p model.Post, pageURL string) map[string]any {
	provider := thing{Type: "Organization", Name: firstNonEmpty(p.ScholarshipProvider, p.UniversityName, "Scholarship Provider")}
	if p.UniversityName != "" {
		provider.LegalName = p.UniversityName
	}
	ld := map[string]any{
		"@context":    schemaContext,
		"@type":       "Scholarship",
		"name":        p.Title,
		"description": firstNonEmpty(listing.StripHTML(p.Excerpt), listing.TextPreview(p.Content, 200)),
		"provider":    provider,
	}
	if p.UniversityName != "" {
		ld["award"] = thing{Type: "MonetaryGrant", Name: p.Title}
	}
	if !p.ApplicationDeadline.IsZero() {
		ld["applicationDeadline"] = p.ApplicationDeadline.Format("2006-01-02")
	}
	if p.EligibilityCriteria != "" {
		ld["eligibilityToWin"] = listing.StripHTML(p.EligibilityCriteria)
	}
	if p.ScholarshipBenefits != "" {
		ld["awardDetails"] = listing.StripHTML(p.ScholarshipBenefits)
	}
	ld["url"] = firstNonEmpty(p.ApplyLink, pageURL)
	if p.FeaturedImage != "" {
		ld["image"] = p.FeaturedImage
	}
	if p.Country != nil && p.Country.Name != "" {
		ld["areaServed"] = thing{Type: "Country", Name: p.Country.Name}
	}
	return ld
}

// JobPosting is the schema.org JobPosting object for a job page.
func JobPosting(j model.Job, pageURL string) map[string]any {
	ld := map[string]any{
		"@context":           schemaContext,
		"@type":              "JobPosting",
		"title":              j.Title,
		"description":        firstNonEmpty(j.Content, j.Excerpt, j.Title),
		"hiringOrganization": thing{Type: "Organization", Name: j.CompanyName, Logo: j.CompanyLogo},
		"url":                pageURL,
	}
	if !j.CreatedAt.IsZero() {
		ld["datePosted"] = j.CreatedAt.Format("2006-01-02")
	}
	if !j.ApplicationDeadline.IsZero() {
		ld["validThrough"] = j.ApplicationDeadline.Format("2006-01-02")
	}
	if j.EmploymentType != nil && j.EmploymentType.Name != "" {
		ld["employmentType"] = strings.ToUpper(strings.ReplaceAll(j.EmploymentType.Name, "-", "_"))
	}
	if j.RemoteWork == "remote" {
		ld["jobLocationType"] = "TELECOMMUTE"
	}
	if j.Country != nil && j.Country.Name != "" {
		ld["jobLocation"] = map[string]any{
			"@type": "Place",
			"address": map[string]any{
				"@type":          "PostalAddress",
				"addressCountry": firstNonEmpty(j.Country.Code, j.Country.Name),
			},
		}
	}
	return ld
}

// WebSite is the home page object with a sitelinks search box.
func WebSite(s Site) map[string]any {
	return map[string]any{
		"@context":    schemaContext,
		"@type":       "WebSite",
		"name":        s.Name,
		"url":         s.URL,
		"description": s.Description,
		"potentialAction": map[string]any{
			"@type":       "SearchAction",
			"target":      s.URL + "/blog?q={search_term_string}",
			"query-input": "required name=search_term_string",
		},
	}
}

// Organization describes the site publisher.
func Organization(s Site) map[string]any {
	return map[string]any{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     s.Name,
		"url":      s.URL,
	}
}

// Script renders ld as the body of a <script type="application/ld+json">.
// json.Marshal escapes <, > and & so the payload cannot close the tag.
func Script(ld any) (template.JS, error) {
	b, err := json.Marshal(ld)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
