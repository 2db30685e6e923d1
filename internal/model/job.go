package model

// LocationType distinguishes national from international jobs.
type LocationType string

const (
	LocationNational      LocationType = "national"
	LocationInternational LocationType = "international"
)

// Job is an employment opportunity as returned by the API.
type Job struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Slug             string       `json:"slug"`
	Excerpt          string       `json:"excerpt,omitempty"`
	Content          string       `json:"content"`
	FeaturedImage    string       `json:"featured_image,omitempty"`
	IsFeatured       bool         `json:"is_featured"`
	Status           Status       `json:"status"`
	CompanyName      string       `json:"company_name"`
	CompanyLogo      string       `json:"company_logo,omitempty"`
	LocationType     LocationType `json:"location_type"`
	CountryID        string       `json:"country_id,omitempty"`
	EmploymentTypeID string       `json:"employment_type_id,omitempty"`
	SalaryRange      string       `json:"salary_range,omitempty"`
	RemoteWork       string       `json:"remote_work,omitempty"` // onsite, remote or hybrid

	ApplicationDeadline Time   `json:"application_deadline"`
	ApplyLink           string `json:"apply_link,omitempty"`
	ContactEmail        string `json:"contact_email,omitempty"`
	JobRequirements     string `json:"job_requirements,omitempty"`
	JobResponsibilities string `json:"job_responsibilities,omitempty"`
	Benefits            string `json:"benefits,omitempty"`
	ExperienceLevel     string `json:"experience_level,omitempty"`

	MetaDescription    string `json:"meta_description,omitempty"`
	MetaKeywords       string `json:"meta_keywords,omitempty"`
	SEOTitle           string `json:"seo_title,omitempty"`
	ScheduledPublishAt Time   `json:"scheduled_publish_at"`

	Country        *Country        `json:"countries,omitempty"`
	EmploymentType *EmploymentType `json:"employment_types,omitempty"`

	CreatedAt Time `json:"created_at"`
	UpdatedAt Time `json:"updated_at"`
}

// Published reports whether the job is publicly visible.
func (j Job) Published() bool {
	return j.Status == StatusPublished
}

// LastModified is updated_at, falling back to created_at.
func (j Job) LastModified() Time {
	if !j.UpdatedAt.IsZero() {
		return j.UpdatedAt
	}
	return j.CreatedAt
}

// JobRequest is the create/update payload for jobs.
type JobRequest struct {
	Title            string       `json:"title"`
	Slug             string       `json:"slug"`
	Excerpt          string       `json:"excerpt"`
	Content          string       `json:"content"`
	FeaturedImage    string       `json:"featured_image"`
	IsFeatured       bool         `json:"is_featured"`
	Status           Status       `json:"status"`
	CompanyName      string       `json:"company_name"`
	CompanyLogo      string       `json:"company_logo"`
	LocationType     LocationType `json:"location_type"`
	CountryID        string       `json:"country_id"`
	EmploymentTypeID string       `json:"employment_type_id"`
	SalaryRange      string       `json:"salary_range"`
	RemoteWork       string       `json:"remote_work"`

	ApplicationDeadline string `json:"application_deadline"`
	ApplyLink           string `json:"apply_link"`
	ContactEmail        string `json:"contact_email"`
	JobRequirements     string `json:"job_requirements"`
	JobResponsibilities string `json:"job_responsibilities"`
	Benefits            string `json:"benefits"`
	ExperienceLevel     string `json:"experience_level"`

	MetaDescription    string `json:"meta_description"`
	MetaKeywords       string `json:"meta_keywords"`
	SEOTitle           string `json:"seo_title"`
	ScheduledPublishAt string `json:"scheduled_publish_at"`
}
