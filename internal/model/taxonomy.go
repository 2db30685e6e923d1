package model

import (
	"bytes"
	"encoding/json"
)

// Country is a study destination.
type Country struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Slug        string `json:"slug"`
	FlagEmoji   string `json:"flag_emoji,omitempty"`
	FlagImage   string `json:"flag_image,omitempty"`
	Region      string `json:"region,omitempty"`
	Description string `json:"description,omitempty"`
}

// Category groups scholarships by subject or kind.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// DegreeLevel is a classification such as Master's or PhD.
type DegreeLevel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// Tag is a free-form label attached to posts.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// FundingType is a classification such as fully-funded.
type FundingType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// EmploymentType is a classification such as full-time.
type EmploymentType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TaxonomyRequest is the create/update payload shared by categories,
// degree levels and tags. The client drops Description for tags.
type TaxonomyRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// CountryRequest is the create/update payload for countries.
type CountryRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Slug        string `json:"slug"`
	FlagEmoji   string `json:"flag_emoji"`
	FlagImage   string `json:"flag_image"`
	Region      string `json:"region"`
	Description string `json:"description"`
}

// TagRefs holds post tags, which the API sends either as ids or as objects.
type TagRefs []Tag

func (r *TagRefs) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*r = nil
		return nil
	}
	var objs []Tag
	if err := json.Unmarshal(b, &objs); err == nil {
		*r = objs
		return nil
	}
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	out := make([]Tag, 0, len(ids))
	for _, id := range ids {
		out = append(out, Tag{ID: id})
	}
	*r = out
	return nil
}

// IDs returns the tag ids in order.
func (r TagRefs) IDs() []string {
	out := make([]string, 0, len(r))
	for _, t := range r {
		out = append(out, t.ID)
	}
	return out
}
