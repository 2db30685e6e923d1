package api

import (
	"context"
	"net/url"

	"scholarship-portal/internal/model"
)

// Countries

func (c *Client) ListCountries(ctx context.Context) ([]model.Country, error) {
	var out []model.Country
	if err := c.get(ctx, "/countries", &out, TagPost, TagCountry); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCountry(ctx context.Context, req model.CountryRequest) (*model.Country, error) {
	var out model.Country
	if err := c.send(ctx, "POST", "/countries", req, &out, TagCountry, TagPost); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCountry(ctx context.Context, id string, req model.CountryRequest) (*model.Country, error) {
	var out model.Country
	if err := c.send(ctx, "PUT", "/countries/"+url.PathEscape(id), req, &out, TagCountry, TagPost); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCountry(ctx context.Context, id string) error {
	return c.send(ctx, "DELETE", "/countries/"+url.PathEscape(id), nil, nil, TagCountry, TagPost)
}

// Categories

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	if err := c.get(ctx, "/categories", &out, TagPost); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, req model.TaxonomyRequest) (*model.Category, error) {
	var out model.Category
	if err := c.send(ctx, "POST", "/categories", req, &out, TagPost); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, req model.TaxonomyRequest) (*model.Category, error) {
	var out model.Category
	if err := c.send(ctx, "PUT", "/categories/"+url.PathEscape(id), req, &out, TagPost); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.send(ctx, "DELETE", "/categories/"+url.PathEscape(id), nil, nil, TagPost)
}

// Tags

func (c *Client) ListTags(ctx context.Context) ([]model.Tag, error) {
	var out []model.Tag
	if err := c.get(ctx, "/tags", &out, TagPost); err != nil {
		return nil, err
	}
	return out, nil
}

// tagRequest drops Description, which tags do not have.
type tagRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (c *Client) CreateTag(ctx context.Context, req model.TaxonomyRequest) (*model.Tag, error) {
	var out model.Tag
	if err := c.send(ctx, "POST", "/tags", tagRequest{req.Name, req.Slug}, &out, TagPost); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTag(ctx context.Context, id string, req model.TaxonomyRequest) (*model.Tag, error) {
	var out model.Tag
	if err := c.send(ctx, "PUT", "/tags/"+url.PathEscape(id), tagRequest{req.Name, req.Slug}, &out, TagPost); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTag(ctx context.Context, id string) error {
	return c.send(ctx, "DELETE", "/tags/"+url.PathEscape(id), nil, nil, TagPost)
}

// Degree levels

func (c *Client) ListDegreeLevels(ctx context.Context) ([]model.DegreeLevel, error) {
	var out []model.DegreeLevel
	if err := c.get(ctx, "/degree-levels", &out, TagPost); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateDegreeLevel(ctx context.Context, req model.TaxonomyRequest) (*model.DegreeLevel, error) {
	var out model.DegreeLevel
	if err := c.send(ctx, "POST", "/degree-levels", req, &out, TagPost); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDegreeLevel(ctx context.Context, id string, req model.TaxonomyRequest) (*model.DegreeLevel, error) {
	var out model.DegreeLevel
	if err := c.send(ctx, "PUT", "/degree-levels/"+url.PathEscape(id), req, &out, TagPost); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDegreeLevel(ctx context.Context, id string) error {
	return c.send(ctx, "DELETE", "/degree-levels/"+url.PathEscape(id), nil, nil, TagPost)
}

// Read-only classifications

func (c *Client) ListFundingTypes(ctx context.Context) ([]model.FundingType, error) {
	var out []model.FundingType
	if err := c.get(ctx, "/funding-types", &out, TagPost); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListEmploymentTypes(ctx context.Context) ([]model.EmploymentType, error) {
	var out []model.EmploymentType
	if err := c.get(ctx, "/employment-types", &out, TagJob); err != nil {
		return nil, err
	}
	return out, nil
}
