package api

import (
	"context"
	"fmt"
	"net/url"

	"scholarship-portal/internal/model"
)

// ListPosts returns every post, drafts included.
func (c *Client) ListPosts(ctx context.Context) ([]model.Post, error) {
	var out []model.Post
	if err := c.get(ctx, "/posts", &out, TagPost); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPost(ctx context.Context, id string) (*model.Post, error) {
	var out model.Post
	if err := c.get(ctx, "/posts/"+url.PathEscape(id), &out, TagPost); err != nil {
		return nil, err
	}
	return &out, nil
}

// PostBySlug resolves a published post by slug. The API has no slug
// endpoint for posts, so the full list is scanned.
func (c *Client) PostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	posts, err := c.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Slug == slug && posts[i].Published() {
			return &posts[i], nil
		}
	}
	return nil, fmt.Errorf("post %q: %w", slug, ErrNotFound)
}

func (c *Client) CreatePost(ctx context.Context, req model.PostRequest) (*model.Post, error) {
	var out model.Post
	if err := c.send(ctx, "POST", "/posts", req, &out, TagPost); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePost(ctx context.Context, id string, req model.PostRequest) (*model.Post, error) {
	var out model.Post
	if err := c.send(ctx, "PUT", "/posts/"+url.PathEscape(id), req, &out, TagPost); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.send(ctx, "DELETE", "/posts/"+url.PathEscape(id), nil, nil, TagPost)
}

func (c *Client) UpdatePostStatus(ctx context.Context, id string, status model.Status) error {
	return c.send(ctx, "PATCH", "/posts/"+url.PathEscape(id)+"/status", model.StatusRequest{Status: status}, nil, TagPost)
}

// CategoryPosts is the response of GET /categories/{slug}/posts.
type CategoryPosts struct {
	Data     []model.Post    `json:"data"`
	Category *model.Category `json:"category"`
}

// CountryPosts is the response of GET /countries/{slug}/posts.
type CountryPosts struct {
	Data    []model.Post   `json:"data"`
	Country *model.Country `json:"country"`
}

func (c *Client) PostsByCategorySlug(ctx context.Context, slug string) (*CategoryPosts, error) {
	var out CategoryPosts
	if err := c.getRaw(ctx, "/categories/"+url.PathEscape(slug)+"/posts", &out, TagPost); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PostsByCountrySlug(ctx context.Context, slug string) (*CountryPosts, error) {
	var out CountryPosts
	if err := c.getRaw(ctx, "/countries/"+url.PathEscape(slug)+"/posts", &out, TagPost, TagCountry); err != nil {
		return nil, err
	}
	return &out, nil
}
