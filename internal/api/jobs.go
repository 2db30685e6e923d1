package api

import (
	"context"
	"net/url"

	"scholarship-portal/internal/model"
)

// ListJobs returns jobs, optionally restricted to one location type.
// An empty locationType or "all" lists everything.
func (c *Client) ListJobs(ctx context.Context, locationType string) ([]model.Job, error) {
	path := "/jobs"
	if locationType != "" && locationType != "all" {
		path += "?location_type=" + url.QueryEscape(locationType)
	}
	var out []model.Job
	if err := c.get(ctx, path, &out, TagJob); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (*model.Job, error) {
	var out model.Job
	if err := c.get(ctx, "/jobs/"+url.PathEscape(id), &out, TagJob); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetJobBySlug(ctx context.Context, slug string) (*model.Job, error) {
	var out model.Job
	if err := c.get(ctx, "/jobs/slug/"+url.PathEscape(slug), &out, TagJob); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateJob(ctx context.Context, req model.JobRequest) (*model.Job, error) {
	var out model.Job
	if err := c.send(ctx, "POST", "/jobs", req, &out, TagJob); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateJob(ctx context.Context, id string, req model.JobRequest) (*model.Job, error) {
	var out model.Job
	if err := c.send(ctx, "PUT", "/jobs/"+url.PathEscape(id), req, &out, TagJob); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.send(ctx, "DELETE", "/jobs/"+url.PathEscape(id), nil, nil, TagJob)
}

func (c *Client) UpdateJobStatus(ctx context.Context, id string, status model.Status) error {
	return c.send(ctx, "PATCH", "/jobs/"+url.PathEscape(id)+"/status", model.StatusRequest{Status: status}, nil, TagJob)
}
