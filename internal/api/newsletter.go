package api

import (
	"context"

	"scholarship-portal/internal/model"
)

func (c *Client) Subscribe(ctx context.Context, email string) (*model.NewsletterResponse, error) {
	var out model.NewsletterResponse
	if err := c.send(ctx, "POST", "/newsletter/subscribe", model.SubscribeRequest{Email: email}, &out, TagNewsletter); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Unsubscribe(ctx context.Context, email string) (*model.NewsletterResponse, error) {
	var out model.NewsletterResponse
	if err := c.send(ctx, "POST", "/newsletter/unsubscribe", model.SubscribeRequest{Email: email}, &out, TagNewsletter); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListSubscribers(ctx context.Context) ([]model.Subscriber, error) {
	var out []model.Subscriber
	if err := c.get(ctx, "/newsletter/subscribers", &out, TagNewsletter); err != nil {
		return nil, err
	}
	return out, nil
}
