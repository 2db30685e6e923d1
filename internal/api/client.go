// Package api is a typed client for the scholarship REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"scholarship-portal/internal/cache"
)

// Cache tags. Reads register their response under one or more tags and
// mutations drop every response carrying the tags they touch.
const (
	TagPost       = "Post"
	TagCountry    = "Country"
	TagJob        = "Job"
	TagNewsletter = "Newsletter"
)

// ErrNotFound is matched by errors.Is for any 404 response.
var ErrNotFound = errors.New("api: not found")

// Error is returned for responses outside the 2xx range.
type Error struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s %s failed: status=%d body=%s", e.Method, e.Path, e.Status, e.Body)
}

func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Client talks to the REST API. It is safe for concurrent use.
type Client struct {
	baseURL  string
	http     *http.Client
	cache    cache.Cache
	cacheTTL time.Duration
}

// New creates a client. baseURL should be like "http://localhost:5000/api"
// (no trailing slash). A nil cache disables caching.
func New(baseURL string, timeout time.Duration, c cache.Cache, cacheTTL time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if c == nil {
		c = cache.Nop{}
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get fetches path, serving it from the cache when possible, and decodes
// the payload into out.
func (c *Client) get(ctx context.Context, path string, out any, tags ...string) error {
	return c.fetch(ctx, path, out, decodeData, tags)
}

// getRaw is get for responses whose top-level object carries more than
// the "data" field.
func (c *Client) getRaw(ctx context.Context, path string, out any, tags ...string) error {
	return c.fetch(ctx, path, out, json.Unmarshal, tags)
}

func (c *Client) fetch(ctx context.Context, path string, out any, decode func([]byte, any) error, tags []string) error {
	if b, ok, err := c.cache.Get(ctx, path); err != nil {
		slog.Warn("api: cache read failed", "path", path, "err", err)
	} else if ok {
		if err := decode(b, out); err == nil {
			return nil
		}
	}
	b, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	if err := decode(b, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if err := c.cache.Set(ctx, path, b, c.cacheTTL, tags...); err != nil {
		slog.Warn("api: cache write failed", "path", path, "err", err)
	}
	return nil
}

// send issues a JSON mutation and invalidates the given tags on success.
// out may be nil.
func (c *Client) send(ctx context.Context, method, path string, body, out any, invalidate ...string) error {
	var payload io.Reader
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(b)
		contentType = "application/json"
	}
	b, err := c.do(ctx, method, path, payload, contentType)
	if err != nil {
		return err
	}
	c.invalidate(ctx, invalidate...)
	if out == nil || len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := decodeData(b, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) invalidate(ctx context.Context, tags ...string) {
	if len(tags) == 0 {
		return
	}
	if err := c.cache.Invalidate(ctx, tags...); err != nil {
		slog.Warn("api: cache invalidation failed", "tags", tags, "err", err)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Method: method, Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return b, nil
}

// decodeData accepts both a bare payload and one wrapped as {"data": ...}.
func decodeData(b []byte, out any) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
			return json.Unmarshal(env.Data, out)
		}
	}
	return json.Unmarshal(trimmed, out)
}
