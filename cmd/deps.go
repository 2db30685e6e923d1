package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"scholarship-portal/internal/ai"
	"scholarship-portal/internal/api"
	"scholarship-portal/internal/cache"
	"scholarship-portal/internal/config"
	"scholarship-portal/internal/seo"
	"scholarship-portal/internal/storage"
	"scholarship-portal/internal/upload"
	"scholarship-portal/worker"
)

const cachePrefix = "sp:cache:"

func parseDuration(key, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return d, nil
}

// newAPIClient caches reads in Redis when it is enabled and in process
// memory otherwise.
func newAPIClient(cfg config.Config, rdb *redis.Client) (*api.Client, error) {
	timeout, err := parseDuration("api.timeout", cfg.API.Timeout)
	if err != nil {
		return nil, err
	}
	ttl, err := parseDuration("api.cache_ttl", cfg.API.CacheTTL)
	if err != nil {
		return nil, err
	}
	var c cache.Cache = cache.NewMemory()
	switch {
	case ttl <= 0:
		c = cache.Nop{}
	case rdb != nil:
		c = cache.NewRedisCache(rdb, cachePrefix)
	}
	return api.New(cfg.API.BaseURL, timeout, c, ttl), nil
}

// newWriter returns nil when no OpenAI key is configured.
func newWriter(cfg config.OpenAIConfig) (ai.Writer, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	w, err := ai.NewOpenAI(ai.Config{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// newUploader selects the storage backend from upload.backend.
func newUploader(ctx context.Context, cfg config.UploadConfig, client *api.Client) (*upload.Uploader, error) {
	switch cfg.Backend {
	case "api":
		return upload.New(upload.NewAPIBackend(client), cfg), nil
	case "s3":
		be, err := upload.NewS3Backend(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return upload.New(be, cfg), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown upload.backend %q", cfg.Backend)
	}
}

func siteFromConfig(cfg config.SiteConfig) seo.Site {
	return seo.Site{URL: cfg.URL, Name: cfg.Name, Description: cfg.Description, Keywords: cfg.Keywords}
}

func newDigestBuilder(cfg config.Config, client *api.Client, store *storage.RedisStore, writer ai.Writer) (*worker.DigestBuilder, error) {
	interval, err := parseDuration("digest.interval", cfg.Digest.Interval)
	if err != nil {
		return nil, err
	}
	switch cfg.Digest.Frequency {
	case "daily", "weekly":
	default:
		return nil, fmt.Errorf("invalid digest.frequency %q", cfg.Digest.Frequency)
	}
	d := &worker.DigestBuilder{
		Posts:      client,
		Writer:     writer,
		Frequency:  cfg.Digest.Frequency,
		TopN:       cfg.Digest.TopN,
		MinItems:   cfg.Digest.MinItems,
		OutputDir:  cfg.Digest.OutputDir,
		Interval:   interval,
		Title:      cfg.Digest.Title,
		Preface:    cfg.Digest.Preface,
		Postscript: cfg.Digest.Postscript,
		Language:   cfg.Digest.Language,
		SiteURL:    cfg.Site.URL,
	}
	if store != nil {
		d.Store = store
	} else {
		slog.Warn("digest: redis disabled, tracking published periods by output file")
	}
	return d, nil
}
