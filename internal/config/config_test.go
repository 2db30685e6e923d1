package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillDefaults(t *testing.T) {
	var c Config
	c.FillDefaults()
	assert.Equal(t, "info", c.App.LogLevel)
	assert.Equal(t, "http://localhost:5000/api", c.API.BaseURL)
	assert.Equal(t, "5m", c.API.CacheTTL)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, 10, c.Server.SubscribeLimit)
	assert.Equal(t, "api", c.Upload.Backend)
	assert.Equal(t, 85, c.Upload.WebPQuality)
	assert.Equal(t, "weekly", c.Digest.Frequency)
	assert.Equal(t, "1h", c.Sitemap.Interval)
}

func TestFillDefaults_Normalizes(t *testing.T) {
	c := Config{
		API:    APIConfig{BaseURL: "https://api.example.com/api/"},
		Site:   SiteConfig{URL: "https://example.com/"},
		Upload: UploadConfig{Backend: "S3", WebPQuality: 120},
		Digest: DigestConfig{Frequency: "Daily", TopN: 5},
	}
	c.FillDefaults()
	assert.Equal(t, "https://api.example.com/api", c.API.BaseURL)
	assert.Equal(t, "https://example.com", c.Site.URL)
	assert.Equal(t, "s3", c.Upload.Backend)
	assert.Equal(t, 85, c.Upload.WebPQuality)
	assert.Equal(t, "daily", c.Digest.Frequency)
	assert.Equal(t, 5, c.Digest.TopN)
}
