package config

import "strings"

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // text or json
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// APIConfig points at the remote REST API the site mirrors.
type APIConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	Timeout  string `mapstructure:"timeout"`   // duration string, e.g., "10s"
	CacheTTL string `mapstructure:"cache_ttl"` // duration string; "0" disables caching
}

// SiteConfig controls public URLs and site-wide metadata.
type SiteConfig struct {
	URL         string `mapstructure:"url"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Keywords    string `mapstructure:"keywords"`
	AdClient    string `mapstructure:"ad_client"` // AdSense publisher id, empty disables ads
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string `mapstructure:"addr"`
	ReadTimeout     string `mapstructure:"read_timeout"`
	WriteTimeout    string `mapstructure:"write_timeout"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout"`
	MetricsEnabled  bool   `mapstructure:"metrics_enabled"`
	SubscribeLimit  int    `mapstructure:"subscribe_limit"` // newsletter requests per IP per minute
}

// AdminConfig protects the CMS with HTTP basic auth.
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"` // bcrypt hash, see `admin hash-password`
}

// S3Config is used when uploads go directly to a bucket.
type S3Config struct {
	Bucket        string `mapstructure:"bucket"`
	Region        string `mapstructure:"region"`
	Prefix        string `mapstructure:"prefix"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// UploadConfig selects where admin uploads are stored.
type UploadConfig struct {
	Backend     string   `mapstructure:"backend"` // api, s3 or none
	MaxBytes    int64    `mapstructure:"max_bytes"`
	ConvertWebP bool     `mapstructure:"convert_webp"`
	WebPQuality int      `mapstructure:"webp_quality"`
	S3          S3Config `mapstructure:"s3"`
}

// OpenAIConfig enables AI-written excerpts and digest summaries.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// DigestConfig controls the periodic scholarship digest.
type DigestConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Frequency  string `mapstructure:"frequency"` // daily or weekly
	Interval   string `mapstructure:"interval"`  // how often to evaluate
	TopN       int    `mapstructure:"top_n"`
	MinItems   int    `mapstructure:"min_items"`
	OutputDir  string `mapstructure:"output_dir"`
	Title      string `mapstructure:"title"`
	Preface    string `mapstructure:"preface"`
	Postscript string `mapstructure:"postscript"`
	Language   string `mapstructure:"language"`
}

// SitemapConfig controls the background sitemap refresher.
type SitemapConfig struct {
	Interval string `mapstructure:"interval"`
}

// Config is the top-level configuration structure.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Redis   RedisConfig   `mapstructure:"redis"`
	API     APIConfig     `mapstructure:"api"`
	Site    SiteConfig    `mapstructure:"site"`
	Server  ServerConfig  `mapstructure:"server"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Upload  UploadConfig  `mapstructure:"upload"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Digest  DigestConfig  `mapstructure:"digest"`
	Sitemap SitemapConfig `mapstructure:"sitemap"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.LogFormat == "" {
		c.App.LogFormat = "text"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:5000/api"
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.Timeout == "" {
		c.API.Timeout = "10s"
	}
	if c.API.CacheTTL == "" {
		c.API.CacheTTL = "5m"
	}
	if c.Site.URL == "" {
		c.Site.URL = "https://abroadscholarships.com"
	}
	c.Site.URL = strings.TrimRight(c.Site.URL, "/")
	if c.Site.Name == "" {
		c.Site.Name = "Abroad Scholarships"
	}
	if c.Site.Description == "" {
		c.Site.Description = "Find fully funded scholarships, study abroad opportunities and jobs worldwide."
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "5s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "30s"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Server.SubscribeLimit == 0 {
		c.Server.SubscribeLimit = 10
	}
	if c.Admin.Username == "" {
		c.Admin.Username = "admin"
	}
	if c.Upload.Backend == "" {
		c.Upload.Backend = "api"
	}
	c.Upload.Backend = strings.ToLower(c.Upload.Backend)
	if c.Upload.MaxBytes == 0 {
		c.Upload.MaxBytes = 5 * 1024 * 1024
	}
	if c.Upload.WebPQuality <= 0 || c.Upload.WebPQuality > 100 {
		c.Upload.WebPQuality = 85
	}
	if c.Upload.S3.Prefix == "" {
		c.Upload.S3.Prefix = "uploads"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Digest.Frequency == "" {
		c.Digest.Frequency = "weekly"
	}
	c.Digest.Frequency = strings.ToLower(c.Digest.Frequency)
	if c.Digest.Interval == "" {
		c.Digest.Interval = "30m"
	}
	if c.Digest.TopN == 0 {
		c.Digest.TopN = 10
	}
	if c.Digest.MinItems == 0 {
		c.Digest.MinItems = 3
	}
	if c.Digest.OutputDir == "" {
		c.Digest.OutputDir = "./out/digest"
	}
	if c.Sitemap.Interval == "" {
		c.Sitemap.Interval = "1h"
	}
}
