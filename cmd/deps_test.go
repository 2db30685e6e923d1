package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"scholarship-portal/internal/config"
)

func testConfig() config.Config {
	var c config.Config
	c.FillDefaults()
	return c
}

func TestParseDuration(t *testing.T) {
	d, err := parseDuration("api.timeout", "1m30s")
	require.NoError(t, err)
	assert.Equal(t, "1m30s", d.String())

	_, err = parseDuration("api.timeout", "soon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.timeout")
}

func TestNewAPIClient(t *testing.T) {
	c, err := newAPIClient(testConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", c.BaseURL())

	cfg := testConfig()
	cfg.API.CacheTTL = "0"
	_, err = newAPIClient(cfg, nil)
	require.NoError(t, err)

	cfg.API.Timeout = "x"
	_, err = newAPIClient(cfg, nil)
	assert.Error(t, err)
}

func TestNewWriter(t *testing.T) {
	w, err := newWriter(config.OpenAIConfig{})
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestNewUploader(t *testing.T) {
	cfg := testConfig()
	client, err := newAPIClient(cfg, nil)
	require.NoError(t, err)

	u, err := newUploader(context.Background(), cfg.Upload, client)
	require.NoError(t, err)
	assert.NotNil(t, u)

	cfg.Upload.Backend = "none"
	u, err = newUploader(context.Background(), cfg.Upload, client)
	require.NoError(t, err)
	assert.Nil(t, u)

	cfg.Upload.Backend = "ftp"
	_, err = newUploader(context.Background(), cfg.Upload, client)
	assert.Error(t, err)
}

func TestNewDigestBuilder(t *testing.T) {
	cfg := testConfig()
	client, err := newAPIClient(cfg, nil)
	require.NoError(t, err)

	d, err := newDigestBuilder(cfg, client, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, d.Store)
	assert.Equal(t, cfg.Site.URL, d.SiteURL)

	cfg.Digest.Frequency = "hourly"
	_, err = newDigestBuilder(cfg, client, nil, nil)
	assert.Error(t, err)
}

func TestHashPasswordCmd(t *testing.T) {
	var out bytes.Buffer
	hashPasswordCmd.SetOut(&out)
	hashPasswordCmd.SetIn(strings.NewReader("s3cret\n"))
	require.NoError(t, hashPasswordCmd.RunE(hashPasswordCmd, nil))

	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))

	hashPasswordCmd.SetIn(strings.NewReader("\n"))
	assert.Error(t, hashPasswordCmd.RunE(hashPasswordCmd, nil))
}
