// Package upload stores admin uploads (cover images, logos, brochures)
// and returns their public URL.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"scholarship-portal/internal/config"
	"scholarship-portal/internal/imaging"
)

// Backend persists a validated file and returns its public URL.
type Backend interface {
	Store(ctx context.Context, f imaging.File) (string, error)
}

// Uploader validates, optionally converts, then stores uploads.
type Uploader struct {
	backend     Backend
	policy      imaging.Policy
	convertWebP bool
	quality     int
}

func New(backend Backend, cfg config.UploadConfig) *Uploader {
	return &Uploader{
		backend:     backend,
		policy:      imaging.Policy{MaxBytes: cfg.MaxBytes, AllowPDF: true},
		convertWebP: cfg.ConvertWebP,
		quality:     cfg.WebPQuality,
	}
}

// MaxBytes is the configured size limit.
func (u *Uploader) MaxBytes() int64 {
	return u.policy.MaxBytes
}

// Upload reads r, enforcing the size limit while reading, and stores it.
// imagesOnly rejects PDFs.
func (u *Uploader) Upload(ctx context.Context, name string, r io.Reader, imagesOnly bool) (string, error) {
	limit := u.policy.MaxBytes
	var data []byte
	var err error
	if limit > 0 {
		data, err = io.ReadAll(io.LimitReader(r, limit+1))
	} else {
		data, err = io.ReadAll(r)
	}
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	f := imaging.File{Name: name, Data: data}
	policy := u.policy
	if imagesOnly {
		policy.AllowPDF = false
	}
	if err := imaging.Check(&f, policy); err != nil {
		return "", err
	}
	if u.convertWebP && imaging.Convertible(f) {
		converted, err := imaging.ToWebP(f, u.quality)
		if err != nil {
			slog.Warn("upload: webp conversion failed, keeping original", "name", name, "err", err)
		} else {
			f = converted
		}
	}
	url, err := u.backend.Store(ctx, f)
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	slog.Info("upload: stored", "name", f.Name, "type", f.ContentType, "bytes", len(f.Data), "url", url)
	return url, nil
}

// APIUploader is the subset of the REST client used by APIBackend.
type APIUploader interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// APIBackend proxies uploads to the REST API's /upload endpoint.
type APIBackend struct {
	client APIUploader
}

func NewAPIBackend(client APIUploader) *APIBackend {
	return &APIBackend{client: client}
}

func (b *APIBackend) Store(ctx context.Context, f imaging.File) (string, error) {
	return b.client.Upload(ctx, f.Name, f.ContentType, bytes.NewReader(f.Data))
}
