package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"scholarship-portal/internal/model"
)

// Upload sends a file to POST /upload as the multipart field "file" and
// returns the hosted URL.
func (c *Client) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", errors.New("empty file name")
	}
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	part, err := writer.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	b, err := c.do(ctx, http.MethodPost, "/upload", &body, writer.FormDataContentType())
	if err != nil {
		return "", err
	}
	var out model.UploadResponse
	if err := decodeData(b, &out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if strings.TrimSpace(out.URL) == "" {
		return "", errors.New("upload response missing url")
	}
	return out.URL, nil
}
