// Package imaging validates uploads and re-encodes raster images to WebP.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
)

var (
	ErrEmpty       = errors.New("file is empty")
	ErrTooLarge    = errors.New("file is too large")
	ErrUnsupported = errors.New("unsupported file type")
)

// Policy bounds what may be uploaded.
type Policy struct {
	MaxBytes int64
	AllowPDF bool
}

// File is an upload in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Check sniffs the content type of f and enforces p. The sniffed type
// replaces whatever the client declared, except for SVG which sniffs as
// text.
func Check(f *File, p Policy) error {
	if len(f.Data) == 0 {
		return ErrEmpty
	}
	if p.MaxBytes > 0 && int64(len(f.Data)) > p.MaxBytes {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(f.Data), p.MaxBytes)
	}
	ct := http.DetectContentType(f.Data)
	if strings.HasPrefix(ct, "text/") && isSVG(f) {
		ct = "image/svg+xml"
	}
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	switch {
	case strings.HasPrefix(ct, "image/"):
	case ct == "application/pdf" && p.AllowPDF:
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, ct)
	}
	f.ContentType = ct
	return nil
}

func isSVG(f *File) bool {
	return strings.EqualFold(filepath.Ext(f.Name), ".svg") && bytes.Contains(f.Data, []byte("<svg"))
}

// Convertible reports whether ToWebP would re-encode f. Animated formats,
// vectors, WebP itself and documents are left alone.
func Convertible(f File) bool {
	return f.ContentType == "image/jpeg" || f.ContentType == "image/png"
}

// ToWebP re-encodes JPEG and PNG files as lossy WebP at quality (1-100).
// Other files are returned unchanged.
func ToWebP(f File, quality int) (File, error) {
	if !Convertible(f) {
		return f, nil
	}
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	img, _, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return File{}, fmt.Errorf("decode image: %w", err)
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return File{}, fmt.Errorf("encode webp: %w", err)
	}
	bounds := img.Bounds()
	slog.Debug("imaging: converted to webp",
		"name", f.Name,
		"width", bounds.Dx(),
		"height", bounds.Dy(),
		"before", len(f.Data),
		"after", buf.Len(),
	)
	return File{
		Name:        strings.TrimSuffix(f.Name, filepath.Ext(f.Name)) + ".webp",
		ContentType: "image/webp",
		Data:        buf.Bytes(),
	}, nil
}

// Ext returns the file extension for a sniffed content type.
func Ext(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	case "image/bmp":
		return ".bmp"
	case "image/x-icon":
		return ".ico"
	case "application/pdf":
		return ".pdf"
	}
	return ""
}
