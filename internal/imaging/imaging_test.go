package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCheck(t *testing.T) {
	f := &File{Name: "logo.png", ContentType: "application/octet-stream", Data: pngBytes(t)}
	require.NoError(t, Check(f, Policy{MaxBytes: 5 << 20}))
	assert.Equal(t, "image/png", f.ContentType)

	err := Check(&File{Name: "big.png", Data: pngBytes(t)}, Policy{MaxBytes: 10})
	assert.ErrorIs(t, err, ErrTooLarge)

	err = Check(&File{Name: "empty.png"}, Policy{})
	assert.ErrorIs(t, err, ErrEmpty)

	err = Check(&File{Name: "notes.txt", Data: []byte("hello world")}, Policy{})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestCheck_PDF(t *testing.T) {
	pdf := []byte("%PDF-1.7\n1 0 obj\n")
	err := Check(&File{Name: "brochure.pdf", Data: pdf}, Policy{})
	assert.ErrorIs(t, err, ErrUnsupported)

	f := &File{Name: "brochure.pdf", Data: pdf}
	require.NoError(t, Check(f, Policy{AllowPDF: true}))
	assert.Equal(t, "application/pdf", f.ContentType)
}

func TestCheck_SVG(t *testing.T) {
	f := &File{Name: "flag.svg", Data: []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`)}
	require.NoError(t, Check(f, Policy{}))
	assert.Equal(t, "image/svg+xml", f.ContentType)
	assert.False(t, Convertible(*f))
}

func TestToWebP(t *testing.T) {
	f := File{Name: "cover.photo.png", ContentType: "image/png", Data: pngBytes(t)}
	out, err := ToWebP(f, 80)
	require.NoError(t, err)
	assert.Equal(t, "cover.photo.webp", out.Name)
	assert.Equal(t, "image/webp", out.ContentType)
	assert.Equal(t, "RIFF", string(out.Data[:4]))

	gif := File{Name: "a.gif", ContentType: "image/gif", Data: []byte("GIF89a")}
	same, err := ToWebP(gif, 80)
	require.NoError(t, err)
	assert.Equal(t, gif, same)
}

func TestExt(t *testing.T) {
	assert.Equal(t, ".jpg", Ext("image/jpeg"))
	assert.Equal(t, ".pdf", Ext("application/pdf"))
	assert.Equal(t, "", Ext("text/plain"))
}
