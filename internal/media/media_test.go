package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestReadDataURISniffsPNG(t *testing.T) {
	data := pngBytes(t, 3, 2)

	img, err := ReadDataURI(bytes.NewReader(data), "")
	require.NoError(t, err)

	assert.Equal(t, "image/png", img.MIME)
	assert.True(t, strings.HasPrefix(img.DataURI, "data:image/png;base64,"))
	assert.Equal(t, len(data), img.Bytes)
	assert.Equal(t, 3, img.Width)
	assert.Equal(t, 2, img.Height)
}

func TestReadDataURIOctetStreamIsSniffed(t *testing.T) {
	img, err := ReadDataURI(bytes.NewReader(pngBytes(t, 1, 1)), "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIME)
}

func TestReadDataURIRejectsNonImage(t *testing.T) {
	_, err := ReadDataURI(strings.NewReader("hello world"), "")
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = ReadDataURI(bytes.NewReader(pngBytes(t, 1, 1)), "text/plain")
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestReadDataURIAcceptsUndecodableImage(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"/>`
	img, err := ReadDataURI(strings.NewReader(svg), "image/svg+xml")
	require.NoError(t, err)

	assert.Equal(t, "image/svg+xml", img.MIME)
	assert.Zero(t, img.Width)
	assert.Zero(t, img.Height)
}

func TestReadDataURINoSizeLimit(t *testing.T) {
	big := append(pngBytes(t, 1, 1), make([]byte, 11<<20)...)
	img, err := ReadDataURI(bytes.NewReader(big), "image/png")
	require.NoError(t, err)
	assert.Equal(t, len(big), img.Bytes)
}

func TestParseDataURIRoundTrip(t *testing.T) {
	data := pngBytes(t, 2, 2)
	img, err := ReadDataURI(bytes.NewReader(data), "")
	require.NoError(t, err)

	mimeType, got, err := ParseDataURI(img.DataURI)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, data, got)
}

func TestParseDataURIPlainPayload(t *testing.T) {
	mimeType, got, err := ParseDataURI("data:,hello%20there")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", mimeType)
	assert.Equal(t, []byte("hello there"), got)
}

func TestParseDataURIErrors(t *testing.T) {
	for _, in := range []string{
		"https://example.com/a.jpg",
		"data:image/png;base64",
		"data:image/png;base64,!!!",
	} {
		t.Run(in, func(t *testing.T) {
			_, _, err := ParseDataURI(in)
			assert.ErrorIs(t, err, ErrNotDataURI)
		})
	}
}

func TestDownloadFilename(t *testing.T) {
	tests := map[string]string{
		"Transform Your Business with AI-Powered Analytics": "transform_your_business_with_ai_powered_analytics.jpg",
		"Sustainable Fashion That Doesn't Cost the Earth":   "sustainable_fashion_that_doesn_t_cost_the_earth.jpg",
		"Größe 42!": "gr__e_42_.jpg",
		"":          ".jpg",
		"Go 🚀":      "go___.jpg",
		"a😀b":       "a__b.jpg",
	}
	for in, want := range tests {
		assert.Equal(t, want, DownloadFilename(in), in)
	}
}

func TestURLCheckerAcceptsImage(t *testing.T) {
	data := pngBytes(t, 1, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	mimeType, err := NewURLChecker(srv.Client(), 0).Check(context.Background(), srv.URL+"/a.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
}

func TestURLCheckerSniffsMissingContentType(t *testing.T) {
	data := pngBytes(t, 1, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	mimeType, err := NewURLChecker(srv.Client(), 0).Check(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
}

func TestURLCheckerRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		default:
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		}
	}))
	defer srv.Close()

	p := NewURLChecker(srv.Client(), 0)

	_, err := p.Check(context.Background(), srv.URL+"/missing")
	assert.ErrorIs(t, err, ErrUnreachable)

	_, err = p.Check(context.Background(), srv.URL+"/page")
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = p.Check(context.Background(), "not a url")
	assert.ErrorIs(t, err, ErrUnreachable)

	_, err = p.Check(context.Background(), "ftp://example.com/a.png")
	assert.ErrorIs(t, err, ErrUnreachable)
}
