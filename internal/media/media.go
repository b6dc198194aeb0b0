// Package media turns uploaded files into embedded data URIs and checks
// remote image URLs for the creation preview.
package media

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	_ "golang.org/x/image/webp"
)

var (
	ErrNotImage   = errors.New("not an image")
	ErrNotDataURI = errors.New("not a data URI")
)

// sniffLen is the number of bytes http.DetectContentType considers.
const sniffLen = 512

// Image is an uploaded image embedded as a data URI.
type Image struct {
	DataURI string `json:"image_url"`
	MIME    string `json:"mime"`
	Bytes   int    `json:"bytes"`
	// Width and Height are zero when the format could not be decoded.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ReadDataURI reads an image from r and embeds it as a base64 data URI.
// contentType is the declared type; it is sniffed from the content when
// empty or generic. There is no size limit.
func ReadDataURI(r io.Reader, contentType string) (Image, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	peek, _ := br.Peek(sniffLen)

	mimeType := declaredType(contentType)
	if mimeType == "" {
		mimeType = sniff(peek)
	}
	if !IsImageType(mimeType) {
		return Image{}, fmt.Errorf("%w: %s", ErrNotImage, mimeType)
	}

	data, err := io.ReadAll(br)
	if err != nil {
		return Image{}, fmt.Errorf("read image: %w", err)
	}

	img := Image{
		DataURI: "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
		MIME:    mimeType,
		Bytes:   len(data),
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.Width = cfg.Width
		img.Height = cfg.Height
	}
	return img, nil
}

// IsImageType reports whether mimeType is in the image/ family.
func IsImageType(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

func declaredType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil || mt == "application/octet-stream" {
		return ""
	}
	return strings.ToLower(mt)
}

func sniff(b []byte) string {
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(b))
	return mt
}

// ParseDataURI decodes a data URI into its media type and payload.
func ParseDataURI(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload", ErrNotDataURI)
	}

	meta, isBase64 := strings.CutSuffix(meta, ";base64")
	mimeType := "text/plain"
	if meta != "" {
		mt, _, err := mime.ParseMediaType(meta)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrNotDataURI, err)
		}
		mimeType = mt
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrNotDataURI, err)
		}
		return mimeType, data, nil
	}
	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrNotDataURI, err)
	}
	return mimeType, []byte(decoded), nil
}

// IsDataURI reports whether ref is an embedded image rather than a URL.
func IsDataURI(ref string) bool {
	return strings.HasPrefix(ref, "data:")
}

// DownloadFilename derives the saved file name for an ad image from its
// title: every character outside a-z and 0-9 (ignoring case) becomes an
// underscore, the result is lowercased and gets a .jpg extension.
// Characters are counted in UTF-16 code units, so one emoji gives two
// underscores.
func DownloadFilename(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(unicode.ToLower(r))
		case r > 0xFFFF:
			b.WriteString("__")
		default:
			b.WriteByte('_')
		}
	}
	return b.String() + ".jpg"
}
