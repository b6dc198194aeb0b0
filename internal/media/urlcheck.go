package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrUnreachable is returned when a remote image cannot be fetched.
var ErrUnreachable = errors.New("image unreachable")

// DefaultCheckTimeout bounds a single URL check.
const DefaultCheckTimeout = 5 * time.Second

// URLChecker checks that a remote URL serves an image.
type URLChecker struct {
	Client  *http.Client
	Timeout time.Duration
}

// NewURLChecker returns a URLChecker using client, or a default client when nil.
func NewURLChecker(client *http.Client, timeout time.Duration) *URLChecker {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &URLChecker{Client: client, Timeout: timeout}
}

// Check fetches rawURL and verifies the response is an image. It returns the
// detected media type.
func (p *URLChecker) Check(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: invalid url %q", ErrUnreachable, rawURL)
	}

	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode)
	}

	mimeType := declaredType(resp.Header.Get("Content-Type"))
	if mimeType == "" {
		peek := make([]byte, sniffLen)
		n, _ := io.ReadFull(resp.Body, peek)
		mimeType = sniff(peek[:n])
	}
	if !IsImageType(mimeType) {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mimeType)
	}
	return mimeType, nil
}
