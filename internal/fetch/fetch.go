package fetch

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/youruser/ccrop/internal/failure"
)

// DefaultTimeout bounds the whole request, body included.
const DefaultTimeout = 30 * time.Second

// Fetcher downloads the source image bytes.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Client downloads a single resource per call. The zero value is not usable; use New.
type Client struct {
	HTTP      *http.Client
	UserAgent string
	// MaxBytes caps the response body. Zero means unlimited.
	MaxBytes int64
}

// New returns a Client with the default timeout.
func New(userAgent string) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: DefaultTimeout},
		UserAgent: userAgent,
	}
}

// Fetch downloads url with a default Client.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	return New("ccrop").Fetch(ctx, url)
}

// Fetch validates the scheme, issues one GET and returns the response body.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, failure.New(failure.InvalidURL, "URL must start with http:// or https://")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, failure.Wrap(failure.Network, errors.Wrap(err, "building request"))
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, failure.Wrap(failure.Network, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, failure.Newf(failure.Network, "HTTP status %s for url (%s)", resp.Status, url)
	}

	var r io.Reader = resp.Body
	if c.MaxBytes > 0 {
		r = io.LimitReader(resp.Body, c.MaxBytes+1)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, failure.Wrap(failure.Network, errors.Wrap(err, "reading response body"))
	}
	if c.MaxBytes > 0 && int64(len(body)) > c.MaxBytes {
		return nil, failure.Newf(failure.Network, "response body exceeds %d bytes", c.MaxBytes)
	}
	return body, nil
}
