package treeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// Entry is one child of a folder as returned by the list endpoint.
// A non-empty Ext marks a leaf document; folders carry only a path.
type Entry struct {
	Path string `json:"path"`
	Ext  string `json:"ext,omitempty"`
}

// IsFile reports whether the entry is a leaf document.
func (e Entry) IsFile() bool { return e.Ext != "" }

// Client wraps the three admin API operations the crawler needs.
// It is a pure I/O boundary: no retries, no caching, no policy.
type Client interface {
	// List enumerates the direct children of a folder.
	List(ctx context.Context, path string) ([]Entry, error)

	// FetchSource retrieves a document's raw markup.
	FetchSource(ctx context.Context, path string) ([]byte, error)

	// Publish overwrites a document's stored content with payload.
	// The write is a full replace, not a patch.
	Publish(ctx context.Context, path, payload string) error
}

type httpClient struct {
	base      string
	token     string
	userAgent string
	hc        *http.Client
}

// Option configures the HTTP client.
type Option func(*httpClient)

// WithHTTPClient swaps the underlying http.Client, e.g. for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.hc = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) { c.hc.Timeout = d }
}

// New creates a Client for the admin API at base. The bearer token and
// user agent are fixed for the lifetime of the client; they are
// configuration inputs, never computed here.
func New(base, token, userAgent string, opts ...Option) Client {
	c := &httpClient{
		base:      strings.TrimRight(base, "/"),
		token:     token,
		userAgent: userAgent,
		hc:        &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) List(ctx context.Context, path string) ([]Entry, error) {
	resp, err := c.get(ctx, c.base+"/list"+normalize(path))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list %s: unexpected status %d", path, resp.StatusCode)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("list %s: decode: %w", path, err)
	}
	return entries, nil
}

func (c *httpClient) FetchSource(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.get(ctx, c.base+"/source"+normalize(path))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source %s: unexpected status %d", path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("source %s: read: %w", path, err)
	}
	return body, nil
}

func (c *httpClient) Publish(ctx context.Context, path, payload string) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="data"`)
	hdr.Set("Content-Type", "text/html")
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return fmt.Errorf("publish %s: %w", path, err)
	}
	if _, err := io.WriteString(part, payload); err != nil {
		return fmt.Errorf("publish %s: %w", path, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("publish %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/source"+normalize(path), &buf)
	if err != nil {
		return fmt.Errorf("publish %s: %w", path, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.decorate(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("publish %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("publish %s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}

func (c *httpClient) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.decorate(req)
	return c.hc.Do(req)
}

// decorate attaches the fixed credential and client identity headers.
func (c *httpClient) decorate(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)
}

// normalize guarantees a single leading slash so callers can pass paths
// with or without one.
func normalize(path string) string {
	return "/" + strings.TrimLeft(path, "/")
}
