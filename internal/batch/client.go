package batch

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/google/uuid"

	"github.com/five82/batchview/internal/ident"
)

// Fetcher retrieves a single batch record. *Client is the remote
// implementation; fallback.FixedClient serves the embedded dataset.
type Fetcher interface {
	FetchRecord(ctx context.Context, id string) (Record, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the batch HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	timeout   time.Duration
	userAgent string
}

const (
	defaultUserAgent = "batchview/0.1"
	defaultTimeout   = 30 * time.Second
	maxBodyBytes     = 1 << 20
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client. The client itself is never
// modified; WithTimeout applies to a copy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout regardless of option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client rooted at baseURL; records are requested at
// <baseURL>/<id>.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

// BaseURL returns the normalised base location.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchRecord performs exactly one GET request and returns the validated
// record. Failures are *FetchError values.
func (c *Client) FetchRecord(ctx context.Context, id string) (Record, error) {
	if c == nil {
		return Record{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return Record{}, ident.ErrMissingIdentifier
	}

	reqURL := c.recordURL(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Record{}, &FetchError{Kind: KindTransport, ID: id, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br, gzip")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return Record{}, &FetchError{Kind: KindTransport, ID: id, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return Record{}, &FetchError{
			Kind:   KindStatus,
			ID:     id,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("api %s returned status %d", req.URL.Path, resp.StatusCode),
		}
	}

	body, err := readBody(resp)
	if err != nil {
		return Record{}, &FetchError{Kind: KindTransport, ID: id, Err: fmt.Errorf("read response: %w", err)}
	}
	rec, err := DecodeRecord(body)
	if err != nil {
		return Record{}, &FetchError{Kind: KindValidation, ID: id, Err: err}
	}
	return rec, nil
}

func (c *Client) recordURL(id string) string {
	return c.baseURL.String() + "/" + url.PathEscape(id)
}

func readBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "br":
		r = brotli.NewReader(resp.Body)
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("open gzip body: %w", err)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxBodyBytes {
		return nil, errors.New("response body exceeds 1 MiB")
	}
	return data, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
