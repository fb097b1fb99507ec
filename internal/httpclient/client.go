package httpclient

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client is a wrapper for HTTP client with rate limiting.
// Every call is attempted exactly once; callers decide what a non-200 status means.
type Client struct {
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	headers    http.Header
}

// ClientOptions holds options for creating a new Client
type ClientOptions struct {
	// Timeout of zero keeps the net/http default (no timeout).
	Timeout time.Duration
	// RequestsPerSec of zero disables client side rate limiting.
	RequestsPerSec float64
	// Headers are added to every request, e.g. a static API key.
	Headers map[string]string
	// Transport overrides the round tripper, mostly for tests.
	Transport http.RoundTripper
}

// NewClient creates a new HTTP client with rate limiting
func NewClient(opts ClientOptions) *Client {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1)
	}

	headers := make(http.Header, len(opts.Headers))
	for key, value := range opts.Headers {
		if value != "" {
			headers.Set(key, value)
		}
	}

	return &Client{
		HTTPClient: &http.Client{
			Timeout:   opts.Timeout,
			Transport: opts.Transport,
		},
		Limiter: limiter,
		headers: headers,
	}
}

// Get builds a GET request for url and performs it.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	return c.Do(ctx, req)
}

// Do waits for the rate limiter, applies the static headers and performs the request once.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, err
	}

	for key, values := range c.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	req.Header.Set("Accept", "application/json")

	return c.HTTPClient.Do(req)
}

// HTTPStatusError represents an error due to a non-200 HTTP status code
type HTTPStatusError struct {
	StatusCode int
}

// Error implements the error interface
func (e *HTTPStatusError) Error() string {
	return "non-200 status code: " + http.StatusText(e.StatusCode)
}
