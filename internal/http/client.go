package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %s", e.URL, e.Status)
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Client wraps HTTP operations with a fixed User-Agent, a timeout,
// bounded retries and optional rate limiting.
//
// Example usage:
//
//	client := NewClient("bippi/0.1.0 (https://github.com/landonrogers/bippi)", 15*time.Second,
//	    WithRateLimit(1, time.Second))
//
//	var release releaseDetail
//	err := client.GetJSON(ctx, "https://musicbrainz.org/ws/2/release/...", &release)
type Client struct {
	httpClient    *http.Client
	userAgent     string
	maxRetries    int
	retryCooldown time.Duration
	retryExponent float64
	limiter       *RateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithRetries sets how many times a temporary failure is retried and the
// cooldown before the first retry. Later retries back off exponentially.
func WithRetries(retries int, cooldown time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = retries
		c.retryCooldown = cooldown
	}
}

// WithRateLimit allows at most maxRequests requests per window.
func WithRateLimit(maxRequests int, window time.Duration) Option {
	return func(c *Client) {
		c.limiter = NewRateLimiter(maxRequests, window)
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new HTTP client.
//
// By default the client retries temporary failures twice, starting with
// a two second cooldown.
func NewClient(userAgent string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient:    &http.Client{Timeout: timeout},
		userAgent:     userAgent,
		maxRetries:    2,
		retryCooldown: 2 * time.Second,
		retryExponent: 2,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request and returns the response body.
//
// Transport errors, 429 and 5xx responses are retried. Other non-2xx
// responses fail immediately with a *StatusError.
func (c *Client) Get(ctx context.Context, url string, accept string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := c.waitForRetry(ctx, attempt-1); err != nil {
				return nil, err
			}
		}

		body, err := c.get(ctx, url, accept)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.Temporary() {
			return nil, err
		}
	}
	return nil, lastErr
}

// GetJSON performs a GET request and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.Get(ctx, url, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// DownloadBytes downloads a small file, such as cover art, into memory.
func (c *Client) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	return c.Get(ctx, url, "")
}

func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) waitForRetry(ctx context.Context, tries int) error {
	cooldown := time.Duration(float64(c.retryCooldown) * math.Pow(c.retryExponent, float64(tries)))
	if cooldown <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(cooldown)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
