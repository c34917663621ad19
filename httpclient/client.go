// Package httpclient is a rate-limited, retrying HTTP client for fetching
// remote documents and schemas into the value model.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/valkit/valkit"
	"github.com/valkit/valkit/logging"
	"github.com/valkit/valkit/value"
)

// RetryConfig controls retry behavior for failed requests.
type RetryConfig struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
	Jitter            bool
}

// DefaultRetryConfig returns the standard retry policy.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        3,
		InitialDelay:      100 * time.Millisecond,
		MaxDelay:          30 * time.Second,
		BackoffMultiplier: 2.0,
		Jitter:            true,
	}
}

// Backoff returns the delay before the given retry attempt (1-based):
// exponential growth from InitialDelay, up to 10% random jitter, capped at
// MaxDelay.
func (rc RetryConfig) Backoff(attempt int) time.Duration {
	delay := float64(rc.InitialDelay) * math.Pow(rc.BackoffMultiplier, float64(attempt-1))
	if rc.Jitter {
		delay += rand.Float64() * delay * 0.1
	}
	d := time.Duration(delay)
	if d > rc.MaxDelay {
		d = rc.MaxDelay
	}
	return d
}

// Client wraps net/http with a per-minute rate limit and retries with
// exponential backoff.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	retry     RetryConfig
	userAgent string
	logger    logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Defaults to 30s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithRateLimit caps outbound requests per minute. Defaults to 60.
func WithRateLimit(perMinute int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
	}
}

// WithRetryConfig replaces the retry policy.
func WithRetryConfig(rc RetryConfig) Option {
	return func(c *Client) {
		c.retry = rc
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying client, for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New creates a Client with default timeout, rate limit, and retry policy.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: 30 * time.Second},
		limiter:   rate.NewLimiter(rate.Every(time.Second), 60),
		retry:     DefaultRetryConfig(),
		userAgent: valkit.UserAgent(),
		logger:    logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches url, honoring the rate limit and retrying retryable failures
// (connection errors, 429, and 5xx responses).
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("httpclient: rate limit wait: %w", err)
		}

		body, retryable, err := c.do(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable || attempt >= c.retry.MaxRetries {
			break
		}

		backoff := c.retry.Backoff(attempt + 1)
		c.logger.Warn("request failed, retrying",
			"url", url,
			"attempt", attempt+1,
			"max", c.retry.MaxRetries,
			"backoff", backoff,
			"error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
	return nil, fmt.Errorf("httpclient: get %s: %w", url, lastErr)
}

// do performs one request, reporting whether a failure may be retried.
func (c *Client) do(ctx context.Context, url string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, retryableStatus(resp.StatusCode), fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	return body, false, nil
}

// retryableStatus reports whether a response status warrants a retry.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// GetJSON fetches url and decodes the response body as JSON into the value
// model.
func (c *Client) GetJSON(ctx context.Context, url string) (value.Value, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return value.Null(), err
	}
	doc, err := value.DecodeJSON(body)
	if err != nil {
		return value.Null(), fmt.Errorf("httpclient: decode %s: %w", url, err)
	}
	return doc, nil
}

// GetYAML fetches url and decodes the response body as YAML into the value
// model.
func (c *Client) GetYAML(ctx context.Context, url string) (value.Value, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return value.Null(), err
	}
	doc, err := value.DecodeYAML(body)
	if err != nil {
		return value.Null(), fmt.Errorf("httpclient: decode %s: %w", url, err)
	}
	return doc, nil
}
