// Package httpclient provides the shared HTTP client for the registry
// APIs: bounded retries on transient statuses, Retry-After awareness and
// jittered exponential backoff. Registries rate-limit aggressively, so
// every registry adapter goes through this client.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ersonp/register-graph/internal/infrastructure/logger"
)

// Defaults applied when the config leaves a field zero.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 5
	DefaultBackoff    = 2 * time.Second
	DefaultMaxBackoff = 60 * time.Second
)

// Client is an HTTP client with bounded retry. A request is retried on
// 408/429/5xx and on transport errors, up to MaxRetries attempts; after
// that the last status surfaces as an error rather than hanging the run.
type Client struct {
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	maxBackoff time.Duration
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithMaxRetries bounds the retry attempts for transient failures.
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithBackoff sets the initial and maximum backoff intervals.
func WithBackoff(initial, max time.Duration) Option {
	return func(c *Client) {
		c.backoff = initial
		c.maxBackoff = max
	}
}

// New creates a Client.
func New(log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		maxRetries: DefaultMaxRetries,
		backoff:    DefaultBackoff,
		maxBackoff: DefaultMaxBackoff,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is a non-2xx terminal response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

func retryableStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		(code >= 500 && code <= 599)
}

// GetJSON fetches the URL and decodes the JSON response body into out.
// headers may be nil.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string, out interface{}) error {
	body, err := c.get(ctx, url, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	var lastErr error
	wait := c.backoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.log.Debug("retrying request", "url", url, "attempt", attempt, "wait", wait)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(jitter(wait)):
			}
			wait *= 2
			if wait > c.maxBackoff {
				wait = c.maxBackoff
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("building request for %s: %w", url, err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		if retryableStatus(resp.StatusCode) {
			wait = retryAfter(resp, wait, c.maxBackoff)
			lastErr = &StatusError{StatusCode: resp.StatusCode, URL: url}
			drain(resp)
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			drain(resp)
			return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("reading response from %s: %w", url, err)
			continue
		}
		return body, nil
	}

	return nil, fmt.Errorf("request to %s failed after %d retries: %w", url, c.maxRetries, lastErr)
}

// retryAfter prefers the server's Retry-After header over the computed
// backoff, capped at max.
func retryAfter(resp *http.Response, fallback, max time.Duration) time.Duration {
	wait := fallback
	if ra := strings.TrimSpace(resp.Header.Get("Retry-After")); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
			wait = time.Duration(secs) * time.Second
		}
	}
	if wait > max {
		wait = max
	}
	return wait
}

// jitter spreads the wait by ±20% so concurrent callers don't stampede.
func jitter(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	delta := base.Seconds() * 0.2
	low := base.Seconds() - delta
	v := low + rand.Float64()*2*delta
	return time.Duration(v * float64(time.Second))
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
