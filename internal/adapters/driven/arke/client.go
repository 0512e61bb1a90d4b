// Package arke provides HTTP adapters for the remote Arke services:
// semantic search, the entity/IPFS API and OCR extraction.
package arke

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/arke-mcp/internal/core/domain"
	"github.com/custodia-labs/arke-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/arke-mcp/internal/logger"
	"github.com/custodia-labs/arke-mcp/internal/metrics"
)

// Ensure Client implements the gateway interfaces.
var (
	_ driven.SearchGateway = (*Client)(nil)
	_ driven.EntityStore   = (*Client)(nil)
	_ driven.OCRGateway    = (*Client)(nil)
)

// Default configuration values.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultRate       = 20.0
	DefaultBurst      = 10
	maxErrorBodyChars = 500
	retryInitial      = 100 * time.Millisecond
)

// Config holds configuration for the Arke client.
type Config struct {
	// SearchURL is the search service base URL.
	SearchURL string

	// APIURL is the entity and IPFS API base URL.
	APIURL string

	// OCRURL is the OCR service base URL.
	OCRURL string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RatePerSecond throttles outbound requests (default: 20).
	RatePerSecond float64

	// Burst is the throttle's bucket size (default: 10).
	Burst int

	// MaxRetries is the number of retries for idempotent requests
	// that fail transiently. Zero disables retries.
	MaxRetries int

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a Config from application settings.
func ConfigFromSettings(s domain.GatewaySettings) Config {
	return Config{
		SearchURL:     s.SearchURL,
		APIURL:        s.APIURL,
		OCRURL:        s.OCRURL,
		Timeout:       s.Timeout,
		RatePerSecond: s.RatePerSecond,
		Burst:         s.Burst,
		MaxRetries:    s.MaxRetries,
	}
}

// Client talks to the Arke search, entity and OCR services.
type Client struct {
	httpClient *http.Client
	searchURL  string
	apiURL     string
	ocrURL     string
	limiter    *rate.Limiter
	maxRetries int
}

// NewClient creates a new Arke client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = DefaultRate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		httpClient: httpClient,
		searchURL:  strings.TrimRight(cfg.SearchURL, "/"),
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		ocrURL:     strings.TrimRight(cfg.OCRURL, "/"),
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		maxRetries: cfg.MaxRetries,
	}
}

// call describes one HTTP exchange.
type call struct {
	op        string // operation name, used in errors and metrics
	method    string
	url       string
	body      any
	retryable bool
}

// do performs c, decoding a JSON response into out. Numbers in generic
// values are kept as json.Number.
func (cl *Client) do(ctx context.Context, c call, out any) error {
	var payload []byte
	if c.body != nil {
		var err error
		payload, err = json.Marshal(c.body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", c.op, err)
		}
	}

	attempt := func() error {
		data, err := cl.roundTrip(ctx, c, payload)
		if err != nil {
			if c.retryable && isTransient(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		if out == nil {
			return nil
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("%s: decode response: %w", c.op, err))
		}
		return nil
	}

	if !c.retryable || cl.maxRetries == 0 {
		err := attempt()
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			return permanent.Err
		}
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = retryInitial
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(cl.maxRetries)), ctx)

	return backoff.RetryNotify(attempt, b, func(err error, wait time.Duration) {
		logger.Debug("%s: retrying in %s after %v", c.op, wait, err)
	})
}

// roundTrip sends one request and returns the body of a 2xx response.
func (cl *Client) roundTrip(ctx context.Context, c call, payload []byte) ([]byte, error) {
	if err := cl.limiter.Wait(ctx); err != nil {
		return nil, &domain.GatewayError{Op: c.op, Err: err}
	}

	var body io.Reader = http.NoBody
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, c.url, body)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", c.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := cl.httpClient.Do(req)
	metrics.GatewayRequestDuration.WithLabelValues(c.op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GatewayRequests.WithLabelValues(c.op, metrics.OutcomeError).Inc()
		return nil, &domain.GatewayError{Op: c.op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GatewayRequests.WithLabelValues(c.op, metrics.OutcomeError).Inc()
		return nil, &domain.GatewayError{Op: c.op, StatusCode: resp.StatusCode, Err: err}
	}

	logger.Debug("%s %s -> %d (%s)", c.method, c.url, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.GatewayRequests.WithLabelValues(c.op, metrics.OutcomeError).Inc()
		return nil, &domain.GatewayError{
			Op:         c.op,
			StatusCode: resp.StatusCode,
			Body:       truncateBody(data),
		}
	}

	metrics.GatewayRequests.WithLabelValues(c.op, metrics.OutcomeSuccess).Inc()
	return data, nil
}

// isTransient reports whether a failed request is worth retrying:
// transport errors, throttling and upstream unavailability.
func isTransient(err error) bool {
	var gwErr *domain.GatewayError
	if !errors.As(err, &gwErr) {
		return false
	}
	switch gwErr.StatusCode {
	case 0:
		return !errors.Is(gwErr.Err, context.Canceled) && !errors.Is(gwErr.Err, context.DeadlineExceeded)
	case http.StatusTooManyRequests, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// truncateBody keeps the first maxErrorBodyChars characters of an error
// body. It never splits a multi-byte character.
func truncateBody(data []byte) string {
	s := strings.TrimSpace(string(data))
	if utf8.RuneCountInString(s) <= maxErrorBodyChars {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxErrorBodyChars]) + "..."
}
