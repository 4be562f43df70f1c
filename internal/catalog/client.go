// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

// Package catalog is the client of the external car catalog.
//
// Every call goes through a TTL response cache, a singleflight group that
// collapses concurrent misses, a client side token bucket, a circuit breaker
// and a retry loop with exponential backoff for 429 and 5xx responses.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/aterii/practice-4/internal/config"
	"github.com/aterii/practice-4/internal/logging"
	"github.com/aterii/practice-4/internal/metrics"
)

var (
	// ErrCarNotFound is returned when the catalog answers 404.
	ErrCarNotFound = errors.New("catalog: car not found")

	// ErrUnavailable is returned while the circuit breaker rejects calls.
	ErrUnavailable = errors.New("catalog: temporarily unavailable")
)

// UpstreamError is a non-retryable or exhausted upstream failure.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("catalog: upstream returned status %d: %s", e.StatusCode, e.Body)
}

const (
	maxBodySize      = 8 << 20
	maxErrorBodySize = 4 << 10
	maxRetryDelay    = 30 * time.Second
)

// Client talks to the car catalog. It is safe for concurrent use.
type Client struct {
	baseURL        string
	http           *http.Client
	limiter        *rate.Limiter
	breaker        *gobreaker.CircuitBreaker[[]byte]
	cache          *responseCache
	group          singleflight.Group
	maxRetries     int
	retryBaseDelay time.Duration
	fetchTimeout   time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRetryBaseDelay sets the first backoff delay. Later delays double.
func WithRetryBaseDelay(d time.Duration) Option {
	return func(c *Client) { c.retryBaseDelay = d }
}

// New creates a catalog client from cfg.
func New(cfg *config.CatalogConfig, opts ...Option) *Client {
	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		burst = max(1, int(cfg.RequestsPerSecond))
	}

	c := &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		http:           &http.Client{Timeout: cfg.Timeout},
		limiter:        rate.NewLimiter(limit, burst),
		breaker:        newBreaker(),
		cache:          newResponseCache(cfg.CacheTTL),
		maxRetries:     max(0, cfg.MaxRetries),
		retryBaseDelay: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	if cfg.Timeout > 0 {
		c.fetchTimeout = cfg.Timeout*time.Duration(c.maxRetries+1) + maxRetryDelay
	}
	return c
}

// ListCarsRaw returns the upstream car list body unchanged.
func (c *Client) ListCarsRaw(ctx context.Context) (json.RawMessage, error) {
	body, err := c.fetch(ctx, "list_cars", "/cars")
	return json.RawMessage(body), err
}

// GetCarRaw returns the upstream body of one car unchanged.
func (c *Client) GetCarRaw(ctx context.Context, id string) (json.RawMessage, error) {
	body, err := c.fetch(ctx, "get_car", "/cars/"+url.PathEscape(id))
	return json.RawMessage(body), err
}

// ListCars returns the mapped car list.
func (c *Client) ListCars(ctx context.Context) ([]Car, error) {
	body, err := c.fetch(ctx, "list_cars", "/cars")
	if err != nil {
		return nil, err
	}

	var raw []RawCar
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("catalog: decode car list: %w", err)
	}
	cars := make([]Car, len(raw))
	for i := range raw {
		cars[i] = raw[i].ToCar()
	}
	return cars, nil
}

// GetCar returns one mapped car.
func (c *Client) GetCar(ctx context.Context, id string) (*Car, error) {
	body, err := c.fetch(ctx, "get_car", "/cars/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var raw RawCar
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("catalog: decode car: %w", err)
	}
	car := raw.ToCar()
	return &car, nil
}

// fetch returns the body for path, from cache when fresh.
//
// Concurrent misses share one upstream call. It runs detached from every
// caller's cancellation and is bounded by fetchTimeout instead. Each caller
// returns as soon as its own ctx is done.
func (c *Client) fetch(ctx context.Context, operation, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if body, ok := c.cache.get(path); ok {
		return body, nil
	}

	ch := c.group.DoChan(path, func() (interface{}, error) {
		shared, cancel := c.sharedContext(ctx)
		defer cancel()
		return c.fetchShared(shared, operation, path)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// sharedContext keeps the values of ctx (request id for logging) but not its
// cancellation.
func (c *Client) sharedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if c.fetchTimeout <= 0 {
		return context.WithCancel(detached)
	}
	return context.WithTimeout(detached, c.fetchTimeout)
}

func (c *Client) fetchShared(ctx context.Context, operation, path string) ([]byte, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.doWithRetry(ctx, operation, path)
	})
	switch {
	case err == nil:
		metrics.RecordCircuitBreakerRequest(breakerName, "success")
	case errors.Is(err, ErrCarNotFound):
		metrics.RecordCircuitBreakerRequest(breakerName, "success")
		return nil, err
	case isRejected(err):
		metrics.RecordCircuitBreakerRequest(breakerName, "rejected")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		metrics.RecordCircuitBreakerRequest(breakerName, "failure")
		return nil, err
	}
	c.cache.set(path, body)
	return body, nil
}

// doWithRetry performs GET base+path, retrying 429, 5xx and transport
// errors with exponential backoff. Retry-After overrides the computed delay.
func (c *Client) doWithRetry(ctx context.Context, operation, path string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			metrics.RecordCatalogRetry(operation)
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, retryAfter, err := c.do(ctx, operation, path)
		if err == nil {
			return body, nil
		}
		if !retryable(err) || ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
		if attempt == c.maxRetries {
			break
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter > 0 {
			delay = retryAfter
		}
		delay = min(delay, maxRetryDelay)

		logging.Ctx(ctx).Debug().
			Err(err).
			Str("operation", operation).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("Retrying car catalog request")

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("catalog: giving up after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) do(ctx context.Context, operation, path string) ([]byte, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordCatalogRequest(operation, 0, time.Since(start))
		return nil, 0, fmt.Errorf("catalog: request failed: %w", err)
	}
	defer resp.Body.Close()
	metrics.RecordCatalogRequest(operation, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return nil, 0, fmt.Errorf("catalog: read body: %w", err)
		}
		return body, 0, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, 0, ErrCarNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
			&UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
}

func retryable(err error) bool {
	if errors.Is(err, ErrCarNotFound) || errors.Is(err, context.Canceled) {
		return false
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.StatusCode == http.StatusTooManyRequests || upstream.StatusCode >= 500
	}
	return true
}

// parseRetryAfter accepts both delay-seconds and HTTP-date forms.
func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := t.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
