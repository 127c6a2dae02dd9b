// Package gsmarena fetches and parses GSMArena listing and spec-sheet pages.
package gsmarena

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	maxBodySize      = 5 * 1024 * 1024
	DefaultUserAgent = "DeviceHub-Scraper/1.0"
)

// Fetcher downloads source pages. All requests share one limiter so the
// source site sees at most the configured request rate.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

func NewFetcher(ratePerSecond float64, userAgent string, timeout time.Duration) *Fetcher {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(ratePerSecond), 1),
		userAgent: userAgent,
	}
}

// Fetch returns the body of url, waiting for the limiter first.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}
