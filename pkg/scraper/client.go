package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "http://localhost:3000"

// ScraperService is the HTTP client of the scraper service. It satisfies the
// importer's Discoverer and Scraper.
type ScraperService struct {
	baseURL string
	client  *http.Client
}

func NewScraperService(baseURL string, timeout time.Duration) *ScraperService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &ScraperService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// CheckHealth verifies the service is available
func (s *ScraperService) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return classifyStatus(resp.StatusCode, "service unhealthy")
	}

	return nil
}

// DiscoverLinks asks the service for the device page URLs on a listing page.
// A response that is not a JSON array of strings yields no links.
func (s *ScraperService) DiscoverLinks(ctx context.Context, listingURL string) ([]string, error) {
	body, err := s.post(ctx, "/scrape/links", listingURL)
	if err != nil {
		return nil, err
	}

	var links []string
	if err := json.Unmarshal(body, &links); err != nil || links == nil {
		return []string{}, nil
	}

	return links, nil
}

// Scrape returns the device payload for one page as the service produced it.
func (s *ScraperService) Scrape(ctx context.Context, url string) (json.RawMessage, error) {
	body, err := s.post(ctx, "/scrape", url)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, newInvalidResponseError("response is not JSON", nil)
	}

	return json.RawMessage(body), nil
}

func (s *ScraperService) post(ctx context.Context, path, url string) ([]byte, error) {
	jsonData, err := json.Marshal(ScrapeRequest{URL: url})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		_ = json.Unmarshal(body, &errResp)
		return nil, classifyStatus(resp.StatusCode, errResp.Error)
	}

	return body, nil
}
