package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"devicehub-go/pkg/utils"
)

// ScrapeDevice scrapes a single device page through the scraper service and
// prints the payload without importing it.
func (a *App) ScrapeDevice(urlStr string) error {
	urlStr, err := utils.ValidateURL(urlStr)
	if err != nil {
		return err
	}

	if err := a.checkScraper(); err != nil {
		return err
	}

	scraperService, err := a.getScraperService()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout())
	defer cancel()

	fmt.Printf("⏳ Scraping %s...\n", urlStr)
	payload, err := scraperService.Scrape(ctx, urlStr)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, payload, "", "  "); err != nil {
		return fmt.Errorf("failed to format payload: %w", err)
	}
	fmt.Println(out.String())
	return nil
}
