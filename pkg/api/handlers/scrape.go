package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"devicehub-go/pkg/gsmarena"
	"devicehub-go/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PageFetcher downloads a source page; *gsmarena.Fetcher implements it.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// bindPage validates the {"url": ...} body and fetches the page. It writes the
// error response itself and returns ok=false on failure.
func bindPage(c *gin.Context, fetcher PageFetcher) (url string, body []byte, ok bool) {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return "", nil, false
	}

	url, err := utils.ValidateURL(req.URL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", nil, false
	}

	body, err = fetcher.Fetch(c.Request.Context(), url)
	if err != nil {
		log.Printf("fetch %s: %v", url, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch page: " + err.Error()})
		return "", nil, false
	}

	return url, body, true
}

// ScrapeLinks returns the device page URLs found on a listing page.
func ScrapeLinks(fetcher PageFetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		url, body, ok := bindPage(c, fetcher)
		if !ok {
			return
		}

		links, err := gsmarena.ExtractDeviceLinks(body, url)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		log.Printf("discovered %d device links on %s", len(links), url)
		c.JSON(http.StatusOK, links)
	}
}

// ScrapeDevice returns the parsed spec sheet of one device page.
func ScrapeDevice(fetcher PageFetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		url, body, ok := bindPage(c, fetcher)
		if !ok {
			return
		}

		device, err := gsmarena.ParseDevice(body, url)
		if errors.Is(err, gsmarena.ErrNoDevice) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to parse page: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, device)
	}
}
