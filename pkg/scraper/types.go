package scraper

// ScrapeRequest is the body of both scraper service endpoints.
type ScrapeRequest struct {
	URL string `json:"url"`
}

// ErrorResponse is the error envelope returned by the scraper service.
type ErrorResponse struct {
	Error string `json:"error"`
}
