package importer

import (
	"errors"
	"strings"
)

var (
	ErrEmptyListingURL = errors.New("listing URL is required")
	ErrNoLinks         = errors.New("no device links found")
	ErrSuperseded      = errors.New("import run superseded by a newer start")
	ErrClosed          = errors.New("importer closed")
	ErrStopped         = errors.New("link discovery stopped")
)

// userMessager is implemented by collaborator errors that carry an
// operator-facing message (scraper and catalog API errors).
type userMessager interface {
	UserMessage() string
}

// itemMessage picks the text recorded on a failed WorkItem.
func itemMessage(err error, fallback string) string {
	var um userMessager
	if errors.As(err, &um) {
		if msg := strings.TrimSpace(um.UserMessage()); msg != "" {
			return msg
		}
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}
