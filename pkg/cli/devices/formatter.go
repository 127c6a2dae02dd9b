package devices

import (
	"time"

	"devicehub-go/pkg/models"

	"github.com/google/uuid"
)

// SourceOrPlaceholder returns the device source URL, or a marker when unset
func SourceOrPlaceholder(device models.Device) string {
	if device.SourceURL == "" {
		return "(no source)"
	}
	return device.SourceURL
}

// TruncateURL truncates a URL or name to maxLen runes
func TruncateURL(url string, maxLen int) string {
	runes := []rune(url)
	if maxLen < 4 || len(runes) <= maxLen {
		return url
	}
	return string(runes[:maxLen-3]) + "..."
}

// ShortenID returns a shortened version of a UUID (first 8 characters + "...")
func ShortenID(id uuid.UUID) string {
	return id.String()[:8] + "..."
}

// FormatDate formats a time as a readable date string
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
