package devices

import (
	"testing"
	"time"

	"devicehub-go/pkg/importer"
	"devicehub-go/pkg/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFormatTableOutput(t *testing.T) {
	id := uuid.MustParse("6f1c2a9e-1111-4c5d-8e9f-000000000001")
	out := FormatTableOutput([]models.Device{
		{ID: id, Name: "Apple iPhone 15", Brand: "Apple", SourceURL: "https://www.gsmarena.com/apple_iphone_15-12559.php",
			CreatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)},
		{ID: uuid.New(), Name: "Handmade", Brand: "Handmade"},
	})

	assert.Contains(t, out, "6f1c2a9e...")
	assert.Contains(t, out, "Apple iPhone 15")
	assert.Contains(t, out, "2026-03-01 09:30")
	assert.Contains(t, out, "(no source)")
	assert.Contains(t, out, "Total: 2 device(s)")

	assert.Equal(t, "No devices found.", FormatTableOutput(nil))
}

func TestFormatRunSummary(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	out := FormatRunSummary(importer.Snapshot{
		ListingURL: "https://www.gsmarena.com/apple-phones-48.php",
		State:      importer.StateStopped,
		Items: []importer.WorkItem{
			{URL: "https://www.gsmarena.com/a-1.php", Status: importer.StatusDone},
			{URL: "https://www.gsmarena.com/b-2.php", Status: importer.StatusFailed, Message: "Import failed: device already exists"},
			{URL: "https://www.gsmarena.com/c-3.php", Status: importer.StatusQueued},
		},
		Progress:   importer.Progress{Total: 3, Completed: 1, Failed: 1},
		StartedAt:  start,
		FinishedAt: start.Add(95 * time.Second),
	})

	assert.Contains(t, out, "Import stopped: https://www.gsmarena.com/apple-phones-48.php")
	assert.Contains(t, out, "Pending:   1")
	assert.Contains(t, out, "Duration:  1m35s")
	assert.Contains(t, out, "Import failed: device already exists")
	assert.NotContains(t, out, "a-1.php")
}

func TestFormatRunSummaryWithoutRun(t *testing.T) {
	assert.Contains(t, FormatRunSummary(importer.Snapshot{Err: importer.ErrNoLinks}), "no device links found")
	assert.Contains(t, FormatRunSummary(importer.Snapshot{}), "No import run.")
}

func TestTruncateURLCountsRunes(t *testing.T) {
	assert.Equal(t, "short", TruncateURL("short", 10))
	assert.Equal(t, "Xiaomi 小米...", TruncateURL("Xiaomi 小米手机 14 Ultra", 12))
	assert.Equal(t, "小米手机", TruncateURL("小米手机", 4), "Expect rune count, not bytes, against the limit")
	assert.Equal(t, "abcdef", TruncateURL("abcdef", 3), "Expect tiny limits to leave the text alone")
}
