package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"devicehub-go/pkg/cli/client"
	"devicehub-go/pkg/models"
	"devicehub-go/pkg/scraper"

	"github.com/charmbracelet/lipgloss"
)

// renderErrorView renders a standard error view with exit message
func renderErrorView(err error) string {
	return "\n" + renderError(fmt.Sprintf("Error: %v", err)) + "\n\n" +
		helpStyle.Render("Press any key to exit...") + "\n"
}

// renderEmptyState renders a standard empty state message
func renderEmptyState(message string) string {
	return "\n" + mutedStyle.Render(message) + "\n\n" +
		helpStyle.Render("Press any key to exit...") + "\n"
}

func renderLoadingState(message string) string {
	return "\n" + infoStyle.Render(message) + "\n"
}

// renderSuccessView renders a standard success view with exit message
func renderSuccessView(message string) string {
	return "\n" + renderSuccess(message) + "\n\n" +
		helpStyle.Render("Press any key to exit...") + "\n"
}

// renderDeviceList renders a selectable list of devices with navigation markers
func renderDeviceList(devices []models.Device, selected int, subtitle string, maxWidth int) string {
	if len(devices) == 0 {
		return renderEmptyState("No devices found.")
	}

	var b strings.Builder
	if subtitle != "" {
		b.WriteString(boldStyle.Render(subtitle) + "\n\n")
	}

	urlWidth := maxWidth - 4
	if urlWidth < 40 {
		urlWidth = 40
	}

	for i, device := range devices {
		marker := " "
		nameStyle := deviceNameStyle
		if i == selected {
			marker = selectedMarkerStyle.Render("→")
			nameStyle = selectedStyle
		}

		b.WriteString(fmt.Sprintf("%s %s %s\n", marker, nameStyle.Render(device.Name), mutedStyle.Render("("+device.Brand+")")))
		b.WriteString(fmt.Sprintf("  %s\n", deviceURLStyle.Render(truncateURL(sourceOrPlaceholder(device), urlWidth))))
	}

	b.WriteString("\n")
	return b.String()
}

func sourceOrPlaceholder(device models.Device) string {
	if device.SourceURL == "" {
		return "(no source URL)"
	}
	return device.SourceURL
}

// truncateURL truncates a URL or name to maxLen runes
func truncateURL(url string, maxLen int) string {
	runes := []rune(url)
	if maxLen < 4 || len(runes) <= maxLen {
		return url
	}
	return string(runes[:maxLen-3]) + "..."
}

// renderDeviceDetails renders the device header fields
func renderDeviceDetails(device *models.Device) string {
	if device == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(fieldLabelStyle.Render("ID:"))
	b.WriteString(fmt.Sprintf(" %s\n", deviceIDStyle.Render(device.ID.String())))
	b.WriteString(fieldLabelStyle.Render("Name:"))
	b.WriteString(fmt.Sprintf(" %s\n", device.Name))
	b.WriteString(fieldLabelStyle.Render("Brand:"))
	b.WriteString(fmt.Sprintf(" %s\n", device.Brand))
	b.WriteString(fieldLabelStyle.Render("Source:"))
	b.WriteString(fmt.Sprintf(" %s\n", sourceOrPlaceholder(*device)))
	if device.ImageURL != "" {
		b.WriteString(fieldLabelStyle.Render("Image:"))
		b.WriteString(fmt.Sprintf(" %s\n", device.ImageURL))
	}
	b.WriteString(fieldLabelStyle.Render("Imported:"))
	b.WriteString(fmt.Sprintf(" %s\n", device.CreatedAt.Format("2006-01-02 15:04")))

	return b.String()
}

type specSection struct {
	Name   string `json:"name"`
	Fields []struct {
		Label string `json:"label"`
		Value string `json:"value"`
	} `json:"fields"`
}

// renderDeviceDetailsFull renders the header fields plus the spec sheet. Specs
// in an unknown shape are shown as indented JSON.
func renderDeviceDetailsFull(device *models.Device, maxWidth int) string {
	if device == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(renderDeviceDetails(device))
	b.WriteString("\n")

	if len(device.Specs) == 0 || string(device.Specs) == "null" {
		b.WriteString(fieldLabelStyle.Render("Specs:"))
		b.WriteString(" " + mutedStyle.Render("(not set)") + "\n")
		return b.String()
	}

	var sections []specSection
	if err := json.Unmarshal(device.Specs, &sections); err != nil {
		raw, _ := json.MarshalIndent(device.Specs, "  ", "  ")
		b.WriteString(fieldLabelStyle.Render("Specs:") + "\n  " + string(raw) + "\n")
		return b.String()
	}

	for _, s := range sections {
		b.WriteString(boldStyle.Render(s.Name) + "\n")
		for _, f := range s.Fields {
			label := fieldLabelStyle.Render(fmt.Sprintf("  %-14s", f.Label))
			for i, line := range strings.Split(f.Value, "\n") {
				if i > 0 {
					label = strings.Repeat(" ", lipgloss.Width(label))
				}
				b.WriteString(label + truncateURL(line, maxWidth-20) + "\n")
			}
		}
	}

	return b.String()
}

// handleListNavigation handles common navigation keys for list views (up/down/j/k)
// Returns the new selected index and whether navigation occurred
func handleListNavigation(key string, selected int, total int) (newSelected int, handled bool) {
	switch key {
	case "up", "k":
		if selected > 0 {
			return selected - 1, true
		}
		return selected, true
	case "down", "j":
		if selected < total-1 {
			return selected + 1, true
		}
		return selected, true
	}
	return selected, false
}

// handleQuitKeys checks if a key should quit the current view
func handleQuitKeys(key string) bool {
	switch key {
	case "ctrl+c", "q", "esc":
		return true
	}
	return false
}

// isRetryable reports whether err is a transient scraper failure worth
// another attempt.
func isRetryable(err error) bool {
	var scraperErr *scraper.ScraperError
	return errors.As(err, &scraperErr) && scraperErr.IsRetryable()
}

// userFacingError converts structured scraper and API errors into friendly
// messages, while leaving other error types unchanged.
func userFacingError(err error) error {
	if err == nil {
		return nil
	}

	var scraperErr *scraper.ScraperError
	if errors.As(err, &scraperErr) {
		return errors.New(scraperErr.UserMessage())
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.UserMessage())
	}

	return err
}
