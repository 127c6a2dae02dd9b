package tui

import (
	"fmt"
	"strings"
)

// HelpItem represents a single keyboard shortcut and its description
type HelpItem struct {
	Key         string
	Description string
}

// RootMenuHelpContent returns help for root menu
func RootMenuHelpContent() string {
	items := []HelpItem{
		{"1-2", "Select menu option (Import devices / Manage devices)"},
		{"q / Esc", "Quit"},
	}
	return renderHelpItems(items)
}

// ImportHelpContent returns help for the import run view
func ImportHelpContent() string {
	items := []HelpItem{
		{"Enter", "Discover links and start importing"},
		{"p", "Pause after the current device"},
		{"r", "Resume (disabled during cool-down)"},
		{"s", "Stop the run"},
		{"n", "New run (after stop or completion)"},
		{"m", "Return to menu"},
		{"q / Esc", "Quit (stops the run)"},
	}
	return renderHelpItems(items)
}

// ManageDevicesHelpContent returns help for manage devices flow
func ManageDevicesHelpContent() string {
	items := []HelpItem{
		{"↑ / ↓ / j / k", "Navigate device list"},
		{"Enter", "Select device"},
		{"Esc / b", "Go back"},
		{"1 / v", "View details"},
		{"2 / d", "Delete device"},
		{"m", "Return to menu"},
		{"q", "Quit"},
		{"?", "Show this help"},
	}
	return renderHelpItems(items)
}

// renderHelpItems formats help items into a readable string
func renderHelpItems(items []HelpItem) string {
	var b strings.Builder
	keyStyle := boldStyle.Foreground(colorPrimary)
	for _, item := range items {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(item.Key),
			item.Description))
	}
	return b.String()
}
