package devices

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"devicehub-go/pkg/importer"
	"devicehub-go/pkg/models"
)

// FormatTableOutput formats devices as a table for CLI output
func FormatTableOutput(devices []models.Device) string {
	if len(devices) == 0 {
		return "No devices found."
	}

	var b strings.Builder

	b.WriteString("\nYour Devices\n\n")

	w := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tBrand\tSource\tImported")
	fmt.Fprintln(w, strings.Repeat("─", 11)+"\t"+strings.Repeat("─", 30)+"\t"+strings.Repeat("─", 12)+"\t"+strings.Repeat("─", 50)+"\t"+strings.Repeat("─", 16))

	for _, device := range devices {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			ShortenID(device.ID),
			device.Name,
			device.Brand,
			TruncateURL(SourceOrPlaceholder(device), 50),
			FormatDate(device.CreatedAt),
		)
	}

	w.Flush()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %d device(s)\n", len(devices)))

	return b.String()
}

// FormatRunSummary formats the final state of an import run, listing the
// failed items with their messages.
func FormatRunSummary(snap importer.Snapshot) string {
	if snap.Progress.Total == 0 {
		if snap.Err != nil {
			return FormatErrorMessage(snap.Err)
		}
		return FormatEmptyState("No import run.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Import %s: %s\n", snap.State, snap.ListingURL))
	b.WriteString(fmt.Sprintf("  Completed: %d\n", snap.Progress.Completed))
	b.WriteString(fmt.Sprintf("  Failed:    %d\n", snap.Progress.Failed))
	b.WriteString(fmt.Sprintf("  Pending:   %d\n", snap.Progress.Pending()))
	if !snap.StartedAt.IsZero() && !snap.FinishedAt.IsZero() {
		b.WriteString(fmt.Sprintf("  Duration:  %s\n", snap.FinishedAt.Sub(snap.StartedAt).Round(time.Second)))
	}

	var failed []importer.WorkItem
	for _, item := range snap.Items {
		if item.Status == importer.StatusFailed {
			failed = append(failed, item)
		}
	}
	if len(failed) > 0 {
		b.WriteString("\nFailed items:\n")
		w := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
		for _, item := range failed {
			fmt.Fprintf(w, "  %s\t%s\n", TruncateURL(item.URL, 60), item.Message)
		}
		w.Flush()
	}

	return b.String()
}

// FormatErrorMessage formats an error message consistently
func FormatErrorMessage(err error) string {
	return fmt.Sprintf("❌ Error: %v\n", err)
}

// FormatEmptyState formats an empty state message
func FormatEmptyState(message string) string {
	return fmt.Sprintf("\n%s\n", message)
}

// WriteToStdout writes formatted output to stdout
func WriteToStdout(content string) {
	fmt.Fprint(os.Stdout, content)
}

// WriteToStderr writes formatted output to stderr
func WriteToStderr(content string) {
	fmt.Fprint(os.Stderr, content)
}
