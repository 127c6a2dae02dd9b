package cli

import (
	"context"
	"fmt"

	"devicehub-go/pkg/cli/devices"
	"devicehub-go/pkg/cli/logger"
	"devicehub-go/pkg/cli/tui"
	"devicehub-go/pkg/scraper"
	"devicehub-go/pkg/utils"

	tea "github.com/charmbracelet/bubbletea"
)

// RunImport opens the import view with discovery already started for
// listingURL, then prints a summary of the run.
func (a *App) RunImport(listingURL string) error {
	listingURL, err := utils.ValidateURL(listingURL)
	if err != nil {
		return err
	}

	if err := a.checkScraper(); err != nil {
		return err
	}

	newRunner, err := a.runnerFactory()
	if err != nil {
		return err
	}
	runner := newRunner()
	defer runner.Close()

	model := tui.NewImportModel(runner, tui.ImportOptions{
		ListingURL:    listingURL,
		AutoStart:     true,
		ThrottleEvery: a.cfg.Import.ThrottleEvery,
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	snap := runner.Snapshot()
	logger.Log("import finished: state=%s completed=%d failed=%d total=%d",
		snap.State, snap.Progress.Completed, snap.Progress.Failed, snap.Progress.Total)
	devices.WriteToStdout(devices.FormatRunSummary(snap))
	return nil
}

// checkScraper fails fast with a hint when the scraper service is down.
func (a *App) checkScraper() error {
	scraperService, err := a.getScraperService()
	if err != nil {
		return fmt.Errorf("failed to initialize scraper service: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout())
	defer cancel()

	fmt.Print("⏳ Checking scraper service... ")
	if err := scraperService.CheckHealth(ctx); err != nil {
		fmt.Println("✗")
		if scraper.IsErrorType(err, scraper.ErrorTypeServiceUnavailable) {
			return fmt.Errorf("%w\n\n💡 Start it with: go run ./cmd/scraper\n"+
				"   or point the CLI elsewhere: -config-set scraper.base_url=http://host:3000", err)
		}
		return fmt.Errorf("scraper service unavailable: %w", err)
	}
	fmt.Println("✓")
	return nil
}
