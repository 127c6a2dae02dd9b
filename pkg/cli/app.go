package cli

import (
	"fmt"

	"devicehub-go/pkg/cli/client"
	"devicehub-go/pkg/cli/logger"
	"devicehub-go/pkg/cli/tui"
	"devicehub-go/pkg/config"
	"devicehub-go/pkg/importer"
	"devicehub-go/pkg/scraper"

	tea "github.com/charmbracelet/bubbletea"
)

type App struct {
	cfg     *config.Config
	client  *client.Client
	scraper *scraper.ScraperService
}

func NewApp(cfg *config.Config) *App {
	return &App{
		cfg: cfg,
	}
}

// getClient returns the HTTP client, creating it if necessary
func (a *App) getClient() (*client.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	if a.cfg.CLI.BaseURL == "" {
		return nil, fmt.Errorf("API base URL not configured")
	}
	if a.cfg.CLI.APIKey == "" {
		return nil, fmt.Errorf("API key not configured (run with -register <email> first)")
	}

	a.client = client.NewClient(a.cfg.CLI.BaseURL, a.cfg.CLI.APIKey, a.cfg.RequestTimeout())
	return a.client, nil
}

// getClientForRegistration returns an HTTP client without API key (for registration)
func (a *App) getClientForRegistration() (*client.Client, error) {
	if a.cfg.CLI.BaseURL == "" {
		return nil, fmt.Errorf("API base URL not configured")
	}
	return client.NewClient(a.cfg.CLI.BaseURL, "", a.cfg.RequestTimeout()), nil
}

// getScraperService returns the scraper service client, creating it if necessary
func (a *App) getScraperService() (*scraper.ScraperService, error) {
	if a.scraper != nil {
		return a.scraper, nil
	}
	if a.cfg.Scraper.BaseURL == "" {
		return nil, fmt.Errorf("scraper base URL not configured")
	}

	a.scraper = scraper.NewScraperService(a.cfg.Scraper.BaseURL, a.cfg.RequestTimeout())
	return a.scraper, nil
}

func (a *App) importOptions() importer.Options {
	return importer.Options{
		ThrottleEvery: a.cfg.Import.ThrottleEvery,
		Cooldown:      a.cfg.Cooldown(),
		Logger:        logger.Slog(),
	}
}

// runnerFactory wires a fresh importer to the scraper service and the catalog
// API for every import flow.
func (a *App) runnerFactory() (func() *importer.Runner, error) {
	apiClient, err := a.getClient()
	if err != nil {
		return nil, err
	}
	scraperService, err := a.getScraperService()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize scraper service: %w", err)
	}

	opts := a.importOptions()
	return func() *importer.Runner {
		return importer.NewRunner(scraperService, scraperService, apiClient, opts)
	}, nil
}

// Run starts the interactive menu.
func (a *App) Run() error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}
	newRunner, err := a.runnerFactory()
	if err != nil {
		return err
	}

	logger.Log("starting TUI: api=%s scraper=%s", a.cfg.CLI.BaseURL, a.cfg.Scraper.BaseURL)

	root := tui.NewRootModel(apiClient, func() tui.ImportController { return newRunner() }, a.cfg.Import.ThrottleEvery)
	if _, err := tea.NewProgram(root, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
