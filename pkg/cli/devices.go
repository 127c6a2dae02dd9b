package cli

import (
	"context"
	"fmt"

	"devicehub-go/pkg/cli/devices"
)

// ListDevices prints the catalog as a table.
func (a *App) ListDevices() error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout())
	defer cancel()

	list, err := apiClient.ListDevices(ctx)
	if err != nil {
		return fmt.Errorf("error fetching devices: %w", err)
	}

	devices.WriteToStdout(devices.FormatTableOutput(list))
	return nil
}
