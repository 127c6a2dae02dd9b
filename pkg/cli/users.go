package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"devicehub-go/pkg/cli/client"
	"devicehub-go/pkg/config"
)

// RegisterUser creates a new user account and saves the API key
func (a *App) RegisterUser(email string) error {
	apiClient, err := a.getClientForRegistration()
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RequestTimeout())
	defer cancel()

	user, err := apiClient.CreateUser(ctx, email)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
			return fmt.Errorf("a user with email %s already exists", email)
		}
		return err
	}

	// Save API key to config
	a.cfg.CLI.APIKey = user.APIKey
	err = config.Update(func(cfg *config.Config) error {
		cfg.CLI.APIKey = user.APIKey
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}

	// Update the client with the new API key
	a.client = client.NewClient(a.cfg.CLI.BaseURL, user.APIKey, a.cfg.RequestTimeout())

	fmt.Println("✓ User registered successfully!")
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Printf("  User ID: %s\n", user.ID.String())
	fmt.Printf("  API key saved to config automatically\n")
	fmt.Println("\n⚠️  Save this API key securely (it won't be shown again):")
	fmt.Printf("  %s\n", user.APIKey)

	return nil
}
