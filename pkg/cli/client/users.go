package client

import (
	"context"
	"fmt"
	"net/http"

	"devicehub-go/pkg/models"
)

// CreateUserRequest represents the request payload for creating a user
type CreateUserRequest struct {
	Email string `json:"email"`
}

// CreateUser creates a new user and returns the user with API key
func (c *Client) CreateUser(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	payload := CreateUserRequest{Email: email}
	if err := c.doJSONRequest(ctx, http.MethodPost, "/api/v1/users", payload, &user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return &user, nil
}

// CurrentUser returns the user owning the configured API key
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doGetRequest(ctx, "/api/v1/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
