package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"devicehub-go/pkg/models"

	"github.com/google/uuid"
)

// ListDevices retrieves all devices for the authenticated user
func (c *Client) ListDevices(ctx context.Context) ([]models.Device, error) {
	var devices []models.Device
	if err := c.doGetRequest(ctx, "/api/v1/devices", &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// GetDevice retrieves a specific device by ID
func (c *Client) GetDevice(ctx context.Context, id uuid.UUID) (*models.Device, error) {
	var device models.Device
	path := fmt.Sprintf("/api/v1/devices/%s", id.String())
	if err := c.doGetRequest(ctx, path, &device); err != nil {
		return nil, err
	}
	return &device, nil
}

// CreateDevice posts a device; payload is a models.DeviceCreate or a raw
// scraped JSON document.
func (c *Client) CreateDevice(ctx context.Context, payload any) (*models.Device, error) {
	var created models.Device
	if err := c.doJSONRequest(ctx, http.MethodPost, "/api/v1/devices", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Submit forwards a scraped payload unchanged; it is the importer's Submitter.
func (c *Client) Submit(ctx context.Context, payload json.RawMessage) error {
	_, err := c.CreateDevice(ctx, payload)
	return err
}

// DeleteDevice deletes a device by ID
func (c *Client) DeleteDevice(ctx context.Context, id uuid.UUID) error {
	path := fmt.Sprintf("/api/v1/devices/%s", id.String())
	return c.doDeleteRequest(ctx, path)
}
