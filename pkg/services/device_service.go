package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"devicehub-go/pkg/models"
	"devicehub-go/pkg/utils"

	"github.com/google/uuid"
)

// ErrInvalidDevice marks create requests rejected before reaching storage.
var ErrInvalidDevice = errors.New("invalid device")

// DeviceStore is the persistence the service needs; *db.DB implements it.
type DeviceStore interface {
	ListDevices(ctx context.Context, userID uuid.UUID) ([]models.Device, error)
	GetDeviceByID(ctx context.Context, deviceID, userID uuid.UUID) (*models.Device, error)
	CreateDevice(ctx context.Context, userID uuid.UUID, device models.DeviceCreate) (*models.Device, error)
	DeleteDevice(ctx context.Context, deviceID, userID uuid.UUID) error
}

// DeviceService handles business logic for device operations
type DeviceService struct {
	store DeviceStore
}

func NewDeviceService(store DeviceStore) *DeviceService {
	return &DeviceService{store: store}
}

// ListDevices retrieves all devices for a user
func (s *DeviceService) ListDevices(ctx context.Context, userID uuid.UUID) ([]models.Device, error) {
	return s.store.ListDevices(ctx, userID)
}

// GetDevice retrieves a single device by ID
func (s *DeviceService) GetDevice(ctx context.Context, deviceID, userID uuid.UUID) (*models.Device, error) {
	return s.store.GetDeviceByID(ctx, deviceID, userID)
}

// CreateDevice normalizes and stores an imported device. The brand defaults
// to the first word of the name.
func (s *DeviceService) CreateDevice(ctx context.Context, userID uuid.UUID, device models.DeviceCreate) (*models.Device, error) {
	device.Name = strings.Join(strings.Fields(device.Name), " ")
	if device.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidDevice)
	}

	device.Brand = strings.TrimSpace(device.Brand)
	if device.Brand == "" {
		device.Brand = strings.Fields(device.Name)[0]
	}

	if strings.TrimSpace(device.SourceURL) != "" {
		u, err := utils.ValidateURL(device.SourceURL)
		if err != nil {
			return nil, fmt.Errorf("%w: source_url: %v", ErrInvalidDevice, err)
		}
		device.SourceURL = u
	} else {
		device.SourceURL = ""
	}
	device.ImageURL = strings.TrimSpace(device.ImageURL)

	if len(device.Specs) > 0 && !json.Valid(device.Specs) {
		return nil, fmt.Errorf("%w: specs must be JSON", ErrInvalidDevice)
	}

	return s.store.CreateDevice(ctx, userID, device)
}

// DeleteDevice deletes a device
func (s *DeviceService) DeleteDevice(ctx context.Context, deviceID, userID uuid.UUID) error {
	return s.store.DeleteDevice(ctx, deviceID, userID)
}
