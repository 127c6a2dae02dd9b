package db

import (
	"context"
	"errors"
	"fmt"

	"devicehub-go/pkg/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const deviceColumns = `id, user_id, name, brand, COALESCE(source_url, ''), image_url, specs, created_at, updated_at`

// GetUserByAPIKey retrieves a user by their API key
func (db *DB) GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	var user models.User
	err := db.Pool.QueryRow(ctx,
		`SELECT id, email, api_key, created_at, updated_at
		 FROM users WHERE api_key = $1`,
		apiKey,
	).Scan(
		&user.ID,
		&user.Email,
		&user.APIKey,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// CreateUser creates a new user
func (db *DB) CreateUser(ctx context.Context, email, apiKey string) (*models.User, error) {
	var user models.User
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO users (email, api_key)
		 VALUES ($1, $2)
		 RETURNING id, email, api_key, created_at, updated_at`,
		email, apiKey,
	).Scan(
		&user.ID,
		&user.Email,
		&user.APIKey,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return nil, fmt.Errorf("user %w", ErrDuplicate)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func scanDevice(row pgx.Row) (*models.Device, error) {
	var d models.Device
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.Name,
		&d.Brand,
		&d.SourceURL,
		&d.ImageURL,
		&d.Specs,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDevices retrieves all devices for a user, newest first
func (db *DB) ListDevices(ctx context.Context, userID uuid.UUID) ([]models.Device, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+deviceColumns+`
		 FROM devices
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query devices: %w", err)
	}
	defer rows.Close()

	devices := []models.Device{}
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, *d)
	}

	return devices, rows.Err()
}

// CreateDevice inserts a device. An empty source URL is stored as NULL so it
// never collides with another device.
func (db *DB) CreateDevice(ctx context.Context, userID uuid.UUID, device models.DeviceCreate) (*models.Device, error) {
	var specs any
	if len(device.Specs) > 0 {
		specs = device.Specs
	}

	created, err := scanDevice(db.Pool.QueryRow(ctx,
		`INSERT INTO devices (user_id, name, brand, source_url, image_url, specs)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		 RETURNING `+deviceColumns,
		userID, device.Name, device.Brand, device.SourceURL, device.ImageURL, specs,
	))

	if isUniqueViolation(err) {
		return nil, fmt.Errorf("device %w", ErrDuplicate)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	return created, nil
}

// GetDeviceByID retrieves a device by ID
func (db *DB) GetDeviceByID(ctx context.Context, deviceID, userID uuid.UUID) (*models.Device, error) {
	d, err := scanDevice(db.Pool.QueryRow(ctx,
		`SELECT `+deviceColumns+`
		 FROM devices
		 WHERE id = $1 AND user_id = $2`,
		deviceID, userID,
	))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("device %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return d, nil
}

// DeleteDevice deletes a device
func (db *DB) DeleteDevice(ctx context.Context, deviceID, userID uuid.UUID) error {
	result, err := db.Pool.Exec(ctx,
		`DELETE FROM devices WHERE id = $1 AND user_id = $2`,
		deviceID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("device %w", ErrNotFound)
	}

	return nil
}
