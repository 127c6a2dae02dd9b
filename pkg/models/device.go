package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Device is a catalog entry. Specs holds the scraped spec sheet verbatim.
type Device struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserID    uuid.UUID       `db:"user_id" json:"user_id"`
	Name      string          `db:"name" json:"name"`
	Brand     string          `db:"brand" json:"brand"`
	SourceURL string          `db:"source_url" json:"source_url,omitempty"`
	ImageURL  string          `db:"image_url" json:"image_url,omitempty"`
	Specs     json.RawMessage `db:"specs" json:"specs,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// DeviceCreate is the body of the create endpoint; a scraper payload binds
// to it directly and unknown fields are ignored.
type DeviceCreate struct {
	Name      string          `json:"name" binding:"required"`
	Brand     string          `json:"brand,omitempty"`
	SourceURL string          `json:"source_url,omitempty"`
	ImageURL  string          `json:"image_url,omitempty"`
	Specs     json.RawMessage `json:"specs,omitempty"`
}
