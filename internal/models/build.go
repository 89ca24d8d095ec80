package models

import (
	"time"

	"github.com/google/uuid"
)

// BuildPart is a snapshot of a catalog service selected into a build.
// Price is copied at selection time so later catalog changes don't
// rewrite history.
type BuildPart struct {
	PartID   string  `json:"partId"`
	PartName string  `json:"partName"`
	Price    float64 `json:"price"`
}

// Build represents a user-created car customization build
type Build struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	UserID        uuid.UUID   `json:"user_id" db:"user_id"`
	CarModel      string      `json:"car_model" db:"car_model"`
	Color         string      `json:"color" db:"color"`
	SelectedParts []BuildPart `json:"selected_parts" db:"selected_parts"`
	TotalPrice    float64     `json:"total_price" db:"total_price"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}
