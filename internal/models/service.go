package models

import (
	"time"

	"github.com/google/uuid"
)

// Service represents an installable customization service from the catalog.
// Catalog rows are reference data seeded once at startup and never mutated.
type Service struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Category    string    `json:"category" db:"category"`
	Icon        string    `json:"icon" db:"icon"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
