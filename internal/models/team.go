package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a sales team account in the multi-tenant system
type Team struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Slug string    `json:"slug" db:"slug"` // Unique identifier for subdomain (e.g., "acme-sales", "northwest")
	Name string    `json:"name" db:"name"` // Display name (e.g., "Acme West Coast Sales")

	// Database connection info
	DBHost              string `json:"-" db:"db_host"`
	DBPort              int    `json:"-" db:"db_port"`
	DBName              string `json:"-" db:"db_name"`
	DBUser              string `json:"-" db:"db_user"`
	DBPasswordEncrypted string `json:"-" db:"db_password_encrypted"`

	// Subscription
	Plan   string `json:"plan" db:"plan"`     // "free", "pro", "enterprise"
	Status string `json:"status" db:"status"` // "trial", "active", "suspended", "cancelled"

	// Metadata
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"` // Soft delete
}
