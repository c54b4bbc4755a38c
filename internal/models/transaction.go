package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction represents one logged sale. Amounts are integer cents; the
// client renders locale formatting. Recurring transactions feed the monthly
// contract value projection.
type Transaction struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Date        string    `json:"date" db:"date"` // YYYY-MM-DD
	ClientName  string    `json:"client_name" db:"client_name"`
	Product     string    `json:"product" db:"product"`
	AmountCents int64     `json:"amount_cents" db:"amount_cents"`
	IsRecurring bool      `json:"is_recurring" db:"is_recurring"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TransactionCreateRequest is the body for logging a sale
type TransactionCreateRequest struct {
	Date        string `json:"date" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	Product     string `json:"product" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"min=0"`
	IsRecurring bool   `json:"is_recurring"`
}

// TransactionUpdateRequest is the body for editing a sale
type TransactionUpdateRequest struct {
	Date        *string `json:"date"`
	ClientName  *string `json:"client_name"`
	Product     *string `json:"product"`
	AmountCents *int64  `json:"amount_cents" binding:"omitempty,min=0"`
	IsRecurring *bool   `json:"is_recurring"`
}
