package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is a dealer-scoped renter. TotalOutstandingDue is a cached
// aggregate: it must always equal the sum of outstanding_due across the
// customer's ledger entries, and is rewritten in the same transaction
// as every ledger mutation.
type Customer struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	DealerID            uuid.UUID       `json:"dealer_id" db:"dealer_id"`
	CustomerID          string          `json:"customer_id" db:"customer_id"`
	Name                string          `json:"name" db:"name"`
	ContactNumber       string          `json:"contact_number" db:"contact_number"`
	Email               *string         `json:"email,omitempty" db:"email"`
	BusinessType        string          `json:"business_type" db:"business_type"`
	TotalRentals        int             `json:"total_rentals" db:"total_rentals"`
	TotalOutstandingDue decimal.Decimal `json:"total_outstanding_due" db:"total_outstanding_due"`
	IsActive            bool            `json:"is_active" db:"is_active"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" db:"updated_at"`
}

type CreateCustomerRequest struct {
	Name          string  `json:"name" validate:"required"`
	ContactNumber string  `json:"contact_number" validate:"required"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	BusinessType  string  `json:"business_type" validate:"required"`
}

type UpdateCustomerRequest struct {
	Name          *string `json:"name,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	BusinessType  *string `json:"business_type,omitempty"`
}

type CustomerFilter struct {
	Search string
	Page   int
	Limit  int
}

type CustomerDetail struct {
	Customer *Customer      `json:"customer"`
	Rentals  []*Rental      `json:"rentals"`
	Payments []*LedgerEntry `json:"payments"`
}
