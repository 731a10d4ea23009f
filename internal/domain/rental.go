package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RentalStatusActive    = "active"
	RentalStatusCompleted = "completed"
	RentalStatusOverdue   = "overdue"
	RentalStatusCancelled = "cancelled"
)

const (
	ReturnConditionGood    = "good"
	ReturnConditionDamaged = "damaged"
	ReturnConditionBroken  = "broken"
)

// Rental is one customer/equipment engagement. Created only against
// available equipment; completed only from active. Cancellation voids
// the record but keeps it for audit.
type Rental struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	DealerID           uuid.UUID       `json:"dealer_id" db:"dealer_id"`
	RentalID           string          `json:"rental_id" db:"rental_id"`
	CustomerID         uuid.UUID       `json:"customer_id" db:"customer_id"`
	EquipmentID        uuid.UUID       `json:"equipment_id" db:"equipment_id"`
	OpenedAt           time.Time       `json:"opened_at" db:"opened_at"`
	ExpectedReturnDate *time.Time      `json:"expected_return_date,omitempty" db:"expected_return_date"`
	ClosedAt           *time.Time      `json:"closed_at,omitempty" db:"closed_at"`
	ReturnCondition    *string         `json:"return_condition,omitempty" db:"return_condition"`
	AgreedAmount       decimal.Decimal `json:"agreed_amount" db:"agreed_amount"`
	DepositAmount      decimal.Decimal `json:"deposit_amount" db:"deposit_amount"`
	Status             string          `json:"status" db:"status"`
	Notes              *string         `json:"notes,omitempty" db:"notes"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`

	// Joined summary fields, populated on list/detail reads.
	CustomerName  *string `json:"customer_name,omitempty" db:"customer_name"`
	EquipmentName *string `json:"equipment_name,omitempty" db:"equipment_name"`
}

type OpenRentalRequest struct {
	CustomerID         uuid.UUID       `json:"customer_id" validate:"required"`
	EquipmentID        uuid.UUID       `json:"equipment_id" validate:"required"`
	AgreedAmount       decimal.Decimal `json:"agreed_amount" validate:"required"`
	DepositAmount      decimal.Decimal `json:"deposit_amount"`
	ExpectedReturnDate *time.Time      `json:"expected_return_date,omitempty"`
	Notes              *string         `json:"notes,omitempty"`
}

type CloseRentalRequest struct {
	ReturnCondition string  `json:"return_condition" validate:"required,oneof=good damaged broken"`
	Notes           *string `json:"notes,omitempty"`
}

type RentalFilter struct {
	Status     string
	CustomerID *uuid.UUID
	Search     string
	Page       int
	Limit      int
}

// RentalDetail is the fetch-one payload: the rental with its customer,
// equipment and payment records.
type RentalDetail struct {
	Rental    *Rental        `json:"rental"`
	Customer  *Customer      `json:"customer"`
	Equipment *Equipment     `json:"equipment"`
	Payments  []*LedgerEntry `json:"payments"`
}
