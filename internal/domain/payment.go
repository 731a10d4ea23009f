package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCash         = "cash"
	PaymentMethodCheck        = "check"
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodOnline       = "online"
	// PaymentMethodPending marks the zero-amount placeholder entry
	// written when a rental opens.
	PaymentMethodPending = "pending"
)

// LedgerEntry is an append-style payment record. OutstandingDue is the
// balance still owed on the referenced rental as of this entry.
type LedgerEntry struct {
	ID                   uuid.UUID       `json:"id" db:"id"`
	DealerID             uuid.UUID       `json:"dealer_id" db:"dealer_id"`
	PaymentID            string          `json:"payment_id" db:"payment_id"`
	CustomerID           uuid.UUID       `json:"customer_id" db:"customer_id"`
	RentalID             uuid.UUID       `json:"rental_id" db:"rental_id"`
	AmountPaid           decimal.Decimal `json:"amount_paid" db:"amount_paid"`
	OutstandingDue       decimal.Decimal `json:"outstanding_due" db:"outstanding_due"`
	Method               string          `json:"method" db:"method"`
	TransactionReference *string         `json:"transaction_reference,omitempty" db:"transaction_reference"`
	Notes                *string         `json:"notes,omitempty" db:"notes"`
	RecordedAt           time.Time       `json:"recorded_at" db:"recorded_at"`
	CreatedAt            time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at" db:"updated_at"`

	// Joined summary fields, populated on list reads.
	CustomerName *string `json:"customer_name,omitempty" db:"customer_name"`
	RentalRef    *string `json:"rental_ref,omitempty" db:"rental_ref"`
}

type RecordPaymentRequest struct {
	CustomerID           uuid.UUID       `json:"customer_id" validate:"required"`
	RentalID             uuid.UUID       `json:"rental_id" validate:"required"`
	AmountPaid           decimal.Decimal `json:"amount_paid"`
	OutstandingDue       decimal.Decimal `json:"outstanding_due"`
	Method               string          `json:"method" validate:"required,oneof=cash check credit_card bank_transfer online"`
	TransactionReference *string         `json:"transaction_reference,omitempty"`
	Notes                *string         `json:"notes,omitempty"`
}

type UpdatePaymentRequest struct {
	AmountPaid           *decimal.Decimal `json:"amount_paid,omitempty"`
	OutstandingDue       *decimal.Decimal `json:"outstanding_due,omitempty"`
	Method               *string          `json:"method,omitempty" validate:"omitempty,oneof=cash check credit_card bank_transfer online"`
	TransactionReference *string          `json:"transaction_reference,omitempty"`
	Notes                *string          `json:"notes,omitempty"`
}

type PaymentFilter struct {
	CustomerID *uuid.UUID
	RentalID   *uuid.UUID
	Page       int
	Limit      int
}
