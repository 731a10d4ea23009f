package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/dealerops/rental-engine/internal/domain"
)

// TxManager runs a function inside a single database transaction.
// Lifecycle operations that touch several tables (open rental, close
// rental, payment + balance recompute) go through this so they commit
// or roll back as a unit.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

// EquipmentRepository defines the interface for equipment data operations.
// All lookups are scoped by dealer id.
type EquipmentRepository interface {
	// WithTx returns a copy of the repository bound to the transaction.
	WithTx(tx *sqlx.Tx) EquipmentRepository

	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Equipment, error)
	List(ctx context.Context, dealerID uuid.UUID, filter domain.EquipmentFilter) ([]*domain.Equipment, int, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	SoftDelete(ctx context.Context, dealerID, id uuid.UUID) (bool, error)

	// ClaimForRental performs the available -> rented transition as a
	// single conditional write. It reports false when the equipment was
	// not available, so a concurrent open on the same equipment cannot
	// double-book it.
	ClaimForRental(ctx context.Context, dealerID, equipmentID, rentalID uuid.UUID, expectedReturn *time.Time) (bool, error)

	// Release returns rented equipment to available and clears the
	// active rental reference and expected return date.
	Release(ctx context.Context, dealerID, equipmentID, rentalID uuid.UUID) error

	ListMaintenanceDue(ctx context.Context, dealerID uuid.UUID, before time.Time) ([]*domain.Equipment, error)
	CountByAvailability(ctx context.Context, dealerID uuid.UUID) (map[string]int, error)
}

// RentalRepository defines the interface for rental data operations
type RentalRepository interface {
	WithTx(tx *sqlx.Tx) RentalRepository

	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Rental, error)
	List(ctx context.Context, dealerID uuid.UUID, filter domain.RentalFilter) ([]*domain.Rental, int, error)
	ListByEquipment(ctx context.Context, dealerID, equipmentID uuid.UUID) ([]*domain.Rental, error)
	ListByCustomer(ctx context.Context, dealerID, customerID uuid.UUID) ([]*domain.Rental, error)

	// Complete closes an active rental. The status check and the write
	// are one conditional UPDATE; false means the rental was not active.
	Complete(ctx context.Context, dealerID, rentalID uuid.UUID, returnCondition string, notes *string, closedAt time.Time) (bool, error)

	// Cancel voids a rental. False means it was already cancelled.
	Cancel(ctx context.Context, dealerID, rentalID uuid.UUID) (bool, error)

	CountActiveByCustomer(ctx context.Context, dealerID, customerID uuid.UUID) (int, error)
	ListOverdue(ctx context.Context, dealerID uuid.UUID, asOf time.Time) ([]*domain.Rental, error)
	CountByStatus(ctx context.Context, dealerID uuid.UUID) (map[string]int, error)
}

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	WithTx(tx *sqlx.Tx) CustomerRepository

	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, dealerID uuid.UUID, filter domain.CustomerFilter) ([]*domain.Customer, int, error)
	Update(ctx context.Context, customer *domain.Customer) error
	SoftDelete(ctx context.Context, dealerID, id uuid.UUID) (bool, error)

	IncrementTotalRentals(ctx context.Context, dealerID, customerID uuid.UUID) error

	// SetTotalOutstandingDue rewrites the cached aggregate; callers
	// compute it with LedgerRepository.SumOutstanding in the same
	// transaction.
	SetTotalOutstandingDue(ctx context.Context, dealerID, customerID uuid.UUID, total decimal.Decimal) error

	IDs(ctx context.Context, dealerID uuid.UUID) ([]uuid.UUID, error)
	ListWithOutstanding(ctx context.Context, dealerID uuid.UUID) ([]*domain.Customer, error)
	CountActive(ctx context.Context, dealerID uuid.UUID) (int, error)
}

// LedgerRepository defines the interface for payment record operations
type LedgerRepository interface {
	WithTx(tx *sqlx.Tx) LedgerRepository

	Create(ctx context.Context, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.LedgerEntry, error)
	List(ctx context.Context, dealerID uuid.UUID, filter domain.PaymentFilter) ([]*domain.LedgerEntry, int, error)
	ListByRental(ctx context.Context, dealerID, rentalID uuid.UUID) ([]*domain.LedgerEntry, error)
	ListByCustomer(ctx context.Context, dealerID, customerID uuid.UUID) ([]*domain.LedgerEntry, error)
	Update(ctx context.Context, entry *domain.LedgerEntry) error
	Delete(ctx context.Context, dealerID, id uuid.UUID) (bool, error)

	// SumOutstanding aggregates outstanding_due over all of the
	// customer's entries for the dealer.
	SumOutstanding(ctx context.Context, dealerID, customerID uuid.UUID) (decimal.Decimal, error)

	ListOverdueOutstanding(ctx context.Context, dealerID uuid.UUID, before time.Time) ([]*domain.LedgerEntry, error)
	Totals(ctx context.Context, dealerID uuid.UUID) (paid, outstanding decimal.Decimal, count int, err error)
}

// AlertRepository defines the interface for alert data operations
type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) error
	GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Alert, error)
	List(ctx context.Context, dealerID uuid.UUID, filter domain.AlertFilter) ([]*domain.Alert, int, error)
	ExistsActive(ctx context.Context, dealerID uuid.UUID, alertType string, entityID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, dealerID, id uuid.UUID, status string) (bool, error)
}

// DealerRepository defines the interface for dealer account operations
type DealerRepository interface {
	Create(ctx context.Context, dealer *domain.Dealer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Dealer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Dealer, error)
	ListActive(ctx context.Context) ([]*domain.Dealer, error)
	Update(ctx context.Context, dealer *domain.Dealer) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
