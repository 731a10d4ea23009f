package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/dealerops/rental-engine/internal/domain"
	"github.com/dealerops/rental-engine/internal/repository"
)

// MockTxManager runs the transactional function directly. Combined
// with WithTx returning the mock itself, services under test exercise
// the same expectations inside and outside transactions.
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}

type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) WithTx(tx *sqlx.Tx) repository.EquipmentRepository {
	return m
}

func (m *MockEquipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}

func (m *MockEquipmentRepository) GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Equipment, error) {
	args := m.Called(ctx, dealerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) List(ctx context.Context, dealerID uuid.UUID, filter domain.EquipmentFilter) ([]*domain.Equipment, int, error) {
	args := m.Called(ctx, dealerID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Equipment), args.Int(1), args.Error(2)
}

func (m *MockEquipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}

func (m *MockEquipmentRepository) SoftDelete(ctx context.Context, dealerID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, dealerID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockEquipmentRepository) ClaimForRental(ctx context.Context, dealerID, equipmentID, rentalID uuid.UUID, expectedReturn *time.Time) (bool, error) {
	args := m.Called(ctx, dealerID, equipmentID, rentalID, expectedReturn)
	return args.Bool(0), args.Error(1)
}

func (m *MockEquipmentRepository) Release(ctx context.Context, dealerID, equipmentID, rentalID uuid.UUID) error {
	args := m.Called(ctx, dealerID, equipmentID, rentalID)
	return args.Error(0)
}

func (m *MockEquipmentRepository) ListMaintenanceDue(ctx context.Context, dealerID uuid.UUID, before time.Time) ([]*domain.Equipment, error) {
	args := m.Called(ctx, dealerID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) CountByAvailability(ctx context.Context, dealerID uuid.UUID) (map[string]int, error) {
	args := m.Called(ctx, dealerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

type MockRentalRepository struct {
	mock.Mock
}

func (m *MockRentalRepository) WithTx(tx *sqlx.Tx) repository.RentalRepository {
	return m
}

func (m *MockRentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}

func (m *MockRentalRepository) GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Rental, error) {
	args := m.Called(ctx, dealerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockRentalRepository) List(ctx context.Context, dealerID uuid.UUID, filter domain.RentalFilter) ([]*domain.Rental, int, error) {
	args := m.Called(ctx, dealerID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Rental), args.Int(1), args.Error(2)
}

func (m *MockRentalRepository) ListByEquipment(ctx context.Context, dealerID, equipmentID uuid.UUID) ([]*domain.Rental, error) {
	args := m.Called(ctx, dealerID, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Rental), args.Error(1)
}

func (m *MockRentalRepository) ListByCustomer(ctx context.Context, dealerID, customerID uuid.UUID) ([]*domain.Rental, error) {
	args := m.Called(ctx, dealerID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Rental), args.Error(1)
}

func (m *MockRentalRepository) Complete(ctx context.Context, dealerID, rentalID uuid.UUID, returnCondition string, notes *string, closedAt time.Time) (bool, error) {
	args := m.Called(ctx, dealerID, rentalID, returnCondition, notes, closedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockRentalRepository) Cancel(ctx context.Context, dealerID, rentalID uuid.UUID) (bool, error) {
	args := m.Called(ctx, dealerID, rentalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRentalRepository) CountActiveByCustomer(ctx context.Context, dealerID, customerID uuid.UUID) (int, error) {
	args := m.Called(ctx, dealerID, customerID)
	return args.Int(0), args.Error(1)
}

func (m *MockRentalRepository) ListOverdue(ctx context.Context, dealerID uuid.UUID, asOf time.Time) ([]*domain.Rental, error) {
	args := m.Called(ctx, dealerID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Rental), args.Error(1)
}

func (m *MockRentalRepository) CountByStatus(ctx context.Context, dealerID uuid.UUID) (map[string]int, error) {
	args := m.Called(ctx, dealerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) WithTx(tx *sqlx.Tx) repository.CustomerRepository {
	return m
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Customer, error) {
	args := m.Called(ctx, dealerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) List(ctx context.Context, dealerID uuid.UUID, filter domain.CustomerFilter) ([]*domain.Customer, int, error) {
	args := m.Called(ctx, dealerID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Customer), args.Int(1), args.Error(2)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) SoftDelete(ctx context.Context, dealerID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, dealerID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) IncrementTotalRentals(ctx context.Context, dealerID, customerID uuid.UUID) error {
	args := m.Called(ctx, dealerID, customerID)
	return args.Error(0)
}

func (m *MockCustomerRepository) SetTotalOutstandingDue(ctx context.Context, dealerID, customerID uuid.UUID, total decimal.Decimal) error {
	args := m.Called(ctx, dealerID, customerID, total)
	return args.Error(0)
}

func (m *MockCustomerRepository) IDs(ctx context.Context, dealerID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, dealerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockCustomerRepository) ListWithOutstanding(ctx context.Context, dealerID uuid.UUID) ([]*domain.Customer, error) {
	args := m.Called(ctx, dealerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CountActive(ctx context.Context, dealerID uuid.UUID) (int, error) {
	args := m.Called(ctx, dealerID)
	return args.Int(0), args.Error(1)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) WithTx(tx *sqlx.Tx) repository.LedgerRepository {
	return m
}

func (m *MockLedgerRepository) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, dealerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) List(ctx context.Context, dealerID uuid.UUID, filter domain.PaymentFilter) ([]*domain.LedgerEntry, int, error) {
	args := m.Called(ctx, dealerID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.LedgerEntry), args.Int(1), args.Error(2)
}

func (m *MockLedgerRepository) ListByRental(ctx context.Context, dealerID, rentalID uuid.UUID) ([]*domain.LedgerEntry, error) {
	args := m.Called(ctx, dealerID, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListByCustomer(ctx context.Context, dealerID, customerID uuid.UUID) ([]*domain.LedgerEntry, error) {
	args := m.Called(ctx, dealerID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) Update(ctx context.Context, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) Delete(ctx context.Context, dealerID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, dealerID, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) SumOutstanding(ctx context.Context, dealerID, customerID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, dealerID, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) ListOverdueOutstanding(ctx context.Context, dealerID uuid.UUID, before time.Time) ([]*domain.LedgerEntry, error) {
	args := m.Called(ctx, dealerID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) Totals(ctx context.Context, dealerID uuid.UUID) (decimal.Decimal, decimal.Decimal, int, error) {
	args := m.Called(ctx, dealerID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Int(2), args.Error(3)
}

type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertRepository) GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Alert, error) {
	args := m.Called(ctx, dealerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alert), args.Error(1)
}

func (m *MockAlertRepository) List(ctx context.Context, dealerID uuid.UUID, filter domain.AlertFilter) ([]*domain.Alert, int, error) {
	args := m.Called(ctx, dealerID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Alert), args.Int(1), args.Error(2)
}

func (m *MockAlertRepository) ExistsActive(ctx context.Context, dealerID uuid.UUID, alertType string, entityID uuid.UUID) (bool, error) {
	args := m.Called(ctx, dealerID, alertType, entityID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAlertRepository) UpdateStatus(ctx context.Context, dealerID, id uuid.UUID, status string) (bool, error) {
	args := m.Called(ctx, dealerID, id, status)
	return args.Bool(0), args.Error(1)
}

type MockDealerRepository struct {
	mock.Mock
}

func (m *MockDealerRepository) Create(ctx context.Context, dealer *domain.Dealer) error {
	args := m.Called(ctx, dealer)
	return args.Error(0)
}

func (m *MockDealerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dealer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dealer), args.Error(1)
}

func (m *MockDealerRepository) GetByEmail(ctx context.Context, email string) (*domain.Dealer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dealer), args.Error(1)
}

func (m *MockDealerRepository) Update(ctx context.Context, dealer *domain.Dealer) error {
	args := m.Called(ctx, dealer)
	return args.Error(0)
}

func (m *MockDealerRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockDealerRepository) ListActive(ctx context.Context) ([]*domain.Dealer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Dealer), args.Error(1)
}
