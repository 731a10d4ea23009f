package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dealerops/rental-engine/internal/config"
	"github.com/dealerops/rental-engine/internal/domain"
	"github.com/dealerops/rental-engine/internal/repository"
	customError "github.com/dealerops/rental-engine/pkg/errors"
	"github.com/dealerops/rental-engine/pkg/utils"
)

// RentalService owns the rental lifecycle: opening a rental claims the
// equipment, seeds the ledger and bumps the customer's counters, all in
// one transaction. Closing and cancelling release the equipment the
// same way.
type RentalService struct {
	tx            repository.TxManager
	rentalRepo    repository.RentalRepository
	equipmentRepo repository.EquipmentRepository
	customerRepo  repository.CustomerRepository
	ledgerRepo    repository.LedgerRepository
	config        *config.Config
	log           zerolog.Logger
}

func NewRentalService(
	tx repository.TxManager,
	rentalRepo repository.RentalRepository,
	equipmentRepo repository.EquipmentRepository,
	customerRepo repository.CustomerRepository,
	ledgerRepo repository.LedgerRepository,
	config *config.Config,
	log zerolog.Logger,
) *RentalService {
	return &RentalService{
		tx:            tx,
		rentalRepo:    rentalRepo,
		equipmentRepo: equipmentRepo,
		customerRepo:  customerRepo,
		ledgerRepo:    ledgerRepo,
		config:        config,
		log:           log,
	}
}

// OpenRental creates a rental against available equipment. The
// equipment claim is a conditional write, so two concurrent opens on
// the same unit cannot both succeed: the loser rolls back whole.
func (s *RentalService) OpenRental(ctx context.Context, dealerID uuid.UUID, request *domain.OpenRentalRequest) (*domain.Rental, error) {
	if err := validate.Struct(request); err != nil {
		return nil, customError.WrapValidation(err.Error())
	}
	if request.AgreedAmount.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapValidation("agreed_amount must be greater than zero")
	}
	if request.DepositAmount.IsNegative() {
		return nil, customError.WrapValidation("deposit_amount must not be negative")
	}

	customer, err := s.customerRepo.GetByID(ctx, dealerID, request.CustomerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCustomerNotFound(request.CustomerID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	equipment, err := s.equipmentRepo.GetByID(ctx, dealerID, request.EquipmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapEquipmentNotFound(request.EquipmentID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	// Fast pre-check; the conditional claim inside the transaction is
	// the authoritative one and reports the same code.
	if equipment.Availability != domain.AvailabilityAvailable {
		return nil, customError.WrapEquipmentUnavailable(equipment.EquipmentID)
	}

	now := time.Now()
	rental := &domain.Rental{
		ID:                 uuid.New(),
		DealerID:           dealerID,
		RentalID:           utils.GenerateRentalID(dealerID),
		CustomerID:         customer.ID,
		EquipmentID:        equipment.ID,
		OpenedAt:           now,
		ExpectedReturnDate: request.ExpectedReturnDate,
		AgreedAmount:       request.AgreedAmount,
		DepositAmount:      request.DepositAmount,
		Status:             domain.RentalStatusActive,
		Notes:              request.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		rentals := s.rentalRepo.WithTx(tx)
		equipments := s.equipmentRepo.WithTx(tx)
		customers := s.customerRepo.WithTx(tx)
		ledger := s.ledgerRepo.WithTx(tx)

		if err := rentals.Create(ctx, rental); err != nil {
			return customError.WrapDatabaseError(err)
		}

		claimed, err := equipments.ClaimForRental(ctx, dealerID, equipment.ID, rental.ID, request.ExpectedReturnDate)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}
		if !claimed {
			return customError.WrapEquipmentUnavailable(equipment.EquipmentID)
		}

		// Seed the ledger with the full amount owed so the outstanding
		// balance is visible from day one.
		entry := &domain.LedgerEntry{
			ID:             uuid.New(),
			DealerID:       dealerID,
			PaymentID:      utils.GeneratePaymentID(dealerID),
			CustomerID:     customer.ID,
			RentalID:       rental.ID,
			AmountPaid:     decimal.Zero,
			OutstandingDue: request.AgreedAmount.Add(request.DepositAmount),
			Method:         domain.PaymentMethodPending,
			RecordedAt:     now,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := ledger.Create(ctx, entry); err != nil {
			return customError.WrapDatabaseError(err)
		}

		if err := customers.IncrementTotalRentals(ctx, dealerID, customer.ID); err != nil {
			return customError.WrapDatabaseError(err)
		}

		total, err := ledger.SumOutstanding(ctx, dealerID, customer.ID)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}
		if err := customers.SetTotalOutstandingDue(ctx, dealerID, customer.ID, total); err != nil {
			return customError.WrapDatabaseError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("rental_id", rental.RentalID).
		Str("customer_id", customer.CustomerID).
		Str("equipment_id", equipment.EquipmentID).
		Msg("rental opened")

	return rental, nil
}

// CloseRental completes an active rental and releases the equipment.
func (s *RentalService) CloseRental(ctx context.Context, dealerID, rentalID uuid.UUID, request *domain.CloseRentalRequest) (*domain.Rental, error) {
	if err := validate.Struct(request); err != nil {
		return nil, customError.WrapValidation(err.Error())
	}

	rental, err := s.rentalRepo.GetByID(ctx, dealerID, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapRentalNotFound(rentalID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	closedAt := time.Now()

	err = s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		rentals := s.rentalRepo.WithTx(tx)
		equipments := s.equipmentRepo.WithTx(tx)

		completed, err := rentals.Complete(ctx, dealerID, rental.ID, request.ReturnCondition, request.Notes, closedAt)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}
		if !completed {
			return customError.WrapRentalNotActive(rental.RentalID)
		}

		if err := equipments.Release(ctx, dealerID, rental.EquipmentID, rental.ID); err != nil {
			return customError.WrapDatabaseError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	rental.Status = domain.RentalStatusCompleted
	rental.ClosedAt = &closedAt
	rental.ReturnCondition = &request.ReturnCondition
	if request.Notes != nil {
		rental.Notes = request.Notes
	}

	s.log.Info().
		Str("rental_id", rental.RentalID).
		Str("return_condition", request.ReturnCondition).
		Msg("rental closed")

	return rental, nil
}

// CancelRental voids a rental without touching its ledger entries. The
// record stays for audit. Equipment held by the rental goes back to
// available.
func (s *RentalService) CancelRental(ctx context.Context, dealerID, rentalID uuid.UUID) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, dealerID, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapRentalNotFound(rentalID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	err = s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		rentals := s.rentalRepo.WithTx(tx)
		equipments := s.equipmentRepo.WithTx(tx)

		cancelled, err := rentals.Cancel(ctx, dealerID, rental.ID)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}
		if !cancelled {
			return customError.NewBusinessError(
				customError.ErrCodeRentalNotActive,
				"rental is already closed or cancelled",
				customError.ErrRentalNotActive,
			)
		}

		// Release matches on active_rental_id, so this is a no-op
		// when the equipment is held by a different rental or was
		// already freed.
		if err := equipments.Release(ctx, dealerID, rental.EquipmentID, rental.ID); err != nil {
			return customError.WrapDatabaseError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	rental.Status = domain.RentalStatusCancelled

	s.log.Info().Str("rental_id", rental.RentalID).Msg("rental cancelled")

	return rental, nil
}

// GetRental returns the rental with its customer, equipment and
// payment history.
func (s *RentalService) GetRental(ctx context.Context, dealerID, rentalID uuid.UUID) (*domain.RentalDetail, error) {
	rental, err := s.rentalRepo.GetByID(ctx, dealerID, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapRentalNotFound(rentalID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	customer, err := s.customerRepo.GetByID(ctx, dealerID, rental.CustomerID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	equipment, err := s.equipmentRepo.GetByID(ctx, dealerID, rental.EquipmentID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	payments, err := s.ledgerRepo.ListByRental(ctx, dealerID, rental.ID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.RentalDetail{
		Rental:    rental,
		Customer:  customer,
		Equipment: equipment,
		Payments:  payments,
	}, nil
}

// ListRentals returns one page of rentals with joined customer and
// equipment names.
func (s *RentalService) ListRentals(ctx context.Context, dealerID uuid.UUID, filter *domain.RentalFilter) ([]*domain.Rental, int, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit, s.config)

	rentals, total, err := s.rentalRepo.List(ctx, dealerID, *filter)
	if err != nil {
		return nil, 0, customError.WrapDatabaseError(err)
	}

	return rentals, total, nil
}
