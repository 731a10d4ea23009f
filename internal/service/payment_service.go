package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/dealerops/rental-engine/internal/config"
	"github.com/dealerops/rental-engine/internal/domain"
	"github.com/dealerops/rental-engine/internal/repository"
	customError "github.com/dealerops/rental-engine/pkg/errors"
	"github.com/dealerops/rental-engine/pkg/utils"
)

// PaymentService manages the ledger. Every mutation recomputes the
// affected customer's cached outstanding total from the ledger rows in
// the same transaction, so the cache can only drift if someone writes
// the table directly.
type PaymentService struct {
	tx           repository.TxManager
	ledgerRepo   repository.LedgerRepository
	rentalRepo   repository.RentalRepository
	customerRepo repository.CustomerRepository
	config       *config.Config
	log          zerolog.Logger
}

func NewPaymentService(
	tx repository.TxManager,
	ledgerRepo repository.LedgerRepository,
	rentalRepo repository.RentalRepository,
	customerRepo repository.CustomerRepository,
	config *config.Config,
	log zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		tx:           tx,
		ledgerRepo:   ledgerRepo,
		rentalRepo:   rentalRepo,
		customerRepo: customerRepo,
		config:       config,
		log:          log,
	}
}

// RecordPayment appends a ledger entry against a rental.
func (s *PaymentService) RecordPayment(ctx context.Context, dealerID uuid.UUID, request *domain.RecordPaymentRequest) (*domain.LedgerEntry, error) {
	if err := validate.Struct(request); err != nil {
		return nil, customError.WrapValidation(err.Error())
	}
	if request.AmountPaid.IsNegative() || request.OutstandingDue.IsNegative() {
		return nil, customError.WrapValidation("amounts must not be negative")
	}

	customer, err := s.customerRepo.GetByID(ctx, dealerID, request.CustomerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCustomerNotFound(request.CustomerID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	rental, err := s.rentalRepo.GetByID(ctx, dealerID, request.RentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapRentalNotFound(request.RentalID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	if rental.CustomerID != customer.ID {
		return nil, customError.WrapValidation("rental does not belong to the customer")
	}

	now := time.Now()
	entry := &domain.LedgerEntry{
		ID:                   uuid.New(),
		DealerID:             dealerID,
		PaymentID:            utils.GeneratePaymentID(dealerID),
		CustomerID:           customer.ID,
		RentalID:             rental.ID,
		AmountPaid:           request.AmountPaid,
		OutstandingDue:       request.OutstandingDue,
		Method:               request.Method,
		TransactionReference: request.TransactionReference,
		Notes:                request.Notes,
		RecordedAt:           now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err = s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		ledger := s.ledgerRepo.WithTx(tx)
		customers := s.customerRepo.WithTx(tx)

		if err := ledger.Create(ctx, entry); err != nil {
			return customError.WrapDatabaseError(err)
		}

		return s.recomputeOutstanding(ctx, ledger, customers, dealerID, customer.ID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("payment_id", entry.PaymentID).
		Str("customer_id", customer.CustomerID).
		Str("amount_paid", entry.AmountPaid.String()).
		Msg("payment recorded")

	return entry, nil
}

// UpdatePayment edits an existing ledger entry in place.
func (s *PaymentService) UpdatePayment(ctx context.Context, dealerID, paymentID uuid.UUID, request *domain.UpdatePaymentRequest) (*domain.LedgerEntry, error) {
	if err := validate.Struct(request); err != nil {
		return nil, customError.WrapValidation(err.Error())
	}

	entry, err := s.ledgerRepo.GetByID(ctx, dealerID, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapPaymentNotFound(paymentID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if request.AmountPaid != nil {
		if request.AmountPaid.IsNegative() {
			return nil, customError.WrapValidation("amount_paid must not be negative")
		}
		entry.AmountPaid = *request.AmountPaid
	}
	if request.OutstandingDue != nil {
		if request.OutstandingDue.IsNegative() {
			return nil, customError.WrapValidation("outstanding_due must not be negative")
		}
		entry.OutstandingDue = *request.OutstandingDue
	}
	if request.Method != nil {
		entry.Method = *request.Method
	}
	if request.TransactionReference != nil {
		entry.TransactionReference = request.TransactionReference
	}
	if request.Notes != nil {
		entry.Notes = request.Notes
	}
	entry.UpdatedAt = time.Now()

	err = s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		ledger := s.ledgerRepo.WithTx(tx)
		customers := s.customerRepo.WithTx(tx)

		if err := ledger.Update(ctx, entry); err != nil {
			return customError.WrapDatabaseError(err)
		}

		return s.recomputeOutstanding(ctx, ledger, customers, dealerID, entry.CustomerID)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// DeletePayment removes a ledger entry and recomputes the customer's
// balance without it.
func (s *PaymentService) DeletePayment(ctx context.Context, dealerID, paymentID uuid.UUID) error {
	entry, err := s.ledgerRepo.GetByID(ctx, dealerID, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapPaymentNotFound(paymentID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	return s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		ledger := s.ledgerRepo.WithTx(tx)
		customers := s.customerRepo.WithTx(tx)

		deleted, err := ledger.Delete(ctx, dealerID, entry.ID)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}
		if !deleted {
			return customError.WrapPaymentNotFound(paymentID.String())
		}

		return s.recomputeOutstanding(ctx, ledger, customers, dealerID, entry.CustomerID)
	})
}

func (s *PaymentService) GetPayment(ctx context.Context, dealerID, paymentID uuid.UUID) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.GetByID(ctx, dealerID, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapPaymentNotFound(paymentID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return entry, nil
}

func (s *PaymentService) ListPayments(ctx context.Context, dealerID uuid.UUID, filter *domain.PaymentFilter) ([]*domain.LedgerEntry, int, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit, s.config)

	entries, total, err := s.ledgerRepo.List(ctx, dealerID, *filter)
	if err != nil {
		return nil, 0, customError.WrapDatabaseError(err)
	}

	return entries, total, nil
}

// ReconcileOutstanding walks every customer of the dealer and rewrites
// cached totals that no longer match the ledger. It reports how many
// customers were corrected.
func (s *PaymentService) ReconcileOutstanding(ctx context.Context, dealerID uuid.UUID) (int, error) {
	ids, err := s.customerRepo.IDs(ctx, dealerID)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	fixed := 0
	for _, customerID := range ids {
		customer, err := s.customerRepo.GetByID(ctx, dealerID, customerID)
		if err != nil {
			return fixed, customError.WrapDatabaseError(err)
		}

		total, err := s.ledgerRepo.SumOutstanding(ctx, dealerID, customerID)
		if err != nil {
			return fixed, customError.WrapDatabaseError(err)
		}

		if customer.TotalOutstandingDue.Equal(total) {
			continue
		}

		if err := s.customerRepo.SetTotalOutstandingDue(ctx, dealerID, customerID, total); err != nil {
			return fixed, customError.WrapDatabaseError(err)
		}

		s.log.Warn().
			Str("customer_id", customer.CustomerID).
			Str("cached", customer.TotalOutstandingDue.String()).
			Str("actual", total.String()).
			Msg("outstanding balance drift corrected")
		fixed++
	}

	return fixed, nil
}

func (s *PaymentService) recomputeOutstanding(
	ctx context.Context,
	ledger repository.LedgerRepository,
	customers repository.CustomerRepository,
	dealerID, customerID uuid.UUID,
) error {
	total, err := ledger.SumOutstanding(ctx, dealerID, customerID)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if err := customers.SetTotalOutstandingDue(ctx, dealerID, customerID, total); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}
