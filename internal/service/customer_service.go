package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dealerops/rental-engine/internal/config"
	"github.com/dealerops/rental-engine/internal/domain"
	"github.com/dealerops/rental-engine/internal/repository"
	customError "github.com/dealerops/rental-engine/pkg/errors"
	"github.com/dealerops/rental-engine/pkg/utils"
)

type CustomerService struct {
	customerRepo repository.CustomerRepository
	rentalRepo   repository.RentalRepository
	ledgerRepo   repository.LedgerRepository
	config       *config.Config
	log          zerolog.Logger
}

func NewCustomerService(
	customerRepo repository.CustomerRepository,
	rentalRepo repository.RentalRepository,
	ledgerRepo repository.LedgerRepository,
	config *config.Config,
	log zerolog.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		rentalRepo:   rentalRepo,
		ledgerRepo:   ledgerRepo,
		config:       config,
		log:          log,
	}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, dealerID uuid.UUID, request *domain.CreateCustomerRequest) (*domain.Customer, error) {
	if err := validate.Struct(request); err != nil {
		return nil, customError.WrapValidation(err.Error())
	}

	now := time.Now()
	customer := &domain.Customer{
		ID:                  uuid.New(),
		DealerID:            dealerID,
		CustomerID:          utils.GenerateCustomerID(dealerID),
		Name:                request.Name,
		ContactNumber:       request.ContactNumber,
		Email:               request.Email,
		BusinessType:        request.BusinessType,
		TotalRentals:        0,
		TotalOutstandingDue: decimal.Zero,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.Info().Str("customer_id", customer.CustomerID).Msg("customer created")

	return customer, nil
}

// GetCustomer returns the customer with rental and payment history.
func (s *CustomerService) GetCustomer(ctx context.Context, dealerID, customerID uuid.UUID) (*domain.CustomerDetail, error) {
	customer, err := s.customerRepo.GetByID(ctx, dealerID, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCustomerNotFound(customerID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	rentals, err := s.rentalRepo.ListByCustomer(ctx, dealerID, customer.ID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	payments, err := s.ledgerRepo.ListByCustomer(ctx, dealerID, customer.ID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.CustomerDetail{
		Customer: customer,
		Rentals:  rentals,
		Payments: payments,
	}, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, dealerID uuid.UUID, filter *domain.CustomerFilter) ([]*domain.Customer, int, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit, s.config)

	customers, total, err := s.customerRepo.List(ctx, dealerID, *filter)
	if err != nil {
		return nil, 0, customError.WrapDatabaseError(err)
	}

	return customers, total, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, dealerID, customerID uuid.UUID, request *domain.UpdateCustomerRequest) (*domain.Customer, error) {
	if err := validate.Struct(request); err != nil {
		return nil, customError.WrapValidation(err.Error())
	}

	customer, err := s.customerRepo.GetByID(ctx, dealerID, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCustomerNotFound(customerID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if request.Name != nil {
		customer.Name = *request.Name
	}
	if request.ContactNumber != nil {
		customer.ContactNumber = *request.ContactNumber
	}
	if request.Email != nil {
		customer.Email = request.Email
	}
	if request.BusinessType != nil {
		customer.BusinessType = *request.BusinessType
	}
	customer.UpdatedAt = time.Now()

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return customer, nil
}

// DeleteCustomer soft-deletes the customer. Customers holding active
// rentals are refused.
func (s *CustomerService) DeleteCustomer(ctx context.Context, dealerID, customerID uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, dealerID, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapCustomerNotFound(customerID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	active, err := s.rentalRepo.CountActiveByCustomer(ctx, dealerID, customer.ID)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if active > 0 {
		return customError.NewBusinessError(
			customError.ErrCodeCustomerHasRentals,
			"customer has active rentals and cannot be removed",
			customError.ErrCustomerHasRentals,
		)
	}

	deleted, err := s.customerRepo.SoftDelete(ctx, dealerID, customer.ID)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if !deleted {
		return customError.WrapCustomerNotFound(customerID.String())
	}

	s.log.Info().Str("customer_id", customer.CustomerID).Msg("customer removed")

	return nil
}
