package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrValidation           = errors.New("validation failed")
	ErrCustomerNotFound     = fmt.Errorf("customer %w", ErrNotFound)
	ErrEquipmentNotFound    = fmt.Errorf("equipment %w", ErrNotFound)
	ErrRentalNotFound       = fmt.Errorf("rental %w", ErrNotFound)
	ErrPaymentNotFound      = fmt.Errorf("payment %w", ErrNotFound)
	ErrAlertNotFound        = fmt.Errorf("alert %w", ErrNotFound)
	ErrDealerNotFound       = fmt.Errorf("dealer %w", ErrNotFound)
	ErrEquipmentUnavailable = fmt.Errorf("equipment is not available: %w", ErrConflict)
	ErrEquipmentRented      = fmt.Errorf("equipment is currently rented: %w", ErrConflict)
	ErrRentalNotActive      = fmt.Errorf("rental is not active: %w", ErrConflict)
	ErrCustomerHasRentals   = fmt.Errorf("customer has active rentals: %w", ErrConflict)
	ErrEmailTaken           = fmt.Errorf("email already registered: %w", ErrConflict)
	ErrInvalidCredentials   = errors.New("invalid credentials")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeCustomerNotFound     = "CUSTOMER_NOT_FOUND"
	ErrCodeEquipmentNotFound    = "EQUIPMENT_NOT_FOUND"
	ErrCodeRentalNotFound       = "RENTAL_NOT_FOUND"
	ErrCodePaymentNotFound      = "PAYMENT_NOT_FOUND"
	ErrCodeAlertNotFound        = "ALERT_NOT_FOUND"
	ErrCodeDealerNotFound       = "DEALER_NOT_FOUND"
	ErrCodeEquipmentUnavailable = "EQUIPMENT_UNAVAILABLE"
	ErrCodeEquipmentRented      = "EQUIPMENT_RENTED"
	ErrCodeRentalNotActive      = "RENTAL_NOT_ACTIVE"
	ErrCodeCustomerHasRentals   = "CUSTOMER_HAS_ACTIVE_RENTALS"
	ErrCodeEmailTaken           = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials   = "INVALID_CREDENTIALS"
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
	ErrCodeCacheError           = "CACHE_ERROR"
)

// IsNotFound reports whether err is a missing-entity error, including
// entities outside the caller's dealer scope.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is a state-machine precondition
// violation (equipment not available, rental not active, ...).
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation reports whether err is a malformed-input error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// Wrap common errors with business context
func WrapCustomerNotFound(customerID string) *BusinessError {
	return NewBusinessError(
		ErrCodeCustomerNotFound,
		fmt.Sprintf("Customer %s not found", customerID),
		ErrCustomerNotFound,
	)
}

func WrapEquipmentNotFound(equipmentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeEquipmentNotFound,
		fmt.Sprintf("Equipment %s not found", equipmentID),
		ErrEquipmentNotFound,
	)
}

func WrapRentalNotFound(rentalID string) *BusinessError {
	return NewBusinessError(
		ErrCodeRentalNotFound,
		fmt.Sprintf("Rental %s not found", rentalID),
		ErrRentalNotFound,
	)
}

func WrapPaymentNotFound(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodePaymentNotFound,
		fmt.Sprintf("Payment %s not found", paymentID),
		ErrPaymentNotFound,
	)
}

func WrapEquipmentUnavailable(equipmentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeEquipmentUnavailable,
		fmt.Sprintf("Equipment %s is not available for rental", equipmentID),
		ErrEquipmentUnavailable,
	)
}

func WrapEquipmentRented(equipmentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeEquipmentRented,
		fmt.Sprintf("Equipment %s is currently rented", equipmentID),
		ErrEquipmentRented,
	)
}

func WrapRentalNotActive(rentalID string) *BusinessError {
	return NewBusinessError(
		ErrCodeRentalNotActive,
		fmt.Sprintf("Rental %s is not active", rentalID),
		ErrRentalNotActive,
	)
}

func WrapValidation(message string) *BusinessError {
	return NewBusinessError(ErrCodeValidation, message, ErrValidation)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
