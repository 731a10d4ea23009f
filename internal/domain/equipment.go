package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EquipmentKindMachine = "machine"
	EquipmentKindVehicle = "vehicle"
)

// Equipment availability states. The available -> rented transition is
// owned by the rental lifecycle; admin edits may only move between
// available, reserved and under_maintenance.
const (
	AvailabilityAvailable        = "available"
	AvailabilityReserved         = "reserved"
	AvailabilityRented           = "rented"
	AvailabilityUnderMaintenance = "under_maintenance"
)

// Equipment represents a rentable machine or vehicle owned by a dealer.
// Invariant: ActiveRentalID is non-nil iff Availability == rented.
type Equipment struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	DealerID            uuid.UUID       `json:"dealer_id" db:"dealer_id"`
	EquipmentID         string          `json:"equipment_id" db:"equipment_id"`
	Kind                string          `json:"kind" db:"kind"`
	Name                string          `json:"name" db:"name"`
	EquipmentType       string          `json:"equipment_type" db:"equipment_type"`
	Model               string          `json:"model" db:"model"`
	SerialNumber        *string         `json:"serial_number,omitempty" db:"serial_number"`
	Year                *int            `json:"year,omitempty" db:"year"`
	DailyRate           decimal.Decimal `json:"daily_rate" db:"daily_rate"`
	Availability        string          `json:"availability" db:"availability"`
	ActiveRentalID      *uuid.UUID      `json:"active_rental_id,omitempty" db:"active_rental_id"`
	ExpectedReturnDate  *time.Time      `json:"expected_return_date,omitempty" db:"expected_return_date"`
	NextMaintenanceDate *time.Time      `json:"next_maintenance_date,omitempty" db:"next_maintenance_date"`
	IsActive            bool            `json:"is_active" db:"is_active"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" db:"updated_at"`
}

// IsRented reports whether the equipment is held by an active rental.
func (e *Equipment) IsRented() bool {
	return e.Availability == AvailabilityRented
}

type CreateEquipmentRequest struct {
	Kind                string          `json:"kind" validate:"required,oneof=machine vehicle"`
	Name                string          `json:"name" validate:"required"`
	EquipmentType       string          `json:"equipment_type" validate:"required"`
	Model               string          `json:"model" validate:"required"`
	SerialNumber        *string         `json:"serial_number,omitempty"`
	Year                *int            `json:"year,omitempty" validate:"omitempty,gte=1990"`
	DailyRate           decimal.Decimal `json:"daily_rate" validate:"required"`
	NextMaintenanceDate *time.Time      `json:"next_maintenance_date,omitempty"`
}

type UpdateEquipmentRequest struct {
	Name                *string          `json:"name,omitempty"`
	EquipmentType       *string          `json:"equipment_type,omitempty"`
	Model               *string          `json:"model,omitempty"`
	SerialNumber        *string          `json:"serial_number,omitempty"`
	Year                *int             `json:"year,omitempty" validate:"omitempty,gte=1990"`
	DailyRate           *decimal.Decimal `json:"daily_rate,omitempty"`
	Availability        *string          `json:"availability,omitempty" validate:"omitempty,oneof=available reserved under_maintenance"`
	NextMaintenanceDate *time.Time       `json:"next_maintenance_date,omitempty"`
}

type EquipmentFilter struct {
	Search        string
	Kind          string
	Availability  string
	EquipmentType string
	Page          int
	Limit         int
}

// EquipmentDetail is the fetch-one payload: the equipment plus its
// rental history and the currently open rental, if any.
type EquipmentDetail struct {
	Equipment     *Equipment `json:"equipment"`
	RentalHistory []*Rental  `json:"rental_history"`
	CurrentRental *Rental    `json:"current_rental,omitempty"`
}
