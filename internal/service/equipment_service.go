package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dealerops/rental-engine/internal/config"
	"github.com/dealerops/rental-engine/internal/domain"
	"github.com/dealerops/rental-engine/internal/repository"
	customError "github.com/dealerops/rental-engine/pkg/errors"
	"github.com/dealerops/rental-engine/pkg/utils"
)

// EquipmentService manages the fleet catalog. The rented state is owned
// by the rental lifecycle: admin edits can only move equipment between
// available, reserved and under_maintenance.
type EquipmentService struct {
	equipmentRepo repository.EquipmentRepository
	rentalRepo    repository.RentalRepository
	config        *config.Config
	log           zerolog.Logger
}

func NewEquipmentService(
	equipmentRepo repository.EquipmentRepository,
	rentalRepo repository.RentalRepository,
	config *config.Config,
	log zerolog.Logger,
) *EquipmentService {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		rentalRepo:    rentalRepo,
		config:        config,
		log:           log,
	}
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, dealerID uuid.UUID, request *domain.CreateEquipmentRequest) (*domain.Equipment, error) {
	if err := validate.Struct(request); err != nil {
		return nil, customError.WrapValidation(err.Error())
	}
	if request.DailyRate.IsNegative() {
		return nil, customError.WrapValidation("daily_rate must not be negative")
	}

	now := time.Now()
	equipment := &domain.Equipment{
		ID:                  uuid.New(),
		DealerID:            dealerID,
		EquipmentID:         utils.GenerateEquipmentID(dealerID),
		Kind:                request.Kind,
		Name:                request.Name,
		EquipmentType:       request.EquipmentType,
		Model:               request.Model,
		SerialNumber:        request.SerialNumber,
		Year:                request.Year,
		DailyRate:           request.DailyRate,
		Availability:        domain.AvailabilityAvailable,
		NextMaintenanceDate: request.NextMaintenanceDate,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.equipmentRepo.Create(ctx, equipment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.Info().
		Str("equipment_id", equipment.EquipmentID).
		Str("kind", equipment.Kind).
		Msg("equipment created")

	return equipment, nil
}

// GetEquipment returns the equipment plus its rental history and the
// currently open rental, if any.
func (s *EquipmentService) GetEquipment(ctx context.Context, dealerID, equipmentID uuid.UUID) (*domain.EquipmentDetail, error) {
	equipment, err := s.equipmentRepo.GetByID(ctx, dealerID, equipmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapEquipmentNotFound(equipmentID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	history, err := s.rentalRepo.ListByEquipment(ctx, dealerID, equipment.ID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	detail := &domain.EquipmentDetail{
		Equipment:     equipment,
		RentalHistory: history,
	}
	for _, rental := range history {
		if rental.Status == domain.RentalStatusActive || rental.Status == domain.RentalStatusOverdue {
			detail.CurrentRental = rental
			break
		}
	}

	return detail, nil
}

func (s *EquipmentService) ListEquipment(ctx context.Context, dealerID uuid.UUID, filter *domain.EquipmentFilter) ([]*domain.Equipment, int, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit, s.config)

	equipment, total, err := s.equipmentRepo.List(ctx, dealerID, *filter)
	if err != nil {
		return nil, 0, customError.WrapDatabaseError(err)
	}

	return equipment, total, nil
}

// UpdateEquipment applies a partial edit. Availability changes on
// rented equipment are rejected; the rental lifecycle releases it.
func (s *EquipmentService) UpdateEquipment(ctx context.Context, dealerID, equipmentID uuid.UUID, request *domain.UpdateEquipmentRequest) (*domain.Equipment, error) {
	if err := validate.Struct(request); err != nil {
		return nil, customError.WrapValidation(err.Error())
	}

	equipment, err := s.equipmentRepo.GetByID(ctx, dealerID, equipmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapEquipmentNotFound(equipmentID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if request.Availability != nil {
		if equipment.IsRented() {
			return nil, customError.WrapEquipmentRented(equipment.EquipmentID)
		}
		equipment.Availability = *request.Availability
	}
	if request.Name != nil {
		equipment.Name = *request.Name
	}
	if request.EquipmentType != nil {
		equipment.EquipmentType = *request.EquipmentType
	}
	if request.Model != nil {
		equipment.Model = *request.Model
	}
	if request.SerialNumber != nil {
		equipment.SerialNumber = request.SerialNumber
	}
	if request.Year != nil {
		equipment.Year = request.Year
	}
	if request.DailyRate != nil {
		if request.DailyRate.IsNegative() {
			return nil, customError.WrapValidation("daily_rate must not be negative")
		}
		equipment.DailyRate = *request.DailyRate
	}
	if request.NextMaintenanceDate != nil {
		equipment.NextMaintenanceDate = request.NextMaintenanceDate
	}
	equipment.UpdatedAt = time.Now()

	if err := s.equipmentRepo.Update(ctx, equipment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return equipment, nil
}

// DeleteEquipment soft-deletes the unit. Rented equipment cannot be
// removed until its rental closes.
func (s *EquipmentService) DeleteEquipment(ctx context.Context, dealerID, equipmentID uuid.UUID) error {
	equipment, err := s.equipmentRepo.GetByID(ctx, dealerID, equipmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapEquipmentNotFound(equipmentID.String())
		}
		return customError.WrapDatabaseError(err)
	}

	if equipment.IsRented() {
		return customError.WrapEquipmentRented(equipment.EquipmentID)
	}

	deleted, err := s.equipmentRepo.SoftDelete(ctx, dealerID, equipment.ID)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	if !deleted {
		return customError.WrapEquipmentNotFound(equipmentID.String())
	}

	s.log.Info().Str("equipment_id", equipment.EquipmentID).Msg("equipment removed")

	return nil
}
