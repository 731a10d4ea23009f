package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dealerops/rental-engine/internal/config"
	"github.com/dealerops/rental-engine/internal/domain"
	customError "github.com/dealerops/rental-engine/pkg/errors"
	"github.com/dealerops/rental-engine/tests/mocks"
)

func serviceTestConfig() *config.Config {
	return &config.Config{
		Business: config.BusinessConfig{
			DefaultPageLimit: 10,
			MaxPageLimit:     100,
		},
	}
}

func TestCreateEquipment_Success(t *testing.T) {
	mockEquipmentRepo := &mocks.MockEquipmentRepository{}
	mockRentalRepo := &mocks.MockRentalRepository{}

	service := &EquipmentService{
		equipmentRepo: mockEquipmentRepo,
		rentalRepo:    mockRentalRepo,
		config:        serviceTestConfig(),
		log:           zerolog.Nop(),
	}

	dealerID := uuid.New()

	mockEquipmentRepo.On("Create", mock.Anything, mock.MatchedBy(func(eq *domain.Equipment) bool {
		return eq.DealerID == dealerID && eq.Availability == domain.AvailabilityAvailable
	})).Return(nil)

	equipment, err := service.CreateEquipment(context.Background(), dealerID, &domain.CreateEquipmentRequest{
		Kind:          domain.EquipmentKindVehicle,
		Name:          "Ford F-350 Flatbed",
		EquipmentType: "truck",
		Model:         "F-350",
		DailyRate:     decimal.NewFromInt(180),
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.AvailabilityAvailable, equipment.Availability)
	assert.True(t, equipment.IsActive)
	assert.NotEmpty(t, equipment.EquipmentID)

	mockEquipmentRepo.AssertExpectations(t)
}

func TestUpdateEquipment_RejectsAvailabilityChangeWhileRented(t *testing.T) {
	mockEquipmentRepo := &mocks.MockEquipmentRepository{}
	mockRentalRepo := &mocks.MockRentalRepository{}

	service := &EquipmentService{
		equipmentRepo: mockEquipmentRepo,
		rentalRepo:    mockRentalRepo,
		config:        serviceTestConfig(),
		log:           zerolog.Nop(),
	}

	dealerID := uuid.New()
	equipmentID := uuid.New()
	rentalID := uuid.New()

	mockEquipmentRepo.On("GetByID", mock.Anything, dealerID, equipmentID).Return(&domain.Equipment{
		ID:             equipmentID,
		DealerID:       dealerID,
		EquipmentID:    "EQP-TEST",
		Availability:   domain.AvailabilityRented,
		ActiveRentalID: &rentalID,
	}, nil)

	maintenance := domain.AvailabilityUnderMaintenance
	_, err := service.UpdateEquipment(context.Background(), dealerID, equipmentID, &domain.UpdateEquipmentRequest{
		Availability: &maintenance,
	})

	assert.Error(t, err)
	assert.True(t, customError.IsConflict(err))
	mockEquipmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteEquipment_RejectsRented(t *testing.T) {
	mockEquipmentRepo := &mocks.MockEquipmentRepository{}
	mockRentalRepo := &mocks.MockRentalRepository{}

	service := &EquipmentService{
		equipmentRepo: mockEquipmentRepo,
		rentalRepo:    mockRentalRepo,
		config:        serviceTestConfig(),
		log:           zerolog.Nop(),
	}

	dealerID := uuid.New()
	equipmentID := uuid.New()

	mockEquipmentRepo.On("GetByID", mock.Anything, dealerID, equipmentID).Return(&domain.Equipment{
		ID:           equipmentID,
		DealerID:     dealerID,
		EquipmentID:  "EQP-TEST",
		Availability: domain.AvailabilityRented,
	}, nil)

	err := service.DeleteEquipment(context.Background(), dealerID, equipmentID)

	assert.Error(t, err)
	assert.True(t, customError.IsConflict(err))
	mockEquipmentRepo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetEquipment_NotFound(t *testing.T) {
	mockEquipmentRepo := &mocks.MockEquipmentRepository{}
	mockRentalRepo := &mocks.MockRentalRepository{}

	service := &EquipmentService{
		equipmentRepo: mockEquipmentRepo,
		rentalRepo:    mockRentalRepo,
		config:        serviceTestConfig(),
		log:           zerolog.Nop(),
	}

	dealerID := uuid.New()
	equipmentID := uuid.New()

	mockEquipmentRepo.On("GetByID", mock.Anything, dealerID, equipmentID).Return(nil, sql.ErrNoRows)

	_, err := service.GetEquipment(context.Background(), dealerID, equipmentID)

	assert.Error(t, err)
	assert.True(t, customError.IsNotFound(err))
}

func TestNormalizePage(t *testing.T) {
	cfg := serviceTestConfig()

	tests := []struct {
		name        string
		page, limit int
		wantPage    int
		wantLimit   int
	}{
		{"defaults applied", 0, 0, 1, 10},
		{"negative page clamped", -3, 25, 1, 25},
		{"limit capped at max", 2, 500, 2, 100},
		{"in range untouched", 4, 50, 4, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := normalizePage(tt.page, tt.limit, cfg)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestListEquipment_WritesNormalizedPagingBack(t *testing.T) {
	mockEquipmentRepo := &mocks.MockEquipmentRepository{}

	service := &EquipmentService{
		equipmentRepo: mockEquipmentRepo,
		config:        serviceTestConfig(),
		log:           zerolog.Nop(),
	}

	dealerID := uuid.New()

	mockEquipmentRepo.On("List", mock.Anything, dealerID, mock.MatchedBy(func(f domain.EquipmentFilter) bool {
		return f.Page == 1 && f.Limit == 10
	})).Return([]*domain.Equipment{}, 0, nil)

	// Callers read the paging the response should report from the
	// filter after the call, so the configured defaults must land
	// there.
	filter := &domain.EquipmentFilter{}
	_, _, err := service.ListEquipment(context.Background(), dealerID, filter)

	assert.NoError(t, err)
	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 10, filter.Limit)
	mockEquipmentRepo.AssertExpectations(t)
}
