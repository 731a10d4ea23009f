package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dealerops/rental-engine/internal/domain"
	alertService "github.com/dealerops/rental-engine/internal/service"
	"github.com/dealerops/rental-engine/tests/mocks"
)

type alertMocks struct {
	alerts    *mocks.MockAlertRepository
	rentals   *mocks.MockRentalRepository
	ledger    *mocks.MockLedgerRepository
	equipment *mocks.MockEquipmentRepository
}

func newAlertService() (*alertService.AlertService, *alertMocks) {
	m := &alertMocks{
		alerts:    new(mocks.MockAlertRepository),
		rentals:   new(mocks.MockRentalRepository),
		ledger:    new(mocks.MockLedgerRepository),
		equipment: new(mocks.MockEquipmentRepository),
	}
	svc := alertService.NewAlertService(m.alerts, m.rentals, m.ledger, m.equipment, testConfig(), zerolog.Nop())
	return svc, m
}

func TestSweep(t *testing.T) {
	dealerID := uuid.New()
	now := time.Now()

	overdueRental := func(daysLate int) *domain.Rental {
		due := now.AddDate(0, 0, -daysLate)
		return &domain.Rental{
			ID:                 uuid.New(),
			DealerID:           dealerID,
			RentalID:           "RNT-TEST-1",
			Status:             domain.RentalStatusActive,
			ExpectedReturnDate: &due,
		}
	}

	t.Run("raises critical alert for rental more than a week late", func(t *testing.T) {
		svc, m := newAlertService()
		rental := overdueRental(10)

		m.rentals.On("ListOverdue", mock.Anything, dealerID, now).Return([]*domain.Rental{rental}, nil)
		m.ledger.On("ListOverdueOutstanding", mock.Anything, dealerID, mock.Anything).Return([]*domain.LedgerEntry{}, nil)
		m.equipment.On("ListMaintenanceDue", mock.Anything, dealerID, mock.Anything).Return([]*domain.Equipment{}, nil)
		m.alerts.On("ExistsActive", mock.Anything, dealerID, domain.AlertTypeOverdueRental, rental.ID).Return(false, nil)
		m.alerts.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Alert) bool {
			return a.Type == domain.AlertTypeOverdueRental &&
				a.Priority == domain.AlertPriorityCritical &&
				a.Status == domain.AlertStatusActive
		})).Return(nil)

		created, err := svc.Sweep(context.Background(), dealerID, now)

		assert.NoError(t, err)
		assert.Equal(t, 1, created)
		m.alerts.AssertExpectations(t)
	})

	t.Run("skips entity that already has an active alert", func(t *testing.T) {
		svc, m := newAlertService()
		rental := overdueRental(5)

		m.rentals.On("ListOverdue", mock.Anything, dealerID, now).Return([]*domain.Rental{rental}, nil)
		m.ledger.On("ListOverdueOutstanding", mock.Anything, dealerID, mock.Anything).Return([]*domain.LedgerEntry{}, nil)
		m.equipment.On("ListMaintenanceDue", mock.Anything, dealerID, mock.Anything).Return([]*domain.Equipment{}, nil)
		m.alerts.On("ExistsActive", mock.Anything, dealerID, domain.AlertTypeOverdueRental, rental.ID).Return(true, nil)

		created, err := svc.Sweep(context.Background(), dealerID, now)

		assert.NoError(t, err)
		assert.Equal(t, 0, created)
		m.alerts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("raises high priority payment alert after two weeks", func(t *testing.T) {
		svc, m := newAlertService()
		entry := &domain.LedgerEntry{
			ID:             uuid.New(),
			DealerID:       dealerID,
			PaymentID:      "PAY-TEST-1",
			OutstandingDue: decimal.NewFromInt(300),
			RecordedAt:     now.AddDate(0, 0, -20),
		}

		m.rentals.On("ListOverdue", mock.Anything, dealerID, now).Return([]*domain.Rental{}, nil)
		m.ledger.On("ListOverdueOutstanding", mock.Anything, dealerID, mock.Anything).Return([]*domain.LedgerEntry{entry}, nil)
		m.equipment.On("ListMaintenanceDue", mock.Anything, dealerID, mock.Anything).Return([]*domain.Equipment{}, nil)
		m.alerts.On("ExistsActive", mock.Anything, dealerID, domain.AlertTypePaymentDue, entry.ID).Return(false, nil)
		m.alerts.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Alert) bool {
			return a.Type == domain.AlertTypePaymentDue && a.Priority == domain.AlertPriorityHigh
		})).Return(nil)

		created, err := svc.Sweep(context.Background(), dealerID, now)

		assert.NoError(t, err)
		assert.Equal(t, 1, created)
	})

	t.Run("raises critical maintenance alert when date has passed", func(t *testing.T) {
		svc, m := newAlertService()
		past := now.AddDate(0, 0, -1)
		eq := &domain.Equipment{
			ID:                  uuid.New(),
			DealerID:            dealerID,
			EquipmentID:         "EQP-TEST-1",
			Name:                "Excavator",
			NextMaintenanceDate: &past,
		}

		m.rentals.On("ListOverdue", mock.Anything, dealerID, now).Return([]*domain.Rental{}, nil)
		m.ledger.On("ListOverdueOutstanding", mock.Anything, dealerID, mock.Anything).Return([]*domain.LedgerEntry{}, nil)
		m.equipment.On("ListMaintenanceDue", mock.Anything, dealerID, mock.Anything).Return([]*domain.Equipment{eq}, nil)
		m.alerts.On("ExistsActive", mock.Anything, dealerID, domain.AlertTypeMaintenanceDue, eq.ID).Return(false, nil)
		m.alerts.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Alert) bool {
			return a.Type == domain.AlertTypeMaintenanceDue && a.Priority == domain.AlertPriorityCritical
		})).Return(nil)

		created, err := svc.Sweep(context.Background(), dealerID, now)

		assert.NoError(t, err)
		assert.Equal(t, 1, created)
	})

	t.Run("sweep never mutates rental status", func(t *testing.T) {
		svc, m := newAlertService()
		rental := overdueRental(4)

		m.rentals.On("ListOverdue", mock.Anything, dealerID, now).Return([]*domain.Rental{rental}, nil)
		m.ledger.On("ListOverdueOutstanding", mock.Anything, dealerID, mock.Anything).Return([]*domain.LedgerEntry{}, nil)
		m.equipment.On("ListMaintenanceDue", mock.Anything, dealerID, mock.Anything).Return([]*domain.Equipment{}, nil)
		m.alerts.On("ExistsActive", mock.Anything, dealerID, domain.AlertTypeOverdueRental, rental.ID).Return(false, nil)
		m.alerts.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Alert) bool {
			return a.Priority == domain.AlertPriorityHigh
		})).Return(nil)

		_, err := svc.Sweep(context.Background(), dealerID, now)

		assert.NoError(t, err)
		m.rentals.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.rentals.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, domain.RentalStatusActive, rental.Status)
	})
}

func TestUpdateAlertStatus(t *testing.T) {
	dealerID := uuid.New()

	t.Run("rejects unknown status", func(t *testing.T) {
		svc, _ := newAlertService()

		alert, err := svc.UpdateAlertStatus(context.Background(), dealerID, uuid.New(), "dismissed")

		assert.Error(t, err)
		assert.Nil(t, alert)
	})

	t.Run("acknowledges an alert", func(t *testing.T) {
		svc, m := newAlertService()
		alertID := uuid.New()
		stored := &domain.Alert{
			ID:       alertID,
			DealerID: dealerID,
			AlertID:  "ALT-TEST-1",
			Status:   domain.AlertStatusAcknowledged,
		}

		m.alerts.On("UpdateStatus", mock.Anything, dealerID, alertID, domain.AlertStatusAcknowledged).Return(true, nil)
		m.alerts.On("GetByID", mock.Anything, dealerID, alertID).Return(stored, nil)

		alert, err := svc.UpdateAlertStatus(context.Background(), dealerID, alertID, domain.AlertStatusAcknowledged)

		assert.NoError(t, err)
		assert.Equal(t, domain.AlertStatusAcknowledged, alert.Status)
	})
}
