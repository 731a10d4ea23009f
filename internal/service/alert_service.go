package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dealerops/rental-engine/internal/config"
	"github.com/dealerops/rental-engine/internal/domain"
	"github.com/dealerops/rental-engine/internal/repository"
	customError "github.com/dealerops/rental-engine/pkg/errors"
	"github.com/dealerops/rental-engine/pkg/utils"
)

// AlertService raises and manages alerts. The sweep inspects rentals,
// ledger entries and maintenance dates; it never mutates the entities
// it alerts on. At most one active alert exists per (type, entity).
type AlertService struct {
	alertRepo     repository.AlertRepository
	rentalRepo    repository.RentalRepository
	ledgerRepo    repository.LedgerRepository
	equipmentRepo repository.EquipmentRepository
	config        *config.Config
	log           zerolog.Logger
}

func NewAlertService(
	alertRepo repository.AlertRepository,
	rentalRepo repository.RentalRepository,
	ledgerRepo repository.LedgerRepository,
	equipmentRepo repository.EquipmentRepository,
	config *config.Config,
	log zerolog.Logger,
) *AlertService {
	return &AlertService{
		alertRepo:     alertRepo,
		rentalRepo:    rentalRepo,
		ledgerRepo:    ledgerRepo,
		equipmentRepo: equipmentRepo,
		config:        config,
		log:           log,
	}
}

// Sweep runs all alert checks for one dealer and reports how many
// alerts were raised.
func (s *AlertService) Sweep(ctx context.Context, dealerID uuid.UUID, now time.Time) (int, error) {
	created := 0

	n, err := s.sweepOverdueRentals(ctx, dealerID, now)
	if err != nil {
		return created, err
	}
	created += n

	n, err = s.sweepPaymentsDue(ctx, dealerID, now)
	if err != nil {
		return created, err
	}
	created += n

	n, err = s.sweepMaintenanceDue(ctx, dealerID, now)
	if err != nil {
		return created, err
	}
	created += n

	return created, nil
}

func (s *AlertService) sweepOverdueRentals(ctx context.Context, dealerID uuid.UUID, now time.Time) (int, error) {
	rentals, err := s.rentalRepo.ListOverdue(ctx, dealerID, now)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	created := 0
	for _, rental := range rentals {
		days := utils.DaysOverdue(*rental.ExpectedReturnDate, now)

		priority := domain.AlertPriorityMedium
		switch {
		case days > 7:
			priority = domain.AlertPriorityCritical
		case days > 3:
			priority = domain.AlertPriorityHigh
		}

		raised, err := s.raise(ctx, dealerID, &domain.Alert{
			Type:       domain.AlertTypeOverdueRental,
			Priority:   priority,
			Title:      "Rental overdue",
			Message:    fmt.Sprintf("Rental %s is %d day(s) past its expected return date", rental.RentalID, days),
			EntityType: "rental",
			EntityID:   rental.ID,
			DueDate:    rental.ExpectedReturnDate,
		}, now)
		if err != nil {
			return created, err
		}
		if raised {
			created++
		}
	}

	return created, nil
}

func (s *AlertService) sweepPaymentsDue(ctx context.Context, dealerID uuid.UUID, now time.Time) (int, error) {
	grace := time.Duration(s.config.Business.PaymentGraceDays) * 24 * time.Hour
	entries, err := s.ledgerRepo.ListOverdueOutstanding(ctx, dealerID, now.Add(-grace))
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	created := 0
	for _, entry := range entries {
		days := utils.DaysOverdue(entry.RecordedAt, now)

		priority := domain.AlertPriorityMedium
		switch {
		case days > 30:
			priority = domain.AlertPriorityCritical
		case days > 14:
			priority = domain.AlertPriorityHigh
		}

		raised, err := s.raise(ctx, dealerID, &domain.Alert{
			Type:       domain.AlertTypePaymentDue,
			Priority:   priority,
			Title:      "Payment due",
			Message:    fmt.Sprintf("Payment %s has %s outstanding for %d day(s)", entry.PaymentID, entry.OutstandingDue.StringFixed(2), days),
			EntityType: "payment",
			EntityID:   entry.ID,
			DueDate:    &entry.RecordedAt,
		}, now)
		if err != nil {
			return created, err
		}
		if raised {
			created++
		}
	}

	return created, nil
}

func (s *AlertService) sweepMaintenanceDue(ctx context.Context, dealerID uuid.UUID, now time.Time) (int, error) {
	window := time.Duration(s.config.Business.MaintenanceWindowDays) * 24 * time.Hour
	equipment, err := s.equipmentRepo.ListMaintenanceDue(ctx, dealerID, now.Add(window))
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	created := 0
	for _, eq := range equipment {
		daysLeft := int(eq.NextMaintenanceDate.Sub(now).Hours() / 24)

		priority := domain.AlertPriorityMedium
		switch {
		case daysLeft <= 0:
			priority = domain.AlertPriorityCritical
		case daysLeft <= 3:
			priority = domain.AlertPriorityHigh
		}

		raised, err := s.raise(ctx, dealerID, &domain.Alert{
			Type:       domain.AlertTypeMaintenanceDue,
			Priority:   priority,
			Title:      "Maintenance due",
			Message:    fmt.Sprintf("Equipment %s (%s) is due for maintenance", eq.EquipmentID, eq.Name),
			EntityType: "equipment",
			EntityID:   eq.ID,
			DueDate:    eq.NextMaintenanceDate,
		}, now)
		if err != nil {
			return created, err
		}
		if raised {
			created++
		}
	}

	return created, nil
}

// raise inserts the alert unless an active one already exists for the
// same type and entity.
func (s *AlertService) raise(ctx context.Context, dealerID uuid.UUID, alert *domain.Alert, now time.Time) (bool, error) {
	exists, err := s.alertRepo.ExistsActive(ctx, dealerID, alert.Type, alert.EntityID)
	if err != nil {
		return false, customError.WrapDatabaseError(err)
	}
	if exists {
		return false, nil
	}

	alert.ID = uuid.New()
	alert.DealerID = dealerID
	alert.AlertID = utils.GenerateAlertID(dealerID)
	alert.Status = domain.AlertStatusActive
	alert.CreatedAt = now
	alert.UpdatedAt = now

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return false, customError.WrapDatabaseError(err)
	}

	s.log.Info().
		Str("alert_id", alert.AlertID).
		Str("type", alert.Type).
		Str("priority", alert.Priority).
		Msg("alert raised")

	return true, nil
}

func (s *AlertService) GetAlert(ctx context.Context, dealerID, alertID uuid.UUID) (*domain.Alert, error) {
	alert, err := s.alertRepo.GetByID(ctx, dealerID, alertID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.NewBusinessError(customError.ErrCodeAlertNotFound, "Alert not found", customError.ErrAlertNotFound)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return alert, nil
}

func (s *AlertService) ListAlerts(ctx context.Context, dealerID uuid.UUID, filter *domain.AlertFilter) ([]*domain.Alert, int, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit, s.config)

	alerts, total, err := s.alertRepo.List(ctx, dealerID, *filter)
	if err != nil {
		return nil, 0, customError.WrapDatabaseError(err)
	}

	return alerts, total, nil
}

// UpdateAlertStatus moves an alert to acknowledged or resolved.
func (s *AlertService) UpdateAlertStatus(ctx context.Context, dealerID, alertID uuid.UUID, status string) (*domain.Alert, error) {
	if status != domain.AlertStatusAcknowledged && status != domain.AlertStatusResolved {
		return nil, customError.WrapValidation("status must be acknowledged or resolved")
	}

	updated, err := s.alertRepo.UpdateStatus(ctx, dealerID, alertID, status)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if !updated {
		return nil, customError.NewBusinessError(customError.ErrCodeAlertNotFound, "Alert not found", customError.ErrAlertNotFound)
	}

	return s.GetAlert(ctx, dealerID, alertID)
}
