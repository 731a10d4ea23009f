package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dealerops/rental-engine/internal/domain"
)

const alertColumns = `
	id, dealer_id, alert_id, type, priority, title, message, entity_type,
	entity_id, status, due_date, created_at, updated_at
`

type alertRepository struct {
	db *sqlx.DB
}

func NewAlertRepository(db *sqlx.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	query := `
		INSERT INTO alerts (id, dealer_id, alert_id, type, priority, title, message,
			entity_type, entity_id, status, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		alert.ID,
		alert.DealerID,
		alert.AlertID,
		alert.Type,
		alert.Priority,
		alert.Title,
		alert.Message,
		alert.EntityType,
		alert.EntityID,
		alert.Status,
		alert.DueDate,
		alert.CreatedAt,
		alert.UpdatedAt,
	)

	return err
}

func (r *alertRepository) GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE dealer_id = $1 AND id = $2
	`

	var alert domain.Alert
	if err := r.db.GetContext(ctx, &alert, query, dealerID, id); err != nil {
		return nil, err
	}

	return &alert, nil
}

func (r *alertRepository) List(ctx context.Context, dealerID uuid.UUID, filter domain.AlertFilter) ([]*domain.Alert, int, error) {
	where := `WHERE dealer_id = $1`
	args := []interface{}{dealerID}

	if filter.Status != "" {
		where += fmt.Sprintf(` AND status = $%d`, len(args)+1)
		args = append(args, filter.Status)
	}
	if filter.Type != "" {
		where += fmt.Sprintf(` AND type = $%d`, len(args)+1)
		args = append(args, filter.Type)
	}
	if filter.Priority != "" {
		where += fmt.Sprintf(` AND priority = $%d`, len(args)+1)
		args = append(args, filter.Priority)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM alerts ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + alertColumns + ` FROM alerts ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	var alerts []*domain.Alert
	if err := r.db.SelectContext(ctx, &alerts, query, args...); err != nil {
		return nil, 0, err
	}

	return alerts, total, nil
}

func (r *alertRepository) ExistsActive(ctx context.Context, dealerID uuid.UUID, alertType string, entityID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM alerts
			WHERE dealer_id = $1 AND type = $2 AND entity_id = $3 AND status = 'active'
		)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, dealerID, alertType, entityID); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *alertRepository) UpdateStatus(ctx context.Context, dealerID, id uuid.UUID, status string) (bool, error) {
	query := `
		UPDATE alerts
		SET status = $3, updated_at = $4
		WHERE dealer_id = $1 AND id = $2
	`

	result, err := r.db.ExecContext(ctx, query, dealerID, id, status, time.Now())
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	return rows > 0, err
}
