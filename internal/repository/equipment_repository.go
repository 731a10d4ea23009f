package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dealerops/rental-engine/internal/domain"
)

const equipmentColumns = `
	id, dealer_id, equipment_id, kind, name, equipment_type, model, serial_number,
	year, daily_rate, availability, active_rental_id, expected_return_date,
	next_maintenance_date, is_active, created_at, updated_at
`

type equipmentRepository struct {
	db sqlx.ExtContext
}

func NewEquipmentRepository(db *sqlx.DB) EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) WithTx(tx *sqlx.Tx) EquipmentRepository {
	return &equipmentRepository{db: tx}
}

func (r *equipmentRepository) Create(ctx context.Context, eq *domain.Equipment) error {
	query := `
		INSERT INTO equipment (id, dealer_id, equipment_id, kind, name, equipment_type, model,
			serial_number, year, daily_rate, availability, next_maintenance_date, is_active,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(ctx, query,
		eq.ID,
		eq.DealerID,
		eq.EquipmentID,
		eq.Kind,
		eq.Name,
		eq.EquipmentType,
		eq.Model,
		eq.SerialNumber,
		eq.Year,
		eq.DailyRate,
		eq.Availability,
		eq.NextMaintenanceDate,
		eq.IsActive,
		eq.CreatedAt,
		eq.UpdatedAt,
	)

	return err
}

func (r *equipmentRepository) GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Equipment, error) {
	query := `
		SELECT ` + equipmentColumns + `
		FROM equipment
		WHERE dealer_id = $1 AND id = $2 AND is_active = TRUE
	`

	var eq domain.Equipment
	if err := sqlx.GetContext(ctx, r.db, &eq, query, dealerID, id); err != nil {
		return nil, err
	}

	return &eq, nil
}

func (r *equipmentRepository) List(ctx context.Context, dealerID uuid.UUID, filter domain.EquipmentFilter) ([]*domain.Equipment, int, error) {
	where := `WHERE dealer_id = $1 AND is_active = TRUE`
	args := []interface{}{dealerID}

	if filter.Search != "" {
		where += fmt.Sprintf(` AND (name ILIKE $%d OR equipment_type ILIKE $%d OR model ILIKE $%d)`,
			len(args)+1, len(args)+1, len(args)+1)
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.Kind != "" {
		where += fmt.Sprintf(` AND kind = $%d`, len(args)+1)
		args = append(args, filter.Kind)
	}
	if filter.Availability != "" {
		where += fmt.Sprintf(` AND availability = $%d`, len(args)+1)
		args = append(args, filter.Availability)
	}
	if filter.EquipmentType != "" {
		where += fmt.Sprintf(` AND equipment_type = $%d`, len(args)+1)
		args = append(args, filter.EquipmentType)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM equipment ` + where
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + equipmentColumns + ` FROM equipment ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	var items []*domain.Equipment
	if err := sqlx.SelectContext(ctx, r.db, &items, query, args...); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *equipmentRepository) Update(ctx context.Context, eq *domain.Equipment) error {
	query := `
		UPDATE equipment
		SET name = $3, equipment_type = $4, model = $5, serial_number = $6, year = $7,
			daily_rate = $8, availability = $9, next_maintenance_date = $10, updated_at = $11
		WHERE dealer_id = $1 AND id = $2
	`

	_, err := r.db.ExecContext(ctx, query,
		eq.DealerID,
		eq.ID,
		eq.Name,
		eq.EquipmentType,
		eq.Model,
		eq.SerialNumber,
		eq.Year,
		eq.DailyRate,
		eq.Availability,
		eq.NextMaintenanceDate,
		time.Now(),
	)

	return err
}

func (r *equipmentRepository) SoftDelete(ctx context.Context, dealerID, id uuid.UUID) (bool, error) {
	query := `
		UPDATE equipment
		SET is_active = FALSE, updated_at = $3
		WHERE dealer_id = $1 AND id = $2 AND is_active = TRUE
	`

	result, err := r.db.ExecContext(ctx, query, dealerID, id, time.Now())
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *equipmentRepository) ClaimForRental(ctx context.Context, dealerID, equipmentID, rentalID uuid.UUID, expectedReturn *time.Time) (bool, error) {
	// The availability check and the transition are one statement, so
	// only one of two concurrent claims can succeed.
	query := `
		UPDATE equipment
		SET availability = 'rented', active_rental_id = $3, expected_return_date = $4, updated_at = $5
		WHERE dealer_id = $1 AND id = $2 AND is_active = TRUE AND availability = 'available'
	`

	result, err := r.db.ExecContext(ctx, query, dealerID, equipmentID, rentalID, expectedReturn, time.Now())
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *equipmentRepository) Release(ctx context.Context, dealerID, equipmentID, rentalID uuid.UUID) error {
	// Only the rental that holds the equipment may free it. A release
	// racing a close-then-reclaim would otherwise strip another
	// rental's hold.
	query := `
		UPDATE equipment
		SET availability = 'available', active_rental_id = NULL, expected_return_date = NULL, updated_at = $4
		WHERE dealer_id = $1 AND id = $2 AND active_rental_id = $3
	`

	_, err := r.db.ExecContext(ctx, query, dealerID, equipmentID, rentalID, time.Now())
	return err
}

func (r *equipmentRepository) ListMaintenanceDue(ctx context.Context, dealerID uuid.UUID, before time.Time) ([]*domain.Equipment, error) {
	query := `
		SELECT ` + equipmentColumns + `
		FROM equipment
		WHERE dealer_id = $1 AND is_active = TRUE AND next_maintenance_date IS NOT NULL
			AND next_maintenance_date <= $2
		ORDER BY next_maintenance_date
	`

	var items []*domain.Equipment
	if err := sqlx.SelectContext(ctx, r.db, &items, query, dealerID, before); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *equipmentRepository) CountByAvailability(ctx context.Context, dealerID uuid.UUID) (map[string]int, error) {
	query := `
		SELECT availability, COUNT(*) AS count
		FROM equipment
		WHERE dealer_id = $1 AND is_active = TRUE
		GROUP BY availability
	`

	rows, err := r.db.QueryxContext(ctx, query, dealerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var availability string
		var count int
		if err := rows.Scan(&availability, &count); err != nil {
			return nil, err
		}
		counts[availability] = count
	}

	return counts, rows.Err()
}
