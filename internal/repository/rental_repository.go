package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dealerops/rental-engine/internal/domain"
)

const rentalColumns = `
	r.id, r.dealer_id, r.rental_id, r.customer_id, r.equipment_id, r.opened_at,
	r.expected_return_date, r.closed_at, r.return_condition, r.agreed_amount,
	r.deposit_amount, r.status, r.notes, r.created_at, r.updated_at
`

// rentalJoinedColumns adds the customer and equipment display names the
// list and detail endpoints show without a second round trip.
const rentalJoinedColumns = rentalColumns + `,
	c.name AS customer_name, e.name AS equipment_name
`

const rentalJoins = `
	JOIN customers c ON c.id = r.customer_id
	JOIN equipment e ON e.id = r.equipment_id
`

type rentalRepository struct {
	db sqlx.ExtContext
}

func NewRentalRepository(db *sqlx.DB) RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) WithTx(tx *sqlx.Tx) RentalRepository {
	return &rentalRepository{db: tx}
}

func (r *rentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	query := `
		INSERT INTO rentals (id, dealer_id, rental_id, customer_id, equipment_id, opened_at,
			expected_return_date, agreed_amount, deposit_amount, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		rental.ID,
		rental.DealerID,
		rental.RentalID,
		rental.CustomerID,
		rental.EquipmentID,
		rental.OpenedAt,
		rental.ExpectedReturnDate,
		rental.AgreedAmount,
		rental.DepositAmount,
		rental.Status,
		rental.Notes,
		rental.CreatedAt,
		rental.UpdatedAt,
	)

	return err
}

func (r *rentalRepository) GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Rental, error) {
	query := `
		SELECT ` + rentalJoinedColumns + `
		FROM rentals r ` + rentalJoins + `
		WHERE r.dealer_id = $1 AND r.id = $2
	`

	var rental domain.Rental
	if err := sqlx.GetContext(ctx, r.db, &rental, query, dealerID, id); err != nil {
		return nil, err
	}

	return &rental, nil
}

func (r *rentalRepository) List(ctx context.Context, dealerID uuid.UUID, filter domain.RentalFilter) ([]*domain.Rental, int, error) {
	where := `WHERE r.dealer_id = $1`
	args := []interface{}{dealerID}

	if filter.Status != "" {
		where += fmt.Sprintf(` AND r.status = $%d`, len(args)+1)
		args = append(args, filter.Status)
	}
	if filter.CustomerID != nil {
		where += fmt.Sprintf(` AND r.customer_id = $%d`, len(args)+1)
		args = append(args, *filter.CustomerID)
	}
	if filter.Search != "" {
		where += fmt.Sprintf(` AND (r.rental_id ILIKE $%d OR r.status ILIKE $%d)`,
			len(args)+1, len(args)+1)
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM rentals r ` + where
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + rentalJoinedColumns + ` FROM rentals r ` + rentalJoins + ` ` + where +
		fmt.Sprintf(` ORDER BY r.opened_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	var rentals []*domain.Rental
	if err := sqlx.SelectContext(ctx, r.db, &rentals, query, args...); err != nil {
		return nil, 0, err
	}

	return rentals, total, nil
}

func (r *rentalRepository) ListByEquipment(ctx context.Context, dealerID, equipmentID uuid.UUID) ([]*domain.Rental, error) {
	query := `
		SELECT ` + rentalJoinedColumns + `
		FROM rentals r ` + rentalJoins + `
		WHERE r.dealer_id = $1 AND r.equipment_id = $2
		ORDER BY r.opened_at DESC
	`

	var rentals []*domain.Rental
	if err := sqlx.SelectContext(ctx, r.db, &rentals, query, dealerID, equipmentID); err != nil {
		return nil, err
	}

	return rentals, nil
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, dealerID, customerID uuid.UUID) ([]*domain.Rental, error) {
	query := `
		SELECT ` + rentalJoinedColumns + `
		FROM rentals r ` + rentalJoins + `
		WHERE r.dealer_id = $1 AND r.customer_id = $2
		ORDER BY r.opened_at DESC
	`

	var rentals []*domain.Rental
	if err := sqlx.SelectContext(ctx, r.db, &rentals, query, dealerID, customerID); err != nil {
		return nil, err
	}

	return rentals, nil
}

func (r *rentalRepository) Complete(ctx context.Context, dealerID, rentalID uuid.UUID, returnCondition string, notes *string, closedAt time.Time) (bool, error) {
	query := `
		UPDATE rentals
		SET status = 'completed', closed_at = $3, return_condition = $4,
			notes = COALESCE($5, notes), updated_at = $6
		WHERE dealer_id = $1 AND id = $2 AND status = 'active'
	`

	result, err := r.db.ExecContext(ctx, query, dealerID, rentalID, closedAt, returnCondition, notes, time.Now())
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *rentalRepository) Cancel(ctx context.Context, dealerID, rentalID uuid.UUID) (bool, error) {
	query := `
		UPDATE rentals
		SET status = 'cancelled', updated_at = $3
		WHERE dealer_id = $1 AND id = $2 AND status NOT IN ('cancelled', 'completed')
	`

	result, err := r.db.ExecContext(ctx, query, dealerID, rentalID, time.Now())
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *rentalRepository) CountActiveByCustomer(ctx context.Context, dealerID, customerID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM rentals
		WHERE dealer_id = $1 AND customer_id = $2 AND status = 'active'
	`

	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, query, dealerID, customerID); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *rentalRepository) ListOverdue(ctx context.Context, dealerID uuid.UUID, asOf time.Time) ([]*domain.Rental, error) {
	query := `
		SELECT ` + rentalJoinedColumns + `
		FROM rentals r ` + rentalJoins + `
		WHERE r.dealer_id = $1 AND r.status = 'active'
			AND r.expected_return_date IS NOT NULL AND r.expected_return_date < $2
		ORDER BY r.expected_return_date
	`

	var rentals []*domain.Rental
	if err := sqlx.SelectContext(ctx, r.db, &rentals, query, dealerID, asOf); err != nil {
		return nil, err
	}

	return rentals, nil
}

func (r *rentalRepository) CountByStatus(ctx context.Context, dealerID uuid.UUID) (map[string]int, error) {
	query := `
		SELECT status, COUNT(*) AS count
		FROM rentals
		WHERE dealer_id = $1
		GROUP BY status
	`

	rows, err := r.db.QueryxContext(ctx, query, dealerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}
