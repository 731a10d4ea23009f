package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/dealerops/rental-engine/internal/domain"
)

const customerColumns = `
	id, dealer_id, customer_id, name, contact_number, email, business_type,
	total_rentals, total_outstanding_due, is_active, created_at, updated_at
`

type customerRepository struct {
	db sqlx.ExtContext
}

func NewCustomerRepository(db *sqlx.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) WithTx(tx *sqlx.Tx) CustomerRepository {
	return &customerRepository{db: tx}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, dealer_id, customer_id, name, contact_number, email,
			business_type, total_rentals, total_outstanding_due, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		customer.ID,
		customer.DealerID,
		customer.CustomerID,
		customer.Name,
		customer.ContactNumber,
		customer.Email,
		customer.BusinessType,
		customer.TotalRentals,
		customer.TotalOutstandingDue,
		customer.IsActive,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	return err
}

func (r *customerRepository) GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE dealer_id = $1 AND id = $2 AND is_active = TRUE
	`

	var customer domain.Customer
	if err := sqlx.GetContext(ctx, r.db, &customer, query, dealerID, id); err != nil {
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, dealerID uuid.UUID, filter domain.CustomerFilter) ([]*domain.Customer, int, error) {
	where := `WHERE dealer_id = $1 AND is_active = TRUE`
	args := []interface{}{dealerID}

	if filter.Search != "" {
		where += fmt.Sprintf(` AND (name ILIKE $%d OR contact_number ILIKE $%d OR email ILIKE $%d)`,
			len(args)+1, len(args)+1, len(args)+1)
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM customers ` + where
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + customerColumns + ` FROM customers ` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	var customers []*domain.Customer
	if err := sqlx.SelectContext(ctx, r.db, &customers, query, args...); err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	query := `
		UPDATE customers
		SET name = $3, contact_number = $4, email = $5, business_type = $6, updated_at = $7
		WHERE dealer_id = $1 AND id = $2
	`

	_, err := r.db.ExecContext(ctx, query,
		customer.DealerID,
		customer.ID,
		customer.Name,
		customer.ContactNumber,
		customer.Email,
		customer.BusinessType,
		time.Now(),
	)

	return err
}

func (r *customerRepository) SoftDelete(ctx context.Context, dealerID, id uuid.UUID) (bool, error) {
	query := `
		UPDATE customers
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

func (r *customerRepository) IncrementTotalRentals(ctx context.Context, dealerID, customerID uuid.UUID) error {
	query := `
		UPDATE customers
		SET total_rentals = total_rentals + 1, updated_at = $3
		WHERE dealer_id = $1 AND id = $2
	`

	_, err := r.db.ExecContext(ctx, query, dealerID, customerID, time.Now())
	return err
}

func (r *customerRepository) SetTotalOutstandingDue(ctx context.Context, dealerID, customerID uuid.UUID, total decimal.Decimal) error {
	query := `
		UPDATE customers
		SET total_outstanding_due = $3, updated_at = $4
		WHERE dealer_id = $1 AND id = $2
	`

	_, err := r.db.ExecContext(ctx, query, dealerID, customerID, total, time.Now())
	return err
}

func (r *customerRepository) IDs(ctx context.Context, dealerID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT id FROM customers WHERE dealer_id = $1 AND is_active = TRUE`

	var ids []uuid.UUID
	if err := sqlx.SelectContext(ctx, r.db, &ids, query, dealerID); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *customerRepository) ListWithOutstanding(ctx context.Context, dealerID uuid.UUID) ([]*domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE dealer_id = $1 AND is_active = TRUE AND total_outstanding_due > 0
		ORDER BY total_outstanding_due DESC
	`

	var customers []*domain.Customer
	if err := sqlx.SelectContext(ctx, r.db, &customers, query, dealerID); err != nil {
		return nil, err
	}

	return customers, nil
}

func (r *customerRepository) CountActive(ctx context.Context, dealerID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM customers WHERE dealer_id = $1 AND is_active = TRUE`

	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, query, dealerID); err != nil {
		return 0, err
	}

	return count, nil
}
