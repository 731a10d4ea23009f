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

const ledgerColumns = `
	p.id, p.dealer_id, p.payment_id, p.customer_id, p.rental_id, p.amount_paid,
	p.outstanding_due, p.method, p.transaction_reference, p.notes, p.recorded_at,
	p.created_at, p.updated_at
`

const ledgerJoinedColumns = ledgerColumns + `,
	c.name AS customer_name, r.rental_id AS rental_ref
`

const ledgerJoins = `
	JOIN customers c ON c.id = p.customer_id
	JOIN rentals r ON r.id = p.rental_id
`

type ledgerRepository struct {
	db sqlx.ExtContext
}

func NewLedgerRepository(db *sqlx.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) WithTx(tx *sqlx.Tx) LedgerRepository {
	return &ledgerRepository{db: tx}
}

func (r *ledgerRepository) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	query := `
		INSERT INTO payments (id, dealer_id, payment_id, customer_id, rental_id, amount_paid,
			outstanding_due, method, transaction_reference, notes, recorded_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.DealerID,
		entry.PaymentID,
		entry.CustomerID,
		entry.RentalID,
		entry.AmountPaid,
		entry.OutstandingDue,
		entry.Method,
		entry.TransactionReference,
		entry.Notes,
		entry.RecordedAt,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	return err
}

func (r *ledgerRepository) GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerJoinedColumns + `
		FROM payments p ` + ledgerJoins + `
		WHERE p.dealer_id = $1 AND p.id = $2
	`

	var entry domain.LedgerEntry
	if err := sqlx.GetContext(ctx, r.db, &entry, query, dealerID, id); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *ledgerRepository) List(ctx context.Context, dealerID uuid.UUID, filter domain.PaymentFilter) ([]*domain.LedgerEntry, int, error) {
	where := `WHERE p.dealer_id = $1`
	args := []interface{}{dealerID}

	if filter.CustomerID != nil {
		where += fmt.Sprintf(` AND p.customer_id = $%d`, len(args)+1)
		args = append(args, *filter.CustomerID)
	}
	if filter.RentalID != nil {
		where += fmt.Sprintf(` AND p.rental_id = $%d`, len(args)+1)
		args = append(args, *filter.RentalID)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM payments p ` + where
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + ledgerJoinedColumns + ` FROM payments p ` + ledgerJoins + ` ` + where +
		fmt.Sprintf(` ORDER BY p.recorded_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	var entries []*domain.LedgerEntry
	if err := sqlx.SelectContext(ctx, r.db, &entries, query, args...); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *ledgerRepository) ListByRental(ctx context.Context, dealerID, rentalID uuid.UUID) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM payments p
		WHERE p.dealer_id = $1 AND p.rental_id = $2
		ORDER BY p.recorded_at DESC
	`

	var entries []*domain.LedgerEntry
	if err := sqlx.SelectContext(ctx, r.db, &entries, query, dealerID, rentalID); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *ledgerRepository) ListByCustomer(ctx context.Context, dealerID, customerID uuid.UUID) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM payments p
		WHERE p.dealer_id = $1 AND p.customer_id = $2
		ORDER BY p.recorded_at DESC
	`

	var entries []*domain.LedgerEntry
	if err := sqlx.SelectContext(ctx, r.db, &entries, query, dealerID, customerID); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *ledgerRepository) Update(ctx context.Context, entry *domain.LedgerEntry) error {
	query := `
		UPDATE payments
		SET amount_paid = $3, outstanding_due = $4, method = $5, transaction_reference = $6,
			notes = $7, updated_at = $8
		WHERE dealer_id = $1 AND id = $2
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.DealerID,
		entry.ID,
		entry.AmountPaid,
		entry.OutstandingDue,
		entry.Method,
		entry.TransactionReference,
		entry.Notes,
		time.Now(),
	)

	return err
}

func (r *ledgerRepository) Delete(ctx context.Context, dealerID, id uuid.UUID) (bool, error) {
	query := `DELETE FROM payments WHERE dealer_id = $1 AND id = $2`

	result, err := r.db.ExecContext(ctx, query, dealerID, id)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *ledgerRepository) SumOutstanding(ctx context.Context, dealerID, customerID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(outstanding_due), 0)
		FROM payments
		WHERE dealer_id = $1 AND customer_id = $2
	`

	var total decimal.Decimal
	if err := sqlx.GetContext(ctx, r.db, &total, query, dealerID, customerID); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

func (r *ledgerRepository) ListOverdueOutstanding(ctx context.Context, dealerID uuid.UUID, before time.Time) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerJoinedColumns + `
		FROM payments p ` + ledgerJoins + `
		WHERE p.dealer_id = $1 AND p.outstanding_due > 0 AND p.recorded_at < $2
		ORDER BY p.recorded_at
	`

	var entries []*domain.LedgerEntry
	if err := sqlx.SelectContext(ctx, r.db, &entries, query, dealerID, before); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *ledgerRepository) Totals(ctx context.Context, dealerID uuid.UUID) (decimal.Decimal, decimal.Decimal, int, error) {
	query := `
		SELECT COALESCE(SUM(amount_paid), 0) AS paid,
			COALESCE(SUM(outstanding_due), 0) AS outstanding,
			COUNT(*) AS count
		FROM payments
		WHERE dealer_id = $1
	`

	var row struct {
		Paid        decimal.Decimal `db:"paid"`
		Outstanding decimal.Decimal `db:"outstanding"`
		Count       int             `db:"count"`
	}
	if err := sqlx.GetContext(ctx, r.db, &row, query, dealerID); err != nil {
		return decimal.Zero, decimal.Zero, 0, err
	}

	return row.Paid, row.Outstanding, row.Count, nil
}
