package repos

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dealerops/rental-engine/internal/repository"
)

func TestSumOutstanding(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewLedgerRepository(db)

	dealerID := uuid.New()
	customerID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(outstanding_due), 0)`)).
		WithArgs(dealerID, customerID).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("750.50"))

	total, err := repo.SumOutstanding(context.Background(), dealerID, customerID)

	assert.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("750.50")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteLedgerEntry(t *testing.T) {
	dealerID := uuid.New()
	entryID := uuid.New()

	deletePattern := regexp.QuoteMeta(`DELETE FROM payments WHERE dealer_id = $1 AND id = $2`)

	t.Run("deletes existing entry", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewLedgerRepository(db)

		mock.ExpectExec(deletePattern).
			WithArgs(dealerID, entryID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		deleted, err := repo.Delete(context.Background(), dealerID, entryID)

		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("reports false for missing entry", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewLedgerRepository(db)

		mock.ExpectExec(deletePattern).
			WithArgs(dealerID, entryID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		deleted, err := repo.Delete(context.Background(), dealerID, entryID)

		assert.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestLedgerTotals(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewLedgerRepository(db)

	dealerID := uuid.New()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount_paid\), 0\) AS paid`).
		WithArgs(dealerID).
		WillReturnRows(sqlmock.NewRows([]string{"paid", "outstanding", "count"}).
			AddRow("1200.00", "450.00", 7))

	paid, outstanding, count, err := repo.Totals(context.Background(), dealerID)

	assert.NoError(t, err)
	assert.True(t, paid.Equal(decimal.RequireFromString("1200.00")))
	assert.True(t, outstanding.Equal(decimal.RequireFromString("450.00")))
	assert.Equal(t, 7, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelRentalConditional(t *testing.T) {
	dealerID := uuid.New()
	rentalID := uuid.New()

	cancelPattern := regexp.QuoteMeta(`
		UPDATE rentals
		SET status = 'cancelled', updated_at = $3
		WHERE dealer_id = $1 AND id = $2 AND status NOT IN ('cancelled', 'completed')
	`)

	t.Run("cancels a live rental", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewRentalRepository(db)

		mock.ExpectExec(cancelPattern).
			WithArgs(dealerID, rentalID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		cancelled, err := repo.Cancel(context.Background(), dealerID, rentalID)

		assert.NoError(t, err)
		assert.True(t, cancelled)
	})

	t.Run("reports false when already cancelled", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewRentalRepository(db)

		mock.ExpectExec(cancelPattern).
			WithArgs(dealerID, rentalID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		cancelled, err := repo.Cancel(context.Background(), dealerID, rentalID)

		assert.NoError(t, err)
		assert.False(t, cancelled)
	})
}
