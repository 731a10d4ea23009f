package repos

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerops/rental-engine/internal/repository"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestClaimForRental(t *testing.T) {
	dealerID := uuid.New()
	equipmentID := uuid.New()
	rentalID := uuid.New()

	claimPattern := regexp.QuoteMeta(`
		UPDATE equipment
		SET availability = 'rented', active_rental_id = $3, expected_return_date = $4, updated_at = $5
		WHERE dealer_id = $1 AND id = $2 AND is_active = TRUE AND availability = 'available'
	`)

	t.Run("claims available equipment", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewEquipmentRepository(db)

		mock.ExpectExec(claimPattern).
			WithArgs(dealerID, equipmentID, rentalID, nil, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		claimed, err := repo.ClaimForRental(context.Background(), dealerID, equipmentID, rentalID, nil)

		assert.NoError(t, err)
		assert.True(t, claimed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports false when equipment is not available", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewEquipmentRepository(db)

		mock.ExpectExec(claimPattern).
			WithArgs(dealerID, equipmentID, rentalID, nil, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		claimed, err := repo.ClaimForRental(context.Background(), dealerID, equipmentID, rentalID, nil)

		assert.NoError(t, err)
		assert.False(t, claimed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRelease(t *testing.T) {
	dealerID := uuid.New()
	equipmentID := uuid.New()
	rentalID := uuid.New()

	releasePattern := regexp.QuoteMeta(`
		UPDATE equipment
		SET availability = 'available', active_rental_id = NULL, expected_return_date = NULL, updated_at = $4
		WHERE dealer_id = $1 AND id = $2 AND active_rental_id = $3
	`)

	t.Run("frees equipment held by the rental", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewEquipmentRepository(db)

		mock.ExpectExec(releasePattern).
			WithArgs(dealerID, equipmentID, rentalID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Release(context.Background(), dealerID, equipmentID, rentalID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("is a no-op when another rental holds the equipment", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewEquipmentRepository(db)

		mock.ExpectExec(releasePattern).
			WithArgs(dealerID, equipmentID, rentalID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Release(context.Background(), dealerID, equipmentID, rentalID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetEquipmentByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewEquipmentRepository(db)

	dealerID := uuid.New()
	equipmentID := uuid.New()
	now := time.Now()

	columns := []string{
		"id", "dealer_id", "equipment_id", "kind", "name", "equipment_type", "model",
		"serial_number", "year", "daily_rate", "availability", "active_rental_id",
		"expected_return_date", "next_maintenance_date", "is_active", "created_at", "updated_at",
	}

	mock.ExpectQuery(`SELECT (.+) FROM equipment`).
		WithArgs(dealerID, equipmentID).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			equipmentID, dealerID, "EQP-TEST-1", "machine", "Excavator", "earthmover", "CAT 320",
			nil, nil, "450.00", "available", nil, nil, nil, true, now, now,
		))

	eq, err := repo.GetByID(context.Background(), dealerID, equipmentID)

	assert.NoError(t, err)
	assert.Equal(t, "EQP-TEST-1", eq.EquipmentID)
	assert.Equal(t, "available", eq.Availability)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByAvailability(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewEquipmentRepository(db)

	dealerID := uuid.New()

	mock.ExpectQuery(`SELECT availability, COUNT`).
		WithArgs(dealerID).
		WillReturnRows(sqlmock.NewRows([]string{"availability", "count"}).
			AddRow("available", 3).
			AddRow("rented", 2))

	counts, err := repo.CountByAvailability(context.Background(), dealerID)

	assert.NoError(t, err)
	assert.Equal(t, 3, counts["available"])
	assert.Equal(t, 2, counts["rented"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
