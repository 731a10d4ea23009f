package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerops/rental-engine/internal/config"
	"github.com/dealerops/rental-engine/internal/domain"
	"github.com/dealerops/rental-engine/internal/repository"
)

var testDB *sqlx.DB

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	teardown()
	os.Exit(code)
}

func setup() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	cfg.Database.Name = "postgres"
	adminDB, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to postgres database: %v", err))
	}
	defer adminDB.Close()

	testDBName := "rental_engine_test"
	adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s", testDBName))
	if _, err = adminDB.Exec(fmt.Sprintf("CREATE DATABASE %s", testDBName)); err != nil {
		panic(fmt.Sprintf("Failed to create test database: %v", err))
	}

	cfg.Database.Name = testDBName
	testDB, err = sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to test database: %v", err))
	}

	sqlBytes, err := os.ReadFile("../../../scripts/init.sql")
	if err != nil {
		panic(fmt.Sprintf("Failed to read init.sql: %v", err))
	}
	if _, err = testDB.Exec(string(sqlBytes)); err != nil {
		panic(fmt.Sprintf("Failed to execute init.sql: %v", err))
	}
}

func teardown() {
	if testDB != nil {
		testDB.Close()
	}

	cfg, _ := config.Load()
	cfg.Database.Name = "postgres"

	adminDB, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return
	}
	defer adminDB.Close()

	adminDB.Exec("DROP DATABASE IF EXISTS rental_engine_test")
}

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	testDB.Exec("DELETE FROM alerts")
	testDB.Exec("DELETE FROM payments")
	testDB.Exec("DELETE FROM rentals")
	testDB.Exec("DELETE FROM equipment")
	testDB.Exec("DELETE FROM customers")
	testDB.Exec("DELETE FROM dealers")
	return testDB
}

func seedDealer(t *testing.T, db *sqlx.DB) *domain.Dealer {
	t.Helper()
	dealer := &domain.Dealer{
		ID:           uuid.New(),
		Name:         "Test Dealer",
		Email:        fmt.Sprintf("dealer-%s@example.com", uuid.NewString()[:8]),
		PasswordHash: "hash",
		BusinessName: "Test Rentals",
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, repository.NewDealerRepository(db).Create(context.Background(), dealer))
	return dealer
}

func seedCustomer(t *testing.T, db *sqlx.DB, dealerID uuid.UUID) *domain.Customer {
	t.Helper()
	customer := &domain.Customer{
		ID:                  uuid.New(),
		DealerID:            dealerID,
		CustomerID:          fmt.Sprintf("CUS-%s", uuid.NewString()[:12]),
		Name:                "Acme Construction",
		ContactNumber:       "555-0100",
		BusinessType:        "construction",
		TotalOutstandingDue: decimal.Zero,
		IsActive:            true,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
	require.NoError(t, repository.NewCustomerRepository(db).Create(context.Background(), customer))
	return customer
}

func seedEquipment(t *testing.T, db *sqlx.DB, dealerID uuid.UUID) *domain.Equipment {
	t.Helper()
	eq := &domain.Equipment{
		ID:            uuid.New(),
		DealerID:      dealerID,
		EquipmentID:   fmt.Sprintf("EQP-%s", uuid.NewString()[:12]),
		Kind:          domain.EquipmentKindMachine,
		Name:          "Excavator",
		EquipmentType: "earthmover",
		Model:         "CAT 320",
		DailyRate:     decimal.NewFromInt(450),
		Availability:  domain.AvailabilityAvailable,
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, repository.NewEquipmentRepository(db).Create(context.Background(), eq))
	return eq
}

func seedRental(t *testing.T, db *sqlx.DB, dealerID, customerID, equipmentID uuid.UUID) *domain.Rental {
	t.Helper()
	rental := &domain.Rental{
		ID:            uuid.New(),
		DealerID:      dealerID,
		RentalID:      fmt.Sprintf("RNT-%s", uuid.NewString()[:12]),
		CustomerID:    customerID,
		EquipmentID:   equipmentID,
		OpenedAt:      time.Now(),
		AgreedAmount:  decimal.NewFromInt(500),
		DepositAmount: decimal.NewFromInt(100),
		Status:        domain.RentalStatusActive,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, repository.NewRentalRepository(db).Create(context.Background(), rental))
	return rental
}

func TestEquipmentRepository_ClaimForRental(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	dealer := seedDealer(t, db)
	customer := seedCustomer(t, db, dealer.ID)
	eq := seedEquipment(t, db, dealer.ID)
	rental := seedRental(t, db, dealer.ID, customer.ID, eq.ID)

	repo := repository.NewEquipmentRepository(db)

	claimed, err := repo.ClaimForRental(ctx, dealer.ID, eq.ID, rental.ID, nil)
	require.NoError(t, err)
	assert.True(t, claimed)

	// A second claim must lose.
	claimed, err = repo.ClaimForRental(ctx, dealer.ID, eq.ID, rental.ID, nil)
	require.NoError(t, err)
	assert.False(t, claimed)

	got, err := repo.GetByID(ctx, dealer.ID, eq.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AvailabilityRented, got.Availability)
	require.NotNil(t, got.ActiveRentalID)
	assert.Equal(t, rental.ID, *got.ActiveRentalID)

	require.NoError(t, repo.Release(ctx, dealer.ID, eq.ID, rental.ID))

	got, err = repo.GetByID(ctx, dealer.ID, eq.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AvailabilityAvailable, got.Availability)
	assert.Nil(t, got.ActiveRentalID)
}

func TestEquipmentRepository_ReleaseIgnoresStaleRental(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	dealer := seedDealer(t, db)
	customer := seedCustomer(t, db, dealer.ID)
	eq := seedEquipment(t, db, dealer.ID)
	first := seedRental(t, db, dealer.ID, customer.ID, eq.ID)
	second := seedRental(t, db, dealer.ID, customer.ID, eq.ID)

	repo := repository.NewEquipmentRepository(db)

	// First rental runs its course and the equipment is reclaimed by
	// a second rental.
	claimed, err := repo.ClaimForRental(ctx, dealer.ID, eq.ID, first.ID, nil)
	require.NoError(t, err)
	require.True(t, claimed)
	require.NoError(t, repo.Release(ctx, dealer.ID, eq.ID, first.ID))

	claimed, err = repo.ClaimForRental(ctx, dealer.ID, eq.ID, second.ID, nil)
	require.NoError(t, err)
	require.True(t, claimed)

	// A late release carrying the first rental's id must not strip
	// the second rental's hold.
	require.NoError(t, repo.Release(ctx, dealer.ID, eq.ID, first.ID))

	got, err := repo.GetByID(ctx, dealer.ID, eq.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AvailabilityRented, got.Availability)
	require.NotNil(t, got.ActiveRentalID)
	assert.Equal(t, second.ID, *got.ActiveRentalID)
}

func TestRentalRepository_CompleteOnlyActive(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	dealer := seedDealer(t, db)
	customer := seedCustomer(t, db, dealer.ID)
	eq := seedEquipment(t, db, dealer.ID)
	rental := seedRental(t, db, dealer.ID, customer.ID, eq.ID)

	repo := repository.NewRentalRepository(db)

	completed, err := repo.Complete(ctx, dealer.ID, rental.ID, domain.ReturnConditionGood, nil, time.Now())
	require.NoError(t, err)
	assert.True(t, completed)

	// Completing again reports false.
	completed, err = repo.Complete(ctx, dealer.ID, rental.ID, domain.ReturnConditionGood, nil, time.Now())
	require.NoError(t, err)
	assert.False(t, completed)

	// A completed rental cannot be cancelled either.
	cancelled, err := repo.Cancel(ctx, dealer.ID, rental.ID)
	require.NoError(t, err)
	assert.False(t, cancelled)

	got, err := repo.GetByID(ctx, dealer.ID, rental.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RentalStatusCompleted, got.Status)
	assert.NotNil(t, got.ClosedAt)
}

func TestRentalRepository_CancelKeepsRow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	dealer := seedDealer(t, db)
	customer := seedCustomer(t, db, dealer.ID)
	eq := seedEquipment(t, db, dealer.ID)
	rental := seedRental(t, db, dealer.ID, customer.ID, eq.ID)

	repo := repository.NewRentalRepository(db)

	cancelled, err := repo.Cancel(ctx, dealer.ID, rental.ID)
	require.NoError(t, err)
	assert.True(t, cancelled)

	cancelled, err = repo.Cancel(ctx, dealer.ID, rental.ID)
	require.NoError(t, err)
	assert.False(t, cancelled)

	got, err := repo.GetByID(ctx, dealer.ID, rental.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RentalStatusCancelled, got.Status)
}

func TestLedgerRepository_SumOutstanding(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	dealer := seedDealer(t, db)
	customer := seedCustomer(t, db, dealer.ID)
	eq := seedEquipment(t, db, dealer.ID)
	rental := seedRental(t, db, dealer.ID, customer.ID, eq.ID)

	ledger := repository.NewLedgerRepository(db)

	for i, due := range []int64{600, 400} {
		entry := &domain.LedgerEntry{
			ID:             uuid.New(),
			DealerID:       dealer.ID,
			PaymentID:      fmt.Sprintf("PAY-%s-%d", uuid.NewString()[:8], i),
			CustomerID:     customer.ID,
			RentalID:       rental.ID,
			AmountPaid:     decimal.NewFromInt(200),
			OutstandingDue: decimal.NewFromInt(due),
			Method:         domain.PaymentMethodCash,
			RecordedAt:     time.Now(),
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}
		require.NoError(t, ledger.Create(ctx, entry))
	}

	total, err := ledger.SumOutstanding(ctx, dealer.ID, customer.ID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(1000)))

	customers := repository.NewCustomerRepository(db)
	require.NoError(t, customers.SetTotalOutstandingDue(ctx, dealer.ID, customer.ID, total))

	got, err := customers.GetByID(ctx, dealer.ID, customer.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalOutstandingDue.Equal(decimal.NewFromInt(1000)))
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	dealer := seedDealer(t, db)
	customer := seedCustomer(t, db, dealer.ID)
	eq := seedEquipment(t, db, dealer.ID)

	tm := repository.NewTxManager(db)
	rentals := repository.NewRentalRepository(db)

	rentalID := uuid.New()
	err := tm.WithinTx(ctx, func(tx *sqlx.Tx) error {
		rental := &domain.Rental{
			ID:           rentalID,
			DealerID:     dealer.ID,
			RentalID:     fmt.Sprintf("RNT-%s", uuid.NewString()[:12]),
			CustomerID:   customer.ID,
			EquipmentID:  eq.ID,
			OpenedAt:     time.Now(),
			AgreedAmount: decimal.NewFromInt(500),
			Status:       domain.RentalStatusActive,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
		if err := rentals.WithTx(tx).Create(ctx, rental); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	_, err = rentals.GetByID(ctx, dealer.ID, rentalID)
	assert.Error(t, err)
}
