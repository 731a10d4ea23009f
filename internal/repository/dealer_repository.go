package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dealerops/rental-engine/internal/domain"
)

const dealerColumns = `
	id, name, email, password_hash, business_name, phone, is_active, created_at, updated_at
`

type dealerRepository struct {
	db *sqlx.DB
}

func NewDealerRepository(db *sqlx.DB) DealerRepository {
	return &dealerRepository{db: db}
}

func (r *dealerRepository) Create(ctx context.Context, dealer *domain.Dealer) error {
	query := `
		INSERT INTO dealers (id, name, email, password_hash, business_name, phone, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		dealer.ID,
		dealer.Name,
		dealer.Email,
		dealer.PasswordHash,
		dealer.BusinessName,
		dealer.Phone,
		dealer.IsActive,
		dealer.CreatedAt,
		dealer.UpdatedAt,
	)

	return err
}

func (r *dealerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dealer, error) {
	query := `
		SELECT ` + dealerColumns + `
		FROM dealers
		WHERE id = $1 AND is_active = TRUE
	`

	var dealer domain.Dealer
	if err := r.db.GetContext(ctx, &dealer, query, id); err != nil {
		return nil, err
	}

	return &dealer, nil
}

func (r *dealerRepository) GetByEmail(ctx context.Context, email string) (*domain.Dealer, error) {
	query := `
		SELECT ` + dealerColumns + `
		FROM dealers
		WHERE email = $1 AND is_active = TRUE
	`

	var dealer domain.Dealer
	if err := r.db.GetContext(ctx, &dealer, query, email); err != nil {
		return nil, err
	}

	return &dealer, nil
}

func (r *dealerRepository) Update(ctx context.Context, dealer *domain.Dealer) error {
	query := `
		UPDATE dealers
		SET name = $2, email = $3, phone = $4, business_name = $5, updated_at = $6
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		dealer.ID,
		dealer.Name,
		dealer.Email,
		dealer.Phone,
		dealer.BusinessName,
		time.Now(),
	)

	return err
}

func (r *dealerRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `
		UPDATE dealers
		SET password_hash = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, passwordHash, time.Now())
	return err
}

func (r *dealerRepository) ListActive(ctx context.Context) ([]*domain.Dealer, error) {
	query := `
		SELECT ` + dealerColumns + `
		FROM dealers
		WHERE is_active = TRUE
		ORDER BY created_at
	`

	var dealers []*domain.Dealer
	if err := r.db.SelectContext(ctx, &dealers, query); err != nil {
		return nil, err
	}

	return dealers, nil
}
