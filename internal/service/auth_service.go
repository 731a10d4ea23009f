package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dealerops/rental-engine/internal/auth"
	"github.com/dealerops/rental-engine/internal/domain"
	"github.com/dealerops/rental-engine/internal/repository"
	customError "github.com/dealerops/rental-engine/pkg/errors"
)

// AuthService handles dealer registration and login.
type AuthService struct {
	dealerRepo repository.DealerRepository
	tokens     *auth.TokenManager
	log        zerolog.Logger
}

func NewAuthService(dealerRepo repository.DealerRepository, tokens *auth.TokenManager, log zerolog.Logger) *AuthService {
	return &AuthService{
		dealerRepo: dealerRepo,
		tokens:     tokens,
		log:        log,
	}
}

func (s *AuthService) Register(ctx context.Context, request *domain.RegisterDealerRequest) (*domain.AuthResponse, error) {
	if err := validate.Struct(request); err != nil {
		return nil, customError.WrapValidation(err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	_, err := s.dealerRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, customError.NewBusinessError(customError.ErrCodeEmailTaken, "Email is already registered", customError.ErrEmailTaken)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dealer := &domain.Dealer{
		ID:           uuid.New(),
		Name:         request.Name,
		Email:        email,
		PasswordHash: string(hash),
		BusinessName: request.BusinessName,
		Phone:        request.Phone,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.dealerRepo.Create(ctx, dealer); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	token, err := s.tokens.Issue(dealer.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", dealer.Email).Msg("dealer registered")

	return &domain.AuthResponse{Token: token, Dealer: dealer}, nil
}

func (s *AuthService) Login(ctx context.Context, request *domain.LoginRequest) (*domain.AuthResponse, error) {
	if err := validate.Struct(request); err != nil {
		return nil, customError.WrapValidation(err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	dealer, err := s.dealerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.NewBusinessError(customError.ErrCodeInvalidCredentials, "Invalid email or password", customError.ErrInvalidCredentials)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(dealer.PasswordHash), []byte(request.Password)); err != nil {
		return nil, customError.NewBusinessError(customError.ErrCodeInvalidCredentials, "Invalid email or password", customError.ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(dealer.ID)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{Token: token, Dealer: dealer}, nil
}

// UpdateProfile applies a partial edit to the dealer's own profile.
// A changed email must not collide with another account.
func (s *AuthService) UpdateProfile(ctx context.Context, dealerID uuid.UUID, request *domain.UpdateProfileRequest) (*domain.Dealer, error) {
	if err := validate.Struct(request); err != nil {
		return nil, customError.WrapValidation(err.Error())
	}

	dealer, err := s.dealerRepo.GetByID(ctx, dealerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.NewBusinessError(customError.ErrCodeDealerNotFound, "Dealer not found", customError.ErrDealerNotFound)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if request.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*request.Email))
		if email != dealer.Email {
			existing, err := s.dealerRepo.GetByEmail(ctx, email)
			if err == nil && existing.ID != dealer.ID {
				return nil, customError.NewBusinessError(customError.ErrCodeEmailTaken, "Email is already taken by another account", customError.ErrEmailTaken)
			}
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return nil, customError.WrapDatabaseError(err)
			}
		}
		dealer.Email = email
	}
	if request.Name != nil {
		dealer.Name = *request.Name
	}
	if request.Phone != nil {
		dealer.Phone = request.Phone
	}
	if request.BusinessName != nil {
		dealer.BusinessName = *request.BusinessName
	}

	if err := s.dealerRepo.Update(ctx, dealer); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.Info().Str("dealer_id", dealer.ID.String()).Msg("dealer profile updated")

	return dealer, nil
}

// ChangePassword swaps the dealer's password after verifying the
// current one.
func (s *AuthService) ChangePassword(ctx context.Context, dealerID uuid.UUID, request *domain.ChangePasswordRequest) error {
	if err := validate.Struct(request); err != nil {
		return customError.WrapValidation(err.Error())
	}

	dealer, err := s.dealerRepo.GetByID(ctx, dealerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.NewBusinessError(customError.ErrCodeDealerNotFound, "Dealer not found", customError.ErrDealerNotFound)
		}
		return customError.WrapDatabaseError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(dealer.PasswordHash), []byte(request.CurrentPassword)); err != nil {
		return customError.WrapValidation("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.dealerRepo.UpdatePassword(ctx, dealer.ID, string(hash)); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.log.Info().Str("dealer_id", dealer.ID.String()).Msg("dealer password changed")

	return nil
}

// CurrentDealer resolves the authenticated dealer's profile.
func (s *AuthService) CurrentDealer(ctx context.Context, dealerID uuid.UUID) (*domain.Dealer, error) {
	dealer, err := s.dealerRepo.GetByID(ctx, dealerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.NewBusinessError(customError.ErrCodeDealerNotFound, "Dealer not found", customError.ErrDealerNotFound)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return dealer, nil
}
