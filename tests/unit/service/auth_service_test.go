package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dealerops/rental-engine/internal/auth"
	"github.com/dealerops/rental-engine/internal/domain"
	authService "github.com/dealerops/rental-engine/internal/service"
	customError "github.com/dealerops/rental-engine/pkg/errors"
	"github.com/dealerops/rental-engine/tests/mocks"
)

func newAuthService() (*authService.AuthService, *mocks.MockDealerRepository) {
	dealers := new(mocks.MockDealerRepository)
	tokens := auth.NewTokenManager("unit-test-secret", time.Hour)
	return authService.NewAuthService(dealers, tokens, zerolog.Nop()), dealers
}

func testDealer(password string) *domain.Dealer {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return &domain.Dealer{
		ID:           uuid.New(),
		Name:         "Jordan Smith",
		Email:        "jordan@dealerops.test",
		PasswordHash: string(hash),
		BusinessName: "Smith Equipment Rentals",
		IsActive:     true,
	}
}

func strPtr(s string) *string { return &s }

func TestUpdateProfile(t *testing.T) {
	t.Run("Success - applies partial edit", func(t *testing.T) {
		svc, dealers := newAuthService()
		dealer := testDealer("hunter2hunter2")

		dealers.On("GetByID", mock.Anything, dealer.ID).Return(dealer, nil)
		dealers.On("Update", mock.Anything, mock.MatchedBy(func(d *domain.Dealer) bool {
			return d.Name == "Jordan A. Smith" && d.BusinessName == "Smith Equipment Rentals"
		})).Return(nil)

		updated, err := svc.UpdateProfile(context.Background(), dealer.ID, &domain.UpdateProfileRequest{
			Name: strPtr("Jordan A. Smith"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Jordan A. Smith", updated.Name)
		dealers.AssertExpectations(t)
	})

	t.Run("Success - changed email is lowercased and checked", func(t *testing.T) {
		svc, dealers := newAuthService()
		dealer := testDealer("hunter2hunter2")

		dealers.On("GetByID", mock.Anything, dealer.ID).Return(dealer, nil)
		dealers.On("GetByEmail", mock.Anything, "new@dealerops.test").Return(nil, sql.ErrNoRows)
		dealers.On("Update", mock.Anything, mock.MatchedBy(func(d *domain.Dealer) bool {
			return d.Email == "new@dealerops.test"
		})).Return(nil)

		updated, err := svc.UpdateProfile(context.Background(), dealer.ID, &domain.UpdateProfileRequest{
			Email: strPtr("  New@Dealerops.Test "),
		})

		require.NoError(t, err)
		assert.Equal(t, "new@dealerops.test", updated.Email)
	})

	t.Run("Error - email taken by another account", func(t *testing.T) {
		svc, dealers := newAuthService()
		dealer := testDealer("hunter2hunter2")
		other := testDealer("hunter2hunter2")
		other.Email = "taken@dealerops.test"

		dealers.On("GetByID", mock.Anything, dealer.ID).Return(dealer, nil)
		dealers.On("GetByEmail", mock.Anything, "taken@dealerops.test").Return(other, nil)

		updated, err := svc.UpdateProfile(context.Background(), dealer.ID, &domain.UpdateProfileRequest{
			Email: strPtr("taken@dealerops.test"),
		})

		assert.Error(t, err)
		assert.Nil(t, updated)
		assert.True(t, customError.IsConflict(err))
		dealers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Error - malformed email rejected", func(t *testing.T) {
		svc, dealers := newAuthService()

		updated, err := svc.UpdateProfile(context.Background(), uuid.New(), &domain.UpdateProfileRequest{
			Email: strPtr("not-an-email"),
		})

		assert.Error(t, err)
		assert.Nil(t, updated)
		assert.True(t, customError.IsValidation(err))
		dealers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("Success - verifies current password and stores new hash", func(t *testing.T) {
		svc, dealers := newAuthService()
		dealer := testDealer("old-password-1")

		dealers.On("GetByID", mock.Anything, dealer.ID).Return(dealer, nil)
		dealers.On("UpdatePassword", mock.Anything, dealer.ID, mock.MatchedBy(func(hash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("new-password-1")) == nil
		})).Return(nil)

		err := svc.ChangePassword(context.Background(), dealer.ID, &domain.ChangePasswordRequest{
			CurrentPassword: "old-password-1",
			NewPassword:     "new-password-1",
		})

		assert.NoError(t, err)
		dealers.AssertExpectations(t)
	})

	t.Run("Error - wrong current password", func(t *testing.T) {
		svc, dealers := newAuthService()
		dealer := testDealer("old-password-1")

		dealers.On("GetByID", mock.Anything, dealer.ID).Return(dealer, nil)

		err := svc.ChangePassword(context.Background(), dealer.ID, &domain.ChangePasswordRequest{
			CurrentPassword: "guessed-wrong",
			NewPassword:     "new-password-1",
		})

		assert.Error(t, err)
		assert.True(t, customError.IsValidation(err))
		dealers.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - new password too short", func(t *testing.T) {
		svc, dealers := newAuthService()

		err := svc.ChangePassword(context.Background(), uuid.New(), &domain.ChangePasswordRequest{
			CurrentPassword: "old-password-1",
			NewPassword:     "short",
		})

		assert.Error(t, err)
		assert.True(t, customError.IsValidation(err))
		dealers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
