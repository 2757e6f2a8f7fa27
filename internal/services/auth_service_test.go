package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/hanyustudent/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		req           models.RegisterRequest
		userRepo      *mockUserRepository
		expectedError bool
		errorContains string
	}{
		{
			name:     "success",
			req:      models.RegisterRequest{Email: "Student@Example.com", Password: "secret-password", DisplayName: "Student"},
			userRepo: &mockUserRepository{},
		},
		{
			name:          "invalid email",
			req:           models.RegisterRequest{Email: "not-an-email", Password: "secret-password"},
			userRepo:      &mockUserRepository{},
			expectedError: true,
			errorContains: "invalid email",
		},
		{
			name:          "short password",
			req:           models.RegisterRequest{Email: "a@b.com", Password: "short"},
			userRepo:      &mockUserRepository{},
			expectedError: true,
			errorContains: "at least 8",
		},
		{
			name:          "duplicate email",
			req:           models.RegisterRequest{Email: "a@b.com", Password: "secret-password"},
			userRepo:      &mockUserRepository{userByEmail: &models.User{ID: 2, Email: "a@b.com"}},
			expectedError: true,
			errorContains: "already registered",
		},
		{
			name:          "create failure propagates",
			req:           models.RegisterRequest{Email: "a@b.com", Password: "secret-password"},
			userRepo:      &mockUserRepository{createErr: errors.New("database error")},
			expectedError: true,
			errorContains: "database error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &mockTokenIssuer{access: "access", refresh: "refresh"}
			svc := NewAuthService(tt.userRepo, tokens)

			resp, err := svc.Register(context.Background(), tt.req)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access", resp.AccessToken)
			assert.Equal(t, "refresh", resp.RefreshToken)
			assert.Equal(t, "student@example.com", tt.userRepo.created.Email)
			assert.NotEqual(t, tt.req.Password, tt.userRepo.created.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(tt.userRepo.created.PasswordHash), []byte(tt.req.Password)))
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	assert.NoError(t, err)
	user := &models.User{ID: 1, Email: "a@b.com", PasswordHash: string(hash)}

	tests := []struct {
		name          string
		req           models.LoginRequest
		userRepo      *mockUserRepository
		expectedError bool
	}{
		{
			name:     "success",
			req:      models.LoginRequest{Email: "a@b.com", Password: "secret-password"},
			userRepo: &mockUserRepository{userByEmail: user},
		},
		{
			name:     "email is case insensitive",
			req:      models.LoginRequest{Email: "A@B.com", Password: "secret-password"},
			userRepo: &mockUserRepository{userByEmail: user},
		},
		{
			name:          "unknown email",
			req:           models.LoginRequest{Email: "x@b.com", Password: "secret-password"},
			userRepo:      &mockUserRepository{},
			expectedError: true,
		},
		{
			name:          "wrong password",
			req:           models.LoginRequest{Email: "a@b.com", Password: "other-password"},
			userRepo:      &mockUserRepository{userByEmail: user},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &mockTokenIssuer{access: "access", refresh: "refresh"}
			svc := NewAuthService(tt.userRepo, tokens)

			resp, err := svc.Login(context.Background(), tt.req)

			if tt.expectedError {
				assert.Error(t, err)
				// The same message for unknown email and wrong password
				assert.Contains(t, err.Error(), "invalid email or password")
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "access", resp.AccessToken)
			}
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		userRepo := &mockUserRepository{userByID: &models.User{ID: 7}}
		tokens := &mockTokenIssuer{access: "new-access", refresh: "new-refresh", userID: 7}
		svc := NewAuthService(userRepo, tokens)

		resp, err := svc.Refresh(context.Background(), "old-refresh")

		assert.NoError(t, err)
		assert.Equal(t, "new-access", resp.AccessToken)
		assert.Equal(t, "new-refresh", resp.RefreshToken)
	})

	t.Run("invalid token", func(t *testing.T) {
		svc := NewAuthService(&mockUserRepository{}, &mockTokenIssuer{validateErr: errors.New("token is expired")})

		_, err := svc.Refresh(context.Background(), "stale")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid refresh token")
	})

	t.Run("deleted user", func(t *testing.T) {
		userRepo := &mockUserRepository{err: errors.New("user not found")}
		svc := NewAuthService(userRepo, &mockTokenIssuer{userID: 7})

		_, err := svc.Refresh(context.Background(), "old-refresh")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "user not found")
	})
}

func TestAuthService_UpdateReminders(t *testing.T) {
	userRepo := &mockUserRepository{}
	svc := NewAuthService(userRepo, &mockTokenIssuer{})

	err := svc.UpdateReminders(context.Background(), 1, true)

	assert.NoError(t, err)
	assert.True(t, userRepo.remindersCalled)
	assert.True(t, userRepo.remindersValue)
}
