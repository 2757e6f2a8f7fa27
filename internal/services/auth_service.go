package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/hanyustudent/backend/internal/models"
)

const minPasswordLength = 8

// UserRepository defines methods for user data access
type UserRepository interface {
	// Create inserts a new user and sets its ID
	Create(ctx context.Context, user *models.User) error
	// GetByEmail retrieves a user by email, or (nil, nil) when none exists
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int) (*models.User, error)
	// UpdateReminders updates the reminder preference flag
	UpdateReminders(ctx context.Context, userID int, enabled bool) error
}

// TokenIssuer issues and validates JWT token pairs
type TokenIssuer interface {
	// GenerateTokens generates an access and refresh token pair for a user
	GenerateTokens(userID int) (string, string, error)
	// ValidateRefreshToken validates a refresh token and returns the user ID
	ValidateRefreshToken(tokenString string) (int, error)
}

// authService implements registration, login, and token refresh
type authService struct {
	userRepo UserRepository
	tokens   TokenIssuer
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokens TokenIssuer) *authService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// Register creates a new user and issues a token pair
func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(req.DisplayName),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(user.ID)
}

// Login verifies credentials and issues a token pair
func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueTokens(user.ID)
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	userID, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	// The user may have been deleted since the token was issued
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.issueTokens(userID)
}

// GetProfile retrieves the user's profile
func (s *authService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateReminders toggles daily reminder emails for the user
func (s *authService) UpdateReminders(ctx context.Context, userID int, enabled bool) error {
	return s.userRepo.UpdateReminders(ctx, userID, enabled)
}

func (s *authService) issueTokens(userID int) (*models.TokenResponse, error) {
	access, refresh, err := s.tokens.GenerateTokens(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &models.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
