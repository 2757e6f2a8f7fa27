package models

import "time"

// User represents a registered user
type User struct {
	ID               int       `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	DisplayName      string    `json:"displayName"`
	RemindersEnabled bool      `json:"remindersEnabled"`
	CreatedAt        time.Time `json:"createdAt"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse represents an issued token pair
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UpdateRemindersRequest represents a reminder preference update
type UpdateRemindersRequest struct {
	RemindersEnabled bool `json:"remindersEnabled"`
}
