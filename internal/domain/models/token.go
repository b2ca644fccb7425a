package models

import (
	"time"

	"github.com/google/uuid"
)

// Claims is the decoded claim set of a verified access token.
type Claims struct {
	TokenID   uuid.UUID `json:"jti"`
	UserID    uuid.UUID `json:"sub"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// IssuedToken is a freshly signed access token with its expiry.
type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthResult is what a successful sign-up or sign-in returns.
type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}
