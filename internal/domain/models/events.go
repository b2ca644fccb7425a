package models

import (
	"time"

	"github.com/google/uuid"
)

// Auth event kinds published to the auth.events exchange.
const (
	EventUserRegistered = "registered"
	EventUserLogin      = "login"
	EventUserLogout     = "logout"
)

// AuthEvent is the message body published for every auth lifecycle event.
type AuthEvent struct {
	Kind     string    `json:"kind"`
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	At       time.Time `json:"at"`
}
