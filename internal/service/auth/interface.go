package auth

import (
	"context"

	"github.com/easygen/auth-service/internal/domain/models"
	"github.com/google/uuid"
)

// UserRepo is the narrow user-directory interface the workflow depends on.
// Lookups return (nil, nil) when no matching user exists.
type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type TokenProvider interface {
	Issue(user *models.User) (*models.IssuedToken, error)
	Validate(token string) (*models.Claims, error)
}

// EventPublisher emits auth lifecycle events. Implementations must not block
// the request path on broker failures.
type EventPublisher interface {
	PublishAuthEvent(ctx context.Context, event models.AuthEvent) error
}
