package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is one registered principal. The password hash is unexported so it can
// never leak through JSON marshalling or logging of the struct.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	passwordHash string
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitzero"`
}

func (u *User) GetPasswordHash() string {
	return u.passwordHash
}

func (u *User) SetPasswordHash(hash string) {
	u.passwordHash = hash
}

// IsAnonymous reports whether u is the unauthenticated placeholder user.
func (u *User) IsAnonymous() bool {
	return u == anonymousUser
}

var anonymousUser = &User{}

// AnonymousUser returns the shared unauthenticated user instance.
func AnonymousUser() *User {
	return anonymousUser
}

type userCtxKey struct{}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// UserFromContext returns the user previously stored with WithUser, or nil.
func UserFromContext(ctx context.Context) *User {
	user, ok := ctx.Value(userCtxKey{}).(*User)
	if !ok {
		return nil
	}
	return user
}
