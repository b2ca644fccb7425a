package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidCredentials covers both an unknown identifier and a wrong
	// password, so callers cannot tell whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrAlreadyRegistered = errors.New("user already registered")
	ErrTokenGenerateFail = errors.New("failed to generate token")
	ErrUnexpected        = errors.New("unexpected error")

	// Token verification failure kinds. Callers must be able to
	// distinguish them: expired means re-login, invalid means tampering.
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("expired token")
)

// ValidationError carries every violated input rule, keyed by field.
type ValidationError struct {
	Violations map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Violations))
	for k := range e.Violations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Violations[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
