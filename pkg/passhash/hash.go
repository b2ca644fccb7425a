package passhash

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost aims for ~100-250 ms per hash on current production hardware.
const DefaultCost = 12

// ErrMalformedHash signals that a stored hash could not be parsed. This is a
// data-corruption condition, distinct from a wrong-password mismatch.
var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword creates a salted bcrypt hash of the given plaintext password.
// The random salt is embedded in the encoded output, so hashing the same
// password twice yields different strings. A cost of 0 selects DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword compares a plaintext password with a stored bcrypt hash.
// Returns (false, nil) on a plain mismatch. A non-nil error means the stored
// hash itself is unusable.
func VerifyPassword(password, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}
