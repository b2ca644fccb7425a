package auth

import (
	"github.com/easygen/auth-service/pkg/validator"
)

// Password policy: at least 8 characters with one letter, one digit and one
// symbol. Bcrypt ignores input beyond 72 bytes, so longer passwords are
// rejected outright.
const (
	minPasswordLen = 8
	maxPasswordLen = 72
	maxUsernameLen = 100
	maxEmailLen    = 254
)

// ValidateSignUp records every violated sign-up rule on v, not just the first.
func ValidateSignUp(v *validator.Validator, username, email, password string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(len(username) <= maxUsernameLen, "username", "must not be more than 100 bytes long")

	v.Check(email != "", "email", "must be provided")
	if email != "" {
		v.Check(validator.Matches(email, validator.EmailRX), "email", "must be a valid email address")
	}
	v.Check(len(email) <= maxEmailLen, "email", "must not be more than 254 bytes long")

	v.Check(password != "", "password", "must be provided")
	v.Check(len(password) >= minPasswordLen, "password", "must be at least 8 characters long")
	v.Check(len(password) <= maxPasswordLen, "password", "must not be more than 72 bytes long")
	if password != "" {
		v.Check(validator.ContainsLetter(password), "password", "must contain at least one letter")
		v.Check(validator.ContainsDigit(password), "password", "must contain at least one digit")
		v.Check(validator.ContainsSymbol(password), "password", "must contain at least one symbol")
	}
}
