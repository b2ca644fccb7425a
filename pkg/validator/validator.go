package validator

import (
	"regexp"
	"unicode"
)

// EmailRX is a sanity-check pattern for email addresses, taken from the
// HTML5 spec recommendation.
var EmailRX = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+\\/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// Validator accumulates named validation failures. Every violated rule is
// recorded, not just the first one.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid returns true if no checks failed.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records a failure for the given key. Multiple failures on the
// same key accumulate, so every violated rule is reported.
func (v *Validator) AddError(key, message string) {
	if existing, exists := v.Errors[key]; exists {
		v.Errors[key] = existing + "; " + message
		return
	}
	v.Errors[key] = message
}

// Check records message under key when ok is false.
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Matches returns true if value matches the given pattern.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// ContainsLetter returns true if s contains at least one unicode letter.
func ContainsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// ContainsDigit returns true if s contains at least one decimal digit.
func ContainsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// ContainsSymbol returns true if s contains at least one character that is
// neither a letter nor a digit (punctuation, symbols, spaces).
func ContainsSymbol(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
