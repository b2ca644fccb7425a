package validator

import (
	"strings"
	"testing"
)

func TestValidator_Valid(t *testing.T) {
	v := New()
	if !v.Valid() {
		t.Fatal("fresh validator must be valid")
	}

	v.Check(true, "field", "should not be recorded")
	if !v.Valid() {
		t.Fatal("passing checks must not invalidate")
	}

	v.Check(false, "field", "failed")
	if v.Valid() {
		t.Fatal("failed check must invalidate")
	}
}

func TestValidator_AccumulatesPerKey(t *testing.T) {
	v := New()
	v.AddError("password", "must be at least 8 characters long")
	v.AddError("password", "must contain at least one digit")

	got := v.Errors["password"]
	if !strings.Contains(got, "at least 8 characters") || !strings.Contains(got, "one digit") {
		t.Fatalf("expected both messages recorded, got %q", got)
	}
}

func TestEmailRX(t *testing.T) {
	valid := []string{"alice@example.com", "a.b+c@sub.domain.org"}
	for _, e := range valid {
		if !Matches(e, EmailRX) {
			t.Fatalf("expected %q to be a valid email", e)
		}
	}

	invalid := []string{"", "not-an-email", "@example.com", "alice@", "alice @example.com"}
	for _, e := range invalid {
		if Matches(e, EmailRX) {
			t.Fatalf("expected %q to be rejected", e)
		}
	}
}

func TestContains(t *testing.T) {
	if !ContainsLetter("abc123") || ContainsLetter("123!") {
		t.Fatal("ContainsLetter misclassified input")
	}
	if !ContainsDigit("abc123") || ContainsDigit("abc!") {
		t.Fatal("ContainsDigit misclassified input")
	}
	if !ContainsSymbol("abc123!") || ContainsSymbol("abc123") {
		t.Fatal("ContainsSymbol misclassified input")
	}
}
