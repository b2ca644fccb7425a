package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/easygen/auth-service/internal/domain/models"
	"github.com/easygen/auth-service/internal/service/auth"
	"github.com/easygen/auth-service/pkg/logger"
)

type fakeAuthService struct {
	signUpFn func(ctx context.Context, username, email, password string) (*models.AuthResult, error)
	signInFn func(ctx context.Context, identifier, password string) (*models.AuthResult, error)

	logoutTokens []string
}

func (f *fakeAuthService) SignUp(ctx context.Context, username, email, password string) (*models.AuthResult, error) {
	return f.signUpFn(ctx, username, email, password)
}

func (f *fakeAuthService) SignIn(ctx context.Context, identifier, password string) (*models.AuthResult, error) {
	return f.signInFn(ctx, identifier, password)
}

func (f *fakeAuthService) Logout(_ context.Context, token string) error {
	f.logoutTokens = append(f.logoutTokens, token)
	return nil
}

func (f *fakeAuthService) Authenticate(_ context.Context, _ string) (*models.User, error) {
	return nil, auth.ErrTokenInvalid
}

func testAuthResult() *models.AuthResult {
	return &models.AuthResult{
		Token:     "signed.jwt.token",
		ExpiresAt: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		User: &models.User{
			ID:       uuid.New(),
			Username: "alice",
			Email:    "alice@example.com",
		},
	}
}

func newAuthHandler(svc AuthService) *Auth {
	return NewAuth(svc, logger.InitLogger("test", logger.LevelError))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, rec.Body.String())
	}
	return body
}

func TestSignUpHandler_Created(t *testing.T) {
	want := testAuthResult()
	h := newAuthHandler(&fakeAuthService{
		signUpFn: func(_ context.Context, username, email, password string) (*models.AuthResult, error) {
			if username != "alice" || email != "alice@example.com" || password != "Secr3t!23" {
				t.Fatalf("unexpected arguments: %s %s %s", username, email, password)
			}
			return want, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"Secr3t!23"}`))
	rec := httptest.NewRecorder()
	h.SignUp(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	body := decodeBody(t, rec)
	if body["token"] != want.Token {
		t.Fatalf("token = %v, want %s", body["token"], want.Token)
	}
	if body["expires_at"] != want.ExpiresAt.Format(time.RFC3339) {
		t.Fatalf("expires_at = %v", body["expires_at"])
	}
	user, ok := body["user"].(map[string]any)
	if !ok || user["username"] != "alice" {
		t.Fatalf("user payload missing: %v", body)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatal("password hash leaked in response")
	}
}

func TestSignUpHandler_ValidationError(t *testing.T) {
	h := newAuthHandler(&fakeAuthService{
		signUpFn: func(_ context.Context, _, _, _ string) (*models.AuthResult, error) {
			return nil, &auth.ValidationError{Violations: map[string]string{
				"email":    "must be a valid email address",
				"password": "must be at least 8 characters long; must contain at least one digit",
			}}
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"username":"alice","email":"bad","password":"short"}`))
	rec := httptest.NewRecorder()
	h.SignUp(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	body := decodeBody(t, rec)
	violations, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected violations object, got %v", body)
	}
	if _, ok := violations["email"]; !ok {
		t.Fatalf("missing email violation: %v", violations)
	}
	pw, _ := violations["password"].(string)
	if !strings.Contains(pw, "8 characters") || !strings.Contains(pw, "digit") {
		t.Fatalf("password violation incomplete: %q", pw)
	}
}

func TestSignUpHandler_Conflict(t *testing.T) {
	h := newAuthHandler(&fakeAuthService{
		signUpFn: func(_ context.Context, _, _, _ string) (*models.AuthResult, error) {
			return nil, auth.ErrAlreadyRegistered
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"Secr3t!23"}`))
	rec := httptest.NewRecorder()
	h.SignUp(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestSignUpHandler_BadJSON(t *testing.T) {
	h := newAuthHandler(&fakeAuthService{
		signUpFn: func(_ context.Context, _, _, _ string) (*models.AuthResult, error) {
			t.Fatal("service must not be called for malformed JSON")
			return nil, nil
		},
	})

	for _, payload := range []string{"", "{", `{"unknown":"field"}`, `{"username":1}`} {
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		h.SignUp(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("payload %q: status = %d, want %d", payload, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestSignInHandler_OK(t *testing.T) {
	want := testAuthResult()
	h := newAuthHandler(&fakeAuthService{
		signInFn: func(_ context.Context, identifier, password string) (*models.AuthResult, error) {
			if identifier != "alice@example.com" || password != "Secr3t!23" {
				t.Fatalf("unexpected arguments: %s %s", identifier, password)
			}
			return want, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/signin",
		strings.NewReader(`{"identifier":"alice@example.com","password":"Secr3t!23"}`))
	rec := httptest.NewRecorder()
	h.SignIn(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeBody(t, rec)
	if body["token"] != want.Token {
		t.Fatalf("token = %v", body["token"])
	}
}

func TestSignInHandler_InvalidCredentials(t *testing.T) {
	h := newAuthHandler(&fakeAuthService{
		signInFn: func(_ context.Context, _, _ string) (*models.AuthResult, error) {
			return nil, auth.ErrInvalidCredentials
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/signin",
		strings.NewReader(`{"identifier":"alice","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.SignIn(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	body := decodeBody(t, rec)
	msg, _ := body["error"].(string)
	if msg != auth.ErrInvalidCredentials.Error() {
		t.Fatalf("error message = %q", msg)
	}
}

func TestLogoutHandler_AlwaysOK(t *testing.T) {
	svc := &fakeAuthService{}
	h := newAuthHandler(svc)

	// With a bearer token.
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer some.jwt.token")
	rec := httptest.NewRecorder()
	h.Logout(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	// Without any token.
	req = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec = httptest.NewRecorder()
	h.Logout(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status without token = %d, want %d", rec.Code, http.StatusOK)
	}

	if len(svc.logoutTokens) != 2 || svc.logoutTokens[0] != "some.jwt.token" || svc.logoutTokens[1] != "" {
		t.Fatalf("unexpected logout tokens: %v", svc.logoutTokens)
	}
}

func TestProfileHandler(t *testing.T) {
	h := newAuthHandler(&fakeAuthService{})

	user := &models.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(models.WithUser(req.Context(), user))
	rec := httptest.NewRecorder()
	h.Profile(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeBody(t, rec)
	profile, ok := body["user"].(map[string]any)
	if !ok || profile["username"] != "alice" {
		t.Fatalf("unexpected profile payload: %v", body)
	}

	// Anonymous context gets 401.
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(models.WithUser(req.Context(), models.AnonymousUser()))
	rec = httptest.NewRecorder()
	h.Profile(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
