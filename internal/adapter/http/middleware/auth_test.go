package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/easygen/auth-service/internal/domain/models"
	"github.com/easygen/auth-service/internal/service/auth"
	"github.com/easygen/auth-service/pkg/logger"
)

type fakeAuthenticator struct {
	user *models.User
	err  error

	gotToken string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (*models.User, error) {
	f.gotToken = token
	return f.user, f.err
}

func newTestMiddleware(f *fakeAuthenticator) *Middleware {
	return NewMiddleware(f, logger.InitLogger("test", logger.LevelError))
}

func userCapture(dst **models.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*dst = models.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_ValidToken(t *testing.T) {
	want := &models.User{ID: uuid.New(), Username: "alice"}
	f := &fakeAuthenticator{user: want}

	var got *models.User
	handler := newTestMiddleware(f).Auth(userCapture(&got))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer some.jwt.token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if f.gotToken != "some.jwt.token" {
		t.Fatalf("token passed to authenticator = %q", f.gotToken)
	}
	if got == nil || got.ID != want.ID {
		t.Fatalf("context user = %+v, want %+v", got, want)
	}
}

func TestAuth_NoHeaderIsAnonymous(t *testing.T) {
	f := &fakeAuthenticator{}

	var got *models.User
	handler := newTestMiddleware(f).Auth(userCapture(&got))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got == nil || !got.IsAnonymous() {
		t.Fatalf("expected anonymous user in context, got %+v", got)
	}
	if f.gotToken != "" {
		t.Fatal("authenticator must not be called without a header")
	}
}

func TestAuth_RejectedToken(t *testing.T) {
	f := &fakeAuthenticator{err: auth.ErrTokenExpired}

	handler := newTestMiddleware(f).Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run for a rejected token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer expired.jwt.token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	f := &fakeAuthenticator{}
	handler := newTestMiddleware(f).Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run for a malformed header")
	}))

	for _, header := range []string{"Bearer", "Bearer ", "Basic dXNlcjpwYXNz", "token"} {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want %d", header, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestRequireAuthenticated(t *testing.T) {
	m := newTestMiddleware(&fakeAuthenticator{})

	called := false
	handler := m.RequireAuthenticated(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	// Anonymous request is rejected.
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(models.WithUser(req.Context(), models.AnonymousUser()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized || called {
		t.Fatalf("anonymous request: status = %d, called = %t", rec.Code, called)
	}

	// Authenticated request goes through.
	user := &models.User{ID: uuid.New(), Username: "alice"}
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(models.WithUser(req.Context(), user))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !called {
		t.Fatalf("authenticated request: status = %d, called = %t", rec.Code, called)
	}
}
