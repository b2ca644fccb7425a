package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/easygen/auth-service/internal/domain/models"
	wrap "github.com/easygen/auth-service/pkg/logger/wrapper"
)

// Auth validates the bearer token, loads the user and injects it into the
// request context. Requests without an Authorization header proceed as the
// anonymous user; protected endpoints reject those downstream.
func (h *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		header := r.Header.Get("Authorization")
		if header == "" {
			r = r.WithContext(models.WithUser(ctx, models.AnonymousUser()))
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(header)
		if err != nil {
			errorResponse(w, http.StatusUnauthorized, err.Error())
			return
		}

		user, err := h.auth.Authenticate(ctx, token)
		if err != nil || user == nil {
			h.log.Debug(wrap.ErrorCtx(ctx, err), "failed to authenticate request")
			errorResponse(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx = wrap.WithUserID(ctx, user.ID.String())
		next.ServeHTTP(w, r.WithContext(models.WithUser(ctx, user)))
	})
}

// RequireAuthenticated wraps a handler and rejects anonymous requests.
func (h *Middleware) RequireAuthenticated(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := models.UserFromContext(r.Context())
		if user == nil || user.IsAnonymous() {
			errorResponse(w, http.StatusUnauthorized, "authorization required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// --- header parser ---
func extractBearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("invalid Authorization header format")
	}
	return parts[1], nil
}
