package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/easygen/auth-service/internal/adapter/http/handler/dto"
	"github.com/easygen/auth-service/internal/domain/models"
	"github.com/easygen/auth-service/internal/service/auth"
	"github.com/easygen/auth-service/pkg/logger"
	wrap "github.com/easygen/auth-service/pkg/logger/wrapper"
)

type AuthService interface {
	SignUp(ctx context.Context, username, email, password string) (*models.AuthResult, error)
	SignIn(ctx context.Context, identifier, password string) (*models.AuthResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type Auth struct {
	auth AuthService
	l    logger.Logger
}

func NewAuth(service AuthService, l logger.Logger) *Auth {
	return &Auth{
		auth: service,
		l:    l,
	}
}

// SignUp godoc
// @Summary      Register a new user
// @Description  Creates a user account and returns an access token bound to the new identity
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      dto.SignUpRequest  true  "User to be created"
// @Success      201      {object}  dto.TokenResponse
// @Failure      409      {object}  map[string]string
// @Failure      422      {object}  map[string]map[string]string
// @Router       /auth/signup [post]
func (h *Auth) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "signup_user")

	req := &dto.SignUpRequest{}
	if err := readJSON(w, r, req); err != nil {
		h.l.Error(ctx, "failed to read request JSON data", err)
		badRequestResponse(w, err.Error())
		return
	}

	result, err := h.auth.SignUp(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		var validationErr *auth.ValidationError
		if errors.As(err, &validationErr) {
			failedValidationResponse(w, validationErr.Violations)
			return
		}

		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to sign up a new user", err)
		errorResponse(w, GetCode(err), GetMessage(err))
		return
	}

	response := envelope{
		"token":      result.Token,
		"expires_at": result.ExpiresAt.Format(time.RFC3339),
		"user":       result.User,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// SignIn godoc
// @Summary      Sign in
// @Description  Validates username-or-email plus password and returns an access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      dto.SignInRequest  true  "Credentials"
// @Success      200      {object}  dto.TokenResponse
// @Failure      401      {object}  map[string]string
// @Router       /auth/signin [post]
func (h *Auth) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "signin_user")

	req := &dto.SignInRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	result, err := h.auth.SignIn(ctx, req.Identifier, req.Password)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to sign in user", err)
		errorResponse(w, GetCode(err), GetMessage(err))
		return
	}

	response := envelope{
		"token":      result.Token,
		"expires_at": result.ExpiresAt.Format(time.RFC3339),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Logout godoc
// @Summary      Log out
// @Description  Best-effort logout. Tokens are stateless, so the event is logged but the token stays valid until expiry; clients discard it.
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "logout_user")

	token := ""
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = parts[1]
		}
	}

	// Always succeeds from the caller's point of view.
	if err := h.auth.Logout(ctx, token); err != nil {
		h.l.Warn(ctx, "logout reported an error", "reason", err.Error())
	}

	response := envelope{"message": "logout successful"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(ctx, "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Profile godoc
// @Summary      Current user
// @Description  Returns the profile of the authenticated user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *Auth) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_profile")

	user := models.UserFromContext(ctx)
	if user == nil || user.IsAnonymous() {
		h.l.Warn(ctx, "profile requested without authenticated user")
		errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	response := envelope{"user": user}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(ctx, "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
