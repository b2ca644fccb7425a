package auth

import (
	"context"
	"errors"
	"time"

	"github.com/easygen/auth-service/internal/domain/models"
	"github.com/easygen/auth-service/internal/domain/types"
	"github.com/easygen/auth-service/pkg/logger"
	wrap "github.com/easygen/auth-service/pkg/logger/wrapper"
	"github.com/easygen/auth-service/pkg/metrics"
	"github.com/easygen/auth-service/pkg/passhash"
	"github.com/easygen/auth-service/pkg/validator"
)

const serviceName = "auth-service"

// AuthService orchestrates sign-up, sign-in and logout over the user
// directory, the credential hasher and the token issuer. It holds no state of
// its own beyond injected collaborators.
type AuthService struct {
	userRepo UserRepo
	tokens   TokenProvider
	events   EventPublisher
	hashCost int
	log      logger.Logger
}

// NewAuthService wires the workflow. events may be nil to disable publishing.
func NewAuthService(userRepo UserRepo, tokens TokenProvider, events EventPublisher, hashCost int, log logger.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		events:   events,
		hashCost: hashCost,
		log:      log,
	}
}

// SignUp registers a new user and returns a token bound to the new identity.
func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (result *models.AuthResult, err error) {
	ctx = wrap.WithAction(ctx, "user_signup")
	defer func() { metrics.RecordSignup(serviceName, err) }()

	// Validation runs before any workflow logic and reports every
	// violated rule at once.
	v := validator.New()
	ValidateSignUp(v, username, email, password)
	if !v.Valid() {
		return nil, &ValidationError{Violations: v.Errors}
	}

	// Pre-check both unique keys. The database constraint remains the
	// authoritative tie-break for concurrent duplicates.
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	existing, err = s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	hash, err := passhash.HashPassword(password, s.hashCost)
	if err != nil {
		s.log.Error(ctx, "failed to hash password", err)
		return nil, ErrUnexpected
	}

	user := &models.User{
		Username: username,
		Email:    email,
	}
	user.SetPasswordHash(hash)

	if err = s.userRepo.Create(ctx, user); err != nil {
		// A concurrent sign-up with the same username/email lost the
		// race to us, or we lost it to them: first writer wins.
		if errors.Is(err, types.ErrDuplicateUser) {
			return nil, ErrAlreadyRegistered
		}
		s.log.Error(wrap.ErrorCtx(ctx, err), "failed to save user", err)
		return nil, wrap.Error(ctx, err)
	}

	ctx = wrap.WithUserID(ctx, user.ID.String())

	issued, err := s.tokens.Issue(user)
	if err != nil {
		s.log.Error(ctx, "failed to issue token for new user", err)
		return nil, ErrTokenGenerateFail
	}
	metrics.TokensIssuedTotal.WithLabelValues(serviceName).Inc()

	s.publishEvent(ctx, models.EventUserRegistered, user)
	s.log.Info(ctx, "user registered", "username", user.Username)

	return &models.AuthResult{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		User:      user,
	}, nil
}

// SignIn validates credentials for a username or email identifier and returns
// a fresh token. An unknown identifier and a wrong password produce the same
// error, so callers cannot probe which accounts exist.
func (s *AuthService) SignIn(ctx context.Context, identifier, password string) (result *models.AuthResult, err error) {
	ctx = wrap.WithAction(ctx, "user_signin")
	defer func() { metrics.RecordLogin(serviceName, err) }()

	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := passhash.VerifyPassword(password, user.GetPasswordHash())
	if err != nil {
		// Stored hash is unreadable. This is data corruption, not a
		// wrong password, and must not be reported as one.
		s.log.Error(wrap.WithUserID(ctx, user.ID.String()), "stored password hash is malformed", err)
		return nil, ErrUnexpected
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	ctx = wrap.WithUserID(ctx, user.ID.String())

	issued, err := s.tokens.Issue(user)
	if err != nil {
		s.log.Error(ctx, "failed to issue token", err)
		return nil, ErrTokenGenerateFail
	}
	metrics.TokensIssuedTotal.WithLabelValues(serviceName).Inc()

	s.publishEvent(ctx, models.EventUserLogin, user)
	s.log.Info(ctx, "user signed in", "username", user.Username)

	return &models.AuthResult{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		User:      user,
	}, nil
}

// Logout is best-effort: tokens are stateless, so there is nothing to revoke.
// The token is validated only to attribute the event, and the operation always
// succeeds from the caller's point of view.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	ctx = wrap.WithAction(ctx, "user_logout")

	if token == "" {
		s.log.Debug(ctx, "logout without token")
		return nil
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		s.log.Debug(ctx, "logout with unusable token", "reason", err.Error())
		return nil
	}

	ctx = wrap.WithUserID(ctx, claims.UserID.String())
	s.log.Info(ctx, "user logged out", "username", claims.Username)

	if s.events != nil {
		event := models.AuthEvent{
			Kind:     models.EventUserLogout,
			UserID:   claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
			At:       time.Now().UTC(),
		}
		if err := s.events.PublishAuthEvent(ctx, event); err != nil {
			s.log.Warn(ctx, "failed to publish logout event", "reason", err.Error())
		}
	}

	return nil
}

// Authenticate validates an access token and loads the corresponding user.
// Used by the HTTP auth middleware and the profile endpoint.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		metrics.TokenValidationsTotal.WithLabelValues(serviceName, "rejected").Inc()
		if errors.Is(err, ErrTokenInvalid) {
			// A bad signature on a well-formed token means tampering.
			s.log.Warn(wrap.WithAction(ctx, "token_tampered"), "rejected token with invalid signature")
		}
		return nil, err
	}
	metrics.TokenValidationsTotal.WithLabelValues(serviceName, "accepted").Inc()

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	if user == nil {
		return nil, types.ErrUserNotFound
	}

	return user, nil
}

func (s *AuthService) publishEvent(ctx context.Context, kind string, user *models.User) {
	if s.events == nil {
		return
	}

	event := models.AuthEvent{
		Kind:     kind,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		At:       time.Now().UTC(),
	}
	if err := s.events.PublishAuthEvent(ctx, event); err != nil {
		s.log.Warn(ctx, "failed to publish auth event", "kind", kind, "reason", err.Error())
	}
}
