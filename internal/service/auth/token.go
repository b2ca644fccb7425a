package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/easygen/auth-service/internal/domain/models"
	"github.com/easygen/auth-service/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenService struct {
	secret []byte
	ttl    time.Duration
	log    logger.Logger
}

// NewTokenService builds the token issuer/verifier. A missing secret or a
// non-positive TTL is a configuration error and rejected at startup.
func NewTokenService(secret string, ttl time.Duration, log logger.Logger) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token TTL must be positive, got %v", ttl)
	}

	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		log:    log,
	}, nil
}

// Issue creates a signed HS256 token bound to the given user's identity,
// valid from now until now+TTL.
func (s *TokenService) Issue(user *models.User) (*models.IssuedToken, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}

	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.ttl)

	claims := jwt.MapClaims{
		"jti":      uuid.NewString(),
		"sub":      user.ID.String(),
		"username": user.Username,
		"email":    user.Email,
		"iat":      issuedAt.Unix(),
		"exp":      expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &models.IssuedToken{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate checks signature and expiry of the given token string and returns
// the decoded claims. Failures map onto exactly one of ErrTokenMalformed,
// ErrTokenExpired or ErrTokenInvalid.
func (s *TokenService) Validate(tokenString string) (*models.Claims, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenInvalid
		case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenInvalid
		}
	}
	if !parsedToken.Valid {
		return nil, ErrTokenInvalid
	}

	mc, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return claimsFromMap(mc)
}

func claimsFromMap(mc jwt.MapClaims) (*models.Claims, error) {
	subStr, _ := mc["sub"].(string)
	if subStr == "" {
		return nil, fmt.Errorf("%w: missing 'sub' claim", ErrTokenInvalid)
	}
	userID, err := uuid.Parse(subStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid 'sub' claim", ErrTokenInvalid)
	}

	jtiStr, _ := mc["jti"].(string)
	if jtiStr == "" {
		return nil, fmt.Errorf("%w: missing 'jti' claim", ErrTokenInvalid)
	}
	tokenID, err := uuid.Parse(jtiStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid 'jti' claim", ErrTokenInvalid)
	}

	expFloat, ok := mc["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing 'exp' claim", ErrTokenInvalid)
	}
	iatFloat, _ := mc["iat"].(float64)

	username, _ := mc["username"].(string)
	email, _ := mc["email"].(string)

	return &models.Claims{
		TokenID:   tokenID,
		UserID:    userID,
		Username:  username,
		Email:     email,
		IssuedAt:  time.Unix(int64(iatFloat), 0).UTC(),
		ExpiresAt: time.Unix(int64(expFloat), 0).UTC(),
	}, nil
}
