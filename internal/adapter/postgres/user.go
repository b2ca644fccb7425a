package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/easygen/auth-service/internal/domain/models"
	"github.com/easygen/auth-service/internal/domain/types"
	"github.com/easygen/auth-service/pkg/metrics"
	pgclient "github.com/easygen/auth-service/pkg/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const serviceName = "auth-service"

type UserRepo struct {
	db Querier
}

func NewUserRepo(db Querier) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

// Create inserts a user row. It expects Username, Email and the password hash
// to be set; id and timestamps are assigned by the database and written back
// into u. A violated unique constraint on username or email is returned as
// types.ErrDuplicateUser.
func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	if u == nil {
		return errors.New("nil user")
	}

	const q = `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at;
	`

	start := time.Now()
	err := r.db.QueryRow(ctx, q, u.Username, u.Email, u.GetPasswordHash()).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	metrics.RecordDatabaseQuery(serviceName, "insert_user", err, time.Since(start))
	if err != nil {
		if pgclient.IsUniqueViolation(err) {
			return types.ErrDuplicateUser
		}
		return err
	}

	return nil
}

// GetByUsername fetches by username (unique). Returns (nil, nil) if absent.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}

	const q = `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1;
	`

	return r.getOne(ctx, "get_user_by_username", q, username)
}

// GetByEmail fetches by email (unique). Returns (nil, nil) if absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}

	const q = `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1;
	`

	return r.getOne(ctx, "get_user_by_email", q, email)
}

// GetByIdentifier fetches by username or email, whichever matches.
func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	if identifier == "" {
		return nil, errors.New("identifier is required")
	}

	const q = `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1 OR email = $1;
	`

	return r.getOne(ctx, "get_user_by_identifier", q, identifier)
}

// GetByID fetches by UUID id.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const q = `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1;
	`

	return r.getOne(ctx, "get_user_by_id", q, id)
}

func (r *UserRepo) getOne(ctx context.Context, operation, query string, arg any) (*models.User, error) {
	start := time.Now()
	u, err := r.scanUser(r.db.QueryRow(ctx, query, arg))
	metrics.RecordDatabaseQuery(serviceName, operation, err, time.Since(start))
	return u, err
}

func (r *UserRepo) scanUser(row pgx.Row) (*models.User, error) {
	var (
		u            models.User
		passwordHash string
		createdAt    time.Time
		updatedAt    time.Time
	)

	err := row.Scan(&u.ID, &u.Username, &u.Email, &passwordHash, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // not found
		}
		return nil, err
	}

	u.SetPasswordHash(passwordHash)
	u.CreatedAt = createdAt
	u.UpdatedAt = updatedAt
	return &u, nil
}
