package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/personalab/chat-backend/internal/entity"
)

// UserRepository defines the interface for durable user records
type UserRepository interface {
	EnsureUser(ctx context.Context, email string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
}

var _ UserRepository = &UserPostgres{}

// UserPostgres implements UserRepository using PostgreSQL
type UserPostgres struct {
	db *pgxpool.Pool
}

func NewUserPostgres(db *pgxpool.Pool) *UserPostgres {
	return &UserPostgres{db: db}
}

// EnsureUser inserts the user record if it does not exist yet. The
// upsert is keyed by email and idempotent, so it is safe to run on
// every feedback submission.
func (r *UserPostgres) EnsureUser(ctx context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email", entity.ErrMissingField)
	}

	var user entity.User
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (email)
		VALUES ($1)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING email, created_at`,
		email,
	).Scan(&user.Email, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	return &user, nil
}

func (r *UserPostgres) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.QueryRow(ctx, `
		SELECT email, created_at
		FROM users
		WHERE email = $1`,
		strings.ToLower(email),
	).Scan(&user.Email, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}
