package postgres

import (
	"context"
	"errors"
	"fmt"

	"receipt-ledger/internal/core/domain"
	"receipt-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserStore implements ports.UserStore on PostgreSQL. Lookups return
// (nil, nil) when no row matches; the caller decides whether that is an
// error.
type UserStore struct {
	pool Pool
}

func NewUserStore(pool Pool) *UserStore {
	return &UserStore{pool: pool}
}

var _ ports.UserStore = (*UserStore)(nil)

func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, user.PasswordHash, string(user.Role), user.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getOne(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE username = $1`, username)
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.getOne(ctx, `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE id = $1`, id)
}

func (s *UserStore) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := s.pool.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}
