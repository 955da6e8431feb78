package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/chatbix/internal/models"
	"github.com/iudanet/chatbix/internal/server/storage"
)

// CountUsersByName returns 1 if a user with this username exists, 0 otherwise
func (s *Storage) CountUsersByName(ctx context.Context, username string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE username = $1`, username).Scan(&count)
	if err != nil {
		return 0, classify(fmt.Errorf("failed to count users: %w", err))
	}
	return count, nil
}

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (username, password_hash, admin, created_at) VALUES ($1, $2, $3, $4)`,
		user.Username, user.PasswordHash, user.Admin, user.CreatedAt.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrUserAlreadyExists
		}
		return classify(fmt.Errorf("failed to insert user: %w", err))
	}
	return nil
}

// GetUserByUsername retrieves user by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	var createdAt int64

	err := s.pool.QueryRow(ctx,
		`SELECT username, password_hash, admin, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&user.Username, &user.PasswordHash, &user.Admin, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, classify(fmt.Errorf("failed to get user: %w", err))
	}

	user.CreatedAt = time.Unix(createdAt, 0).UTC()
	return user, nil
}

// SetAdmin updates the admin flag of a user
func (s *Storage) SetAdmin(ctx context.Context, username string, admin bool) error {
	tag, err := s.pool.Exec(ctx, `UPDATE users SET admin = $1 WHERE username = $2`, admin, username)
	if err != nil {
		return classify(fmt.Errorf("failed to update admin flag: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrUserNotFound
	}
	return nil
}
