package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/chatbix/internal/models"
	"github.com/iudanet/chatbix/internal/server/storage"
)

// CountUsersByName returns 1 if a user with this username exists, 0 otherwise
func (s *Storage) CountUsersByName(ctx context.Context, username string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&count)
	if err != nil {
		return 0, classify(fmt.Errorf("failed to count users: %w", err))
	}
	return count, nil
}

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, admin, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.Username,
		user.PasswordHash,
		boolToInt(user.Admin),
		user.CreatedAt.Unix(),
	)

	if err != nil {
		// Проверяем на duplicate username
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.username") {
			return storage.ErrUserAlreadyExists
		}
		return classify(fmt.Errorf("failed to insert user: %w", err))
	}

	return nil
}

// GetUserByUsername retrieves user by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT username, password_hash, admin, created_at
		FROM users
		WHERE username = ?
	`

	user := &models.User{}
	var admin int
	var createdAt int64

	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.Username,
		&user.PasswordHash,
		&admin,
		&createdAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, classify(fmt.Errorf("failed to get user: %w", err))
	}

	user.Admin = intToBool(admin)
	user.CreatedAt = time.Unix(createdAt, 0).UTC()

	return user, nil
}

// SetAdmin updates the admin flag of a user
func (s *Storage) SetAdmin(ctx context.Context, username string, admin bool) error {
	result, err := s.db.ExecContext(ctx, `UPDATE users SET admin = ? WHERE username = ?`, boolToInt(admin), username)
	if err != nil {
		return classify(fmt.Errorf("failed to update admin flag: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

// Helper functions for bool/int conversion
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}
