package storage

import (
	"context"

	"github.com/iudanet/chatbix/internal/models"
)

// UserStorage defines interface for registered user persistence
type UserStorage interface {
	// CountUsersByName returns how many users have this username (0 or 1)
	CountUsersByName(ctx context.Context, username string) (int, error)

	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if username already exists
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves user by username
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// SetAdmin updates the admin flag of a user
	// Returns ErrUserNotFound if user doesn't exist
	SetAdmin(ctx context.Context, username string, admin bool) error
}
