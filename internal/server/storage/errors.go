package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrMessageNotFound indicates that message was not found
	ErrMessageNotFound = errors.New("message not found")

	// ErrBusy indicates that the database is unavailable or its pool is exhausted
	ErrBusy = errors.New("database busy")
)
