package chat

import (
	"errors"
	"fmt"

	"github.com/iudanet/chatbix/internal/server/session"
)

// Errors returned by Service. Each maps to one transport status.
var (
	// ErrInvalidCredentials indicates an unknown username or a wrong password
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidAuthKey indicates a session exists but the key differs
	ErrInvalidAuthKey = errors.New("invalid auth key")

	// ErrNotLoggedIn indicates no session exists for the username
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrUsernameInUse indicates a registration conflict
	ErrUsernameInUse = errors.New("username already in use")

	// ErrForbidden indicates a valid session without the required privilege
	ErrForbidden = errors.New("forbidden")

	// ErrDatabaseBusy indicates the store is unavailable or exhausted
	ErrDatabaseBusy = errors.New("database busy")

	// ErrMalformedInput indicates an unparseable or invalid request field
	ErrMalformedInput = errors.New("malformed input")

	// ErrMessageNotFound indicates a delete for an unknown message id
	ErrMessageNotFound = errors.New("message not found")
)

// authError converts a failed session check into a service error.
func authError(res session.Result) error {
	switch res.Status {
	case session.AuthFailed:
		return ErrInvalidAuthKey
	case session.NotLoggedIn:
		return ErrNotLoggedIn
	default:
		return nil
	}
}

// malformed wraps a validation failure.
func malformed(err error) error {
	return fmt.Errorf("%w: %v", ErrMalformedInput, err)
}

// storeError wraps any store failure as ErrDatabaseBusy, keeping the cause.
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrDatabaseBusy, err)
}
