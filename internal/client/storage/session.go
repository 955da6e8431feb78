package storage

import (
	"context"
)

//go:generate moq -out session_mock.go . SessionStorage

// SessionStorage keeps the credentials of the current chat session on the client.
type SessionStorage interface {
	// SaveSession replaces the stored session
	SaveSession(ctx context.Context, session *Session) error

	// GetSession returns the stored session
	// Returns ErrSessionNotFound if nobody is logged in
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the stored session (logout)
	// Returns ErrSessionNotFound if nothing is stored
	DeleteSession(ctx context.Context) error
}

// Session is what the server handed out on login or register
type Session struct {
	Server   string `json:"server"`
	Username string `json:"username"`
	AuthKey  string `json:"auth_key"`
	// время логина, unix seconds
	LoggedInAt int64 `json:"logged_in_at"`
}
