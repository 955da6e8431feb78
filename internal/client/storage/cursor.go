package storage

import "context"

//go:generate moq -out cursor_mock.go . CursorStorage

// CursorStorage remembers the id of the last message seen per server,
// so read and watch only fetch what is new.
type CursorStorage interface {
	// GetCursor returns the last seen message id, 0 if nothing was seen yet
	GetCursor(ctx context.Context, server string) (int64, error)

	// SaveCursor stores the last seen message id. Smaller ids never
	// move the cursor back.
	SaveCursor(ctx context.Context, server string, id int64) error

	// ResetCursor forgets the cursor of a server
	ResetCursor(ctx context.Context, server string) error
}
