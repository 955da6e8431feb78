package storage

import (
	"context"

	"github.com/iudanet/chatbix/internal/models"
	"github.com/iudanet/chatbix/internal/server/selection"
)

// MessageStorage defines interface for chat message persistence
type MessageStorage interface {
	// InsertMessage stores a new message and returns its assigned id.
	// Ids are strictly increasing.
	InsertMessage(ctx context.Context, msg *models.Message) (int64, error)

	// SelectMessages executes a selection request.
	// Results are ordered by timestamp then id, ascending (see selection.Apply).
	SelectMessages(ctx context.Context, req selection.Request) ([]*models.Message, error)

	// DeleteMessage removes a message by id
	// Returns ErrMessageNotFound if message doesn't exist
	DeleteMessage(ctx context.Context, id int64) error

	// Search runs a full-text query over message content
	// Results are ordered by relevance, most relevant first, at most limit hits
	Search(ctx context.Context, query string, limit int) ([]*models.SearchHit, error)

	// Ping checks that the database is reachable
	Ping(ctx context.Context) error
}
