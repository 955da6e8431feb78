package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/chatbix/internal/models"
	"github.com/iudanet/chatbix/internal/server/selection"
	"github.com/iudanet/chatbix/internal/server/storage"
	"github.com/iudanet/chatbix/internal/tags"
)

const messageColumns = `id, author, timestamp, content, tags, color, channel`

// InsertMessage stores a new message and returns its id
func (s *Storage) InsertMessage(ctx context.Context, msg *models.Message) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO chat_messages (author, timestamp, content, tags, color, channel)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		msg.Author, msg.Timestamp.Unix(), msg.Content, int32(msg.Tags), msg.Color, msg.Channel,
	).Scan(&id)
	if err != nil {
		return 0, classify(fmt.Errorf("failed to insert message: %w", err))
	}
	return id, nil
}

// SelectMessages executes a selection request
func (s *Storage) SelectMessages(ctx context.Context, req selection.Request) ([]*models.Message, error) {
	if req.Empty() {
		return []*models.Message{}, nil
	}

	query, args := buildSelectQuery(req)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to query messages: %w", err))
	}
	defer rows.Close()

	messages := make([]*models.Message, 0)
	for rows.Next() {
		msg := &models.Message{}
		var ts int64
		var tg int32
		if err := rows.Scan(&msg.ID, &msg.Author, &ts, &msg.Content, &tg, &msg.Color, &msg.Channel); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Timestamp = time.Unix(ts, 0).UTC()
		msg.Tags = tags.Tags(tg)
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("rows iteration error: %w", err))
	}

	return messages, nil
}

// DeleteMessage removes a message by id
func (s *Storage) DeleteMessage(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM chat_messages WHERE id = $1`, id)
	if err != nil {
		return classify(fmt.Errorf("failed to delete message: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrMessageNotFound
	}
	return nil
}

// Search ranks messages with ts_rank over the 'simple' text search config
func (s *Storage) Search(ctx context.Context, query string, limit int) ([]*models.SearchHit, error) {
	if strings.TrimSpace(query) == "" || limit <= 0 {
		return []*models.SearchHit{}, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, author, content, timestamp,
		       ts_rank(to_tsvector('simple', content), q)::float8 AS score
		FROM chat_messages, plainto_tsquery('simple', $1) q
		WHERE to_tsvector('simple', content) @@ q
		ORDER BY score DESC, id DESC
		LIMIT $2`, query, limit)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to search messages: %w", err))
	}

	hits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.SearchHit, error) {
		hit := &models.SearchHit{}
		var ts int64
		if err := row.Scan(&hit.ID, &hit.Author, &hit.Content, &ts, &hit.Rank); err != nil {
			return nil, err
		}
		hit.Timestamp = time.Unix(ts, 0).UTC()
		return hit, nil
	})
	if err != nil {
		return nil, classify(fmt.Errorf("failed to scan search hits: %w", err))
	}

	return hits, nil
}

// buildSelectQuery mirrors the sqlite adapter with numbered placeholders
func buildSelectQuery(req selection.Request) (string, []any) {
	var conds []string
	var args []any

	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	var visibility []string
	if len(req.Channels) > 0 {
		visibility = append(visibility, "channel = ANY("+next(req.Channels)+")")
	}
	if req.IncludeDefaultChannel {
		visibility = append(visibility, "channel IS NULL")
	}
	conds = append(conds, "("+strings.Join(visibility, " OR ")+")")

	iv := req.Interval
	switch iv.Mode {
	case selection.ModeAllFromTimestamp:
		conds = append(conds, "timestamp > "+next(iv.From.Unix()))
	case selection.ModeFromToTimestamp:
		conds = append(conds, "timestamp > "+next(iv.From.Unix()), "timestamp < "+next(iv.To.Unix()))
	case selection.ModeAllFromID:
		conds = append(conds, "id > "+next(iv.ID))
	}

	base := "SELECT " + messageColumns + " FROM chat_messages WHERE " + strings.Join(conds, " AND ")

	if iv.Mode == selection.ModeLast {
		limit := next(iv.N)
		return "SELECT " + messageColumns + " FROM (" + base +
			" ORDER BY timestamp DESC, id DESC LIMIT " + limit + ") AS recent ORDER BY timestamp ASC, id ASC", args
	}

	return base + " ORDER BY timestamp ASC, id ASC", args
}
