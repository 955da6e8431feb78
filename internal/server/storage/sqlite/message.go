package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/chatbix/internal/models"
	"github.com/iudanet/chatbix/internal/server/selection"
	"github.com/iudanet/chatbix/internal/server/storage"
	"github.com/iudanet/chatbix/internal/tags"
)

const messageColumns = `id, author, timestamp, content, tags, color, channel`

// InsertMessage stores a new message and returns its id
func (s *Storage) InsertMessage(ctx context.Context, msg *models.Message) (int64, error) {
	query := `
		INSERT INTO chat_messages (author, timestamp, content, tags, color, channel)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		msg.Author,
		msg.Timestamp.Unix(),
		msg.Content,
		int32(msg.Tags),
		msg.Color,
		msg.Channel,
	)
	if err != nil {
		return 0, classify(fmt.Errorf("failed to insert message: %w", err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get message id: %w", err)
	}

	return id, nil
}

// SelectMessages executes a selection request
func (s *Storage) SelectMessages(ctx context.Context, req selection.Request) ([]*models.Message, error) {
	if req.Empty() {
		return []*models.Message{}, nil
	}

	query, args := buildSelectQuery(req)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to query messages: %w", err))
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanMessages(rows)
}

// DeleteMessage removes a message by id
func (s *Storage) DeleteMessage(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE id = ?`, id)
	if err != nil {
		return classify(fmt.Errorf("failed to delete message: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrMessageNotFound
	}

	return nil
}

// Search runs an FTS5 query; bm25 scores are negated so that higher is better
func (s *Storage) Search(ctx context.Context, query string, limit int) ([]*models.SearchHit, error) {
	match := ftsQuery(query)
	if match == "" || limit <= 0 {
		return []*models.SearchHit{}, nil
	}

	q := `
		SELECT m.id, m.author, m.content, m.timestamp, -bm25(chat_messages_fts) AS score
		FROM chat_messages_fts
		JOIN chat_messages m ON m.id = chat_messages_fts.rowid
		WHERE chat_messages_fts MATCH ?
		ORDER BY score DESC, m.id DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, q, match, limit)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to search messages: %w", err))
	}
	defer func() {
		_ = rows.Close()
	}()

	hits := make([]*models.SearchHit, 0)
	for rows.Next() {
		hit := &models.SearchHit{}
		var ts int64
		if err := rows.Scan(&hit.ID, &hit.Author, &hit.Content, &ts, &hit.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan search hit: %w", err)
		}
		hit.Timestamp = time.Unix(ts, 0).UTC()
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return hits, nil
}

// buildSelectQuery переводит selection.Request в SQL.
// Last(n) берет n самых новых и разворачивает их по возрастанию.
func buildSelectQuery(req selection.Request) (string, []any) {
	var conds []string
	var args []any

	var visibility []string
	if len(req.Channels) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(req.Channels)), ",")
		visibility = append(visibility, "channel IN ("+placeholders+")")
		for _, c := range req.Channels {
			args = append(args, c)
		}
	}
	if req.IncludeDefaultChannel {
		visibility = append(visibility, "channel IS NULL")
	}
	conds = append(conds, "("+strings.Join(visibility, " OR ")+")")

	iv := req.Interval
	switch iv.Mode {
	case selection.ModeAllFromTimestamp:
		conds = append(conds, "timestamp > ?")
		args = append(args, iv.From.Unix())
	case selection.ModeFromToTimestamp:
		conds = append(conds, "timestamp > ?", "timestamp < ?")
		args = append(args, iv.From.Unix(), iv.To.Unix())
	case selection.ModeAllFromID:
		conds = append(conds, "id > ?")
		args = append(args, iv.ID)
	}

	base := "SELECT " + messageColumns + " FROM chat_messages WHERE " + strings.Join(conds, " AND ")

	if iv.Mode == selection.ModeLast {
		args = append(args, iv.N)
		return "SELECT " + messageColumns + " FROM (" + base +
			" ORDER BY timestamp DESC, id DESC LIMIT ?) ORDER BY timestamp ASC, id ASC", args
	}

	return base + " ORDER BY timestamp ASC, id ASC", args
}

// scanMessages is a helper function to scan multiple messages from rows
func scanMessages(rows *sql.Rows) ([]*models.Message, error) {
	messages := make([]*models.Message, 0)

	for rows.Next() {
		msg := &models.Message{}
		var ts int64
		var tg int32
		var color, channel sql.NullString

		if err := rows.Scan(&msg.ID, &msg.Author, &ts, &msg.Content, &tg, &color, &channel); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		msg.Timestamp = time.Unix(ts, 0).UTC()
		msg.Tags = tags.Tags(tg)
		if color.Valid {
			msg.Color = &color.String
		}
		if channel.Valid {
			msg.Channel = &channel.String
		}

		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return messages, nil
}

// ftsQuery quotes every whitespace-separated term so user input is never
// interpreted as FTS5 syntax. Terms are implicitly ANDed.
func ftsQuery(query string) string {
	fields := strings.Fields(query)
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		quoted = append(quoted, `"`+strings.ReplaceAll(f, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}
