package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/chatbix/internal/models"
	"github.com/iudanet/chatbix/internal/server/chat"
	"github.com/iudanet/chatbix/internal/server/selection"
	"github.com/iudanet/chatbix/pkg/api"
)

//go:generate moq -out chat_service_mock.go . ChatService

// ChatService is the part of chat.Service used by the handlers
type ChatService interface {
	Submit(ctx context.Context, msg *models.NewMessage) (int64, error)
	DeleteMessage(ctx context.Context, username, authKey string, id int64) error
	Messages(ctx context.Context, req selection.Request) ([]*models.Message, error)
	Heartbeat(ctx context.Context, req chat.HeartbeatRequest) (*chat.HeartbeatResult, error)
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(username, authKey string) error
	Search(ctx context.Context, query string, limit int) ([]*models.SearchHit, error)
	Ping(ctx context.Context) error
}

var _ ChatService = (*chat.Service)(nil)

// MessageHandler обрабатывает запросы сообщений и присутствия
type MessageHandler struct {
	logger *slog.Logger
	chat   ChatService
}

// NewMessageHandler создает новый handler для сообщений
func NewMessageHandler(logger *slog.Logger, chat ChatService) *MessageHandler {
	return &MessageHandler{
		logger: logger,
		chat:   chat,
	}
}

// GetMessages обрабатывает GET /api/get_messages
func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	req, err := selection.ParseQuery(r.URL.Query(), selection.QueryOptions{AllowRange: true})
	if err != nil {
		sendServiceError(h.logger, r, w, err)
		return
	}

	msgs, err := h.chat.Messages(r.Context(), req)
	if err != nil {
		sendServiceError(h.logger, r, w, err)
		return
	}

	sendJSON(h.logger, w, api.Envelope{
		Status:   api.StatusSuccess,
		Messages: fromMessages(msgs),
	}, http.StatusOK)
}

// Heartbeat обрабатывает GET /api/heartbeat
// Обновляет присутствие и возвращает сообщения вместе со списком подключенных
func (h *MessageHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sel, err := selection.ParseQuery(q, selection.QueryOptions{})
	if err != nil {
		sendServiceError(h.logger, r, w, err)
		return
	}

	res, err := h.chat.Heartbeat(r.Context(), chat.HeartbeatRequest{
		Username:  q.Get("username"),
		AuthKey:   q.Get("auth_key"),
		Active:    parseActive(q.Get("active"), q.Has("active")),
		Selection: sel,
	})
	if err != nil {
		sendServiceError(h.logger, r, w, err)
		return
	}

	sendJSON(h.logger, w, api.Envelope{
		Status:         api.StatusSuccess,
		Messages:       fromMessages(res.Messages),
		UsersConnected: fromConnectedUsers(res.Users),
	}, http.StatusOK)
}

// NewMessage обрабатывает POST /api/new_message
func (h *MessageHandler) NewMessage(w http.ResponseWriter, r *http.Request) {
	var req api.NewMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.chat.Submit(r.Context(), newMessageFromRequest(&req))
	if err != nil {
		sendServiceError(h.logger, r, w, err)
		return
	}

	sendJSON(h.logger, w, api.Envelope{Status: api.StatusSuccess, ID: id}, http.StatusOK)
}

// DeleteMessage обрабатывает POST /api/admin/delete_message
// Только для администраторов, поэтому auth_key обязателен
func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	var req api.DeleteMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.chat.DeleteMessage(r.Context(), req.Username, req.AuthKey, req.MessageID); err != nil {
		sendServiceError(h.logger, r, w, err)
		return
	}

	sendJSON(h.logger, w, api.Envelope{Status: api.StatusSuccess}, http.StatusOK)
}

// Search обрабатывает GET /api/search?q=...&limit=N
func (h *MessageHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			sendServiceError(h.logger, r, w, fmt.Errorf("%w: invalid limit %q", chat.ErrMalformedInput, v))
			return
		}
		limit = n
	}

	hits, err := h.chat.Search(r.Context(), q.Get("q"), limit)
	if err != nil {
		sendServiceError(h.logger, r, w, err)
		return
	}

	sendJSON(h.logger, w, api.Envelope{
		Status:  api.StatusSuccess,
		Results: fromSearchHits(hits),
	}, http.StatusOK)
}

// parseActive: отсутствие параметра означает true, false только для false/FALSE/0
func parseActive(v string, present bool) bool {
	if !present {
		return true
	}
	return v != "false" && v != "FALSE" && v != "0"
}
