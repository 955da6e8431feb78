package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/chatbix/pkg/api"
)

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger *slog.Logger
	chat   ChatService
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, chat ChatService) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		chat:   chat,
	}
}

// Register обрабатывает POST /api/register
// Регистрирует пользователя и сразу выдает auth_key
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	authKey, err := h.chat.Register(ctx, req.Username, req.Password)
	if err != nil {
		sendServiceError(h.logger, r, w, err)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully", slog.String("username", req.Username))

	sendJSON(h.logger, w, api.Envelope{Status: api.StatusSuccess, AuthKey: authKey}, http.StatusOK)
}

// Login обрабатывает POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	authKey, err := h.chat.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed", slog.String("username", req.Username))
		sendServiceError(h.logger, r, w, err)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully", slog.String("username", req.Username))

	sendJSON(h.logger, w, api.Envelope{Status: api.StatusSuccess, AuthKey: authKey}, http.StatusOK)
}

// Logout обрабатывает POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LogoutRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.chat.Logout(req.Username, req.AuthKey); err != nil {
		sendServiceError(h.logger, r, w, err)
		return
	}

	h.logger.InfoContext(ctx, "user logged out successfully", slog.String("username", req.Username))

	sendJSON(h.logger, w, api.Envelope{Status: api.StatusSuccess}, http.StatusOK)
}
