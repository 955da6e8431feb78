package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/chatbix/internal/server/chat"
	"github.com/iudanet/chatbix/internal/server/selection"
	"github.com/iudanet/chatbix/pkg/api"
)

const contentTypeJSON = "application/json; charset=utf-8"

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	sendJSON(logger, w, api.ErrorResponse{Status: api.StatusError, Error: message}, statusCode)
}

// sendServiceError maps a chat error to its status code. Internal details
// of 5xx errors are logged, not returned.
func sendServiceError(logger *slog.Logger, r *http.Request, w http.ResponseWriter, err error) {
	status := statusFor(err)

	message := err.Error()
	switch {
	case status == http.StatusServiceUnavailable:
		message = chat.ErrDatabaseBusy.Error()
	case status >= http.StatusInternalServerError:
		message = "internal server error"
	}

	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	} else {
		logger.DebugContext(r.Context(), "request rejected", slog.String("path", r.URL.Path), slog.Any("error", err))
	}

	sendError(logger, w, message, status)
}

// statusFor returns the HTTP status for a service error
func statusFor(err error) int {
	switch {
	case errors.Is(err, chat.ErrInvalidCredentials),
		errors.Is(err, chat.ErrInvalidAuthKey),
		errors.Is(err, chat.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, chat.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, chat.ErrUsernameInUse):
		return http.StatusConflict
	case errors.Is(err, chat.ErrMalformedInput), errors.Is(err, selection.ErrMalformed):
		return http.StatusBadRequest
	case errors.Is(err, chat.ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, chat.ErrDatabaseBusy):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON body into dst. Unknown fields are ignored.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("no JSON body detected")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errors.New("request body too large")
		}
		return errors.New("invalid request body")
	}
	return nil
}

// NotFound отвечает 404 в JSON конверте для неизвестных /api маршрутов
func NotFound(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sendError(logger, w, "unknown endpoint "+r.URL.Path, http.StatusNotFound)
	}
}
