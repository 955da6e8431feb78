package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError пишет ошибку в том же конверте, что и handlers
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "error",
		"error":  message,
	})
}
