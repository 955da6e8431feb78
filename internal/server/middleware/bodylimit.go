package middleware

import "net/http"

// DefaultMaxBodyBytes ограничивает размер тела запроса (1 MiB)
const DefaultMaxBodyBytes = 1 << 20

// BodyLimit отклоняет запросы с телом больше limit байт.
// Content-Length проверяется сразу, остальное ограничивает http.MaxBytesReader.
func BodyLimit(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeJSONError(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
