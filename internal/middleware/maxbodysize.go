package middleware

import (
	"net/http"
	"strconv"
)

// NewMaxBodySizeHandler returns a middleware that limits incoming request
// body sizes to limit bytes. Requests with a declared Content-Length over
// the limit are rejected with 413 before reaching the next handler;
// chunked bodies are capped with http.MaxBytesReader, which makes the
// downstream read fail once the limit is crossed. Archive imports are the
// only large payloads, so the limit is sized for them.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write([]byte(`{"error":{"code":"payload_too_large","message":"request body exceeds ` + strconv.FormatInt(limit, 10) + ` bytes"}}`))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
