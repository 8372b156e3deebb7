package slogx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/checkout/pkg/idx"
)

// RequestIDHeader is read from inbound requests and echoed on responses.
const RequestIDHeader = "X-Request-ID"

// HTTPMiddleware logs requests and attaches a contextual logger into request context.
// Query strings are never logged: they carry session tokens.
func HTTPMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			reqID := r.Header.Get(RequestIDHeader)
			if reqID == "" {
				reqID = idx.New().String()
			}
			rw.Header().Set(RequestIDHeader, reqID)

			logger := base.With(
				"req_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			ctx := WithContext(r.Context(), logger)
			r = r.WithContext(ctx)

			next.ServeHTTP(rw, r)

			duration := time.Since(start).Milliseconds()
			logger.Info("http_request",
				"status", rw.status,
				"duration_ms", duration,
				"user_agent", r.UserAgent(),
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter

	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
