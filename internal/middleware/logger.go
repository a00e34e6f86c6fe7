package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chiMid "github.com/go-chi/chi/v5/middleware"
)

// Logger emits one structured log record per request.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := NewResponseRecorder(w)
			next.ServeHTTP(rw, r)
			// the Locale middleware runs further down the chain and announces its pick here
			lang := rw.Header().Get("Content-Language")

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rw.Status()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
				slog.Int("bytes", rw.BytesWritten()),
				slog.String("remote_ip", r.RemoteAddr),
			}
			if rid := chiMid.GetReqID(r.Context()); rid != "" {
				attrs = append(attrs, slog.String("request_id", rid))
			}
			if lang != "" {
				attrs = append(attrs, slog.String("locale", lang))
			}
			level := slog.LevelInfo
			if rw.Status() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "request", attrs...)
		})
	}
}
