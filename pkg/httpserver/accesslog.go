package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/knijam/jason/pkg/logger"
	"github.com/knijam/jason/pkg/requestid"
)

// AccessLog logs one record per request once the handler returns.
// Server errors are logged at error level, everything else at info.
// Mount it after requestid.Middleware so records carry the request ID.
func AccessLog(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("http"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			// the request context is left out so context extractors do not
			// repeat the request ID
			log.Log(context.Background(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
				logger.RequestID(requestid.FromContext(r.Context())),
			)
		})
	}
}
