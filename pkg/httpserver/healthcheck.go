package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/knijam/jason/pkg/logger"
)

// Check probes one dependency.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// HealthCheckHandler serves liveness and readiness probes.
//
// Without checks it answers 200 "ALIVE". With checks it runs each one
// against the request context and answers 200 "READY", or 503 "NOT_READY"
// at the first failure.
func HealthCheckHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		ctx := r.Context()
		for _, c := range checks {
			if err := c.Fn(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component(c.Name),
					logger.Error(err),
				)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
