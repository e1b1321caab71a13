package requestid

import (
	"context"
	"log/slog"
)

type contextKey struct{}

func WithContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKey{}, requestID)
}

// FromContext returns "" when ctx carries no request ID.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, _ := ctx.Value(contextKey{}).(string)
	return requestID
}

// LoggerExtractor adds the request ID of the record's context under
// "request_id". It matches logger.ContextExtractor.
func LoggerExtractor(ctx context.Context) (slog.Attr, bool) {
	if requestID := FromContext(ctx); requestID != "" {
		return slog.String("request_id", requestID), true
	}
	return slog.Attr{}, false
}
