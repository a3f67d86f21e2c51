package httpx

import (
	"context"
	"net/http"

	"bookrec/internal/logger"
)

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	return logger.IDFrom(r.Context())
}

// ContextWithRequestID returns a new context carrying the request ID, shared
// with the logger so every log line of the request is tagged.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return logger.ContextWithID(ctx, requestID)
}
