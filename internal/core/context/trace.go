// Package context carries request-scoped values consumed by the logger.
package context

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// WithRequestID adds a request identifier to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// GetRequestID returns the request identifier or empty string.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// NewRequestID generates a fresh request identifier.
func NewRequestID() string {
	return uuid.New().String()
}
