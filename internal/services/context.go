package services

import "context"

type contextKey string

const (
	fileKey      contextKey = "file"
	requestIDKey contextKey = "request_id"
)

// WithFile annotates context with the path of the file being processed.
func WithFile(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, fileKey, path)
}

// FileFromContext returns the file path if present.
func FileFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(fileKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
