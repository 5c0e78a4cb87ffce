package logging

import (
	"context"
	"log/slog"

	"mkvreorder/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldFile is the standardized key for the source file being processed.
	FieldFile = "file"
	// FieldCorrelationID is the standardized key for per-file correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldEventType classifies a log line for filtering (e.g. "mux_complete").
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step for the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldStatus is the per-file outcome (skipped, succeeded, failed, planned).
	FieldStatus = "status"
	// FieldReason explains a skip or failure.
	FieldReason = "reason"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if path, ok := services.FileFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldFile, path))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
