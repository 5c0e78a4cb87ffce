package logging

import (
	"context"
	"errors"
	"log/slog"
)

// teeHandler sends each record to every child handler that accepts its level.
type teeHandler struct {
	handlers []slog.Handler
}

// TeeHandler creates a handler that duplicates log output to multiple
// handlers. Nil handlers are dropped; a single survivor is returned as is.
func TeeHandler(handlers ...slog.Handler) slog.Handler {
	kept := make([]slog.Handler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			kept = append(kept, h)
		}
	}
	switch len(kept) {
	case 0:
		return NoopHandler{}
	case 1:
		return kept[0]
	default:
		return &teeHandler{handlers: kept}
	}
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.each(func(child slog.Handler) slog.Handler { return child.WithAttrs(attrs) })
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return h.each(func(child slog.Handler) slog.Handler { return child.WithGroup(name) })
}

func (h *teeHandler) each(fn func(slog.Handler) slog.Handler) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, child := range h.handlers {
		next[i] = fn(child)
	}
	return &teeHandler{handlers: next}
}
