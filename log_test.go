package et

import (
	"context"
	"log/slog"
	"sync"
)

// recordHandler keeps every record it handles.
type recordHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func newRecordLogger() (*slog.Logger, *recordHandler) {
	handler := &recordHandler{}
	return slog.New(handler), handler
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *recordHandler) Handle(_ context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append(h.records, record.Clone())
	return nil
}

func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler {
	return h
}

func (h *recordHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *recordHandler) Records() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.records
}

func attrsOf(record slog.Record) map[string]string {
	attrs := map[string]string{}
	record.Attrs(func(attr slog.Attr) bool {
		attrs[attr.Key] = attr.Value.String()
		return true
	})

	return attrs
}
