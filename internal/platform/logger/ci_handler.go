package logger

import (
	"context"
	"io"
	"log/slog"

	"github.com/phrazzld/task-api/internal/ciutil"
)

// CIHandler is a slog.Handler that wraps a JSON handler and adds CI
// pipeline metadata (provider, run id, commit, ref) to every record.
type CIHandler struct {
	handler  slog.Handler
	metadata []slog.Attr
}

// NewCIHandler creates a CIHandler writing JSON to out.
func NewCIHandler(out io.Writer, opts *slog.HandlerOptions) *CIHandler {
	handlerOpts := &slog.HandlerOptions{}
	if opts != nil {
		// Clone the options to avoid modifying the caller's options
		copied := *opts
		handlerOpts = &copied
	}

	md := ciutil.Metadata()
	attrs := make([]slog.Attr, 0, len(md))
	for key, value := range md {
		attrs = append(attrs, slog.String(key, value))
	}

	return &CIHandler{
		handler:  slog.NewJSONHandler(out, handlerOpts),
		metadata: attrs,
	}
}

// Enabled implements the slog.Handler interface.
func (h *CIHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements the slog.Handler interface.
func (h *CIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CIHandler{handler: h.handler.WithAttrs(attrs), metadata: h.metadata}
}

// WithGroup implements the slog.Handler interface.
func (h *CIHandler) WithGroup(name string) slog.Handler {
	return &CIHandler{handler: h.handler.WithGroup(name), metadata: h.metadata}
}

// Handle implements the slog.Handler interface.
func (h *CIHandler) Handle(ctx context.Context, record slog.Record) error {
	enhanced := record.Clone()
	enhanced.AddAttrs(h.metadata...)
	return h.handler.Handle(ctx, enhanced)
}
