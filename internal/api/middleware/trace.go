package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that adds a trace ID to the request
// context, stores a request-scoped logger carrying it, and logs the start and
// completion of each request.
//
// It should be applied early in the chain so that every later handler sees
// the trace ID and the request logger.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
				log = log.With(slog.String("request_id", reqID))
			}
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(shared.TraceIDHeader, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			log.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Int64("latency_ms", time.Since(start).Milliseconds()))
		})
	}
}
