package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// UnmatchedRoute labels requests that no route handled.
const UnmatchedRoute = "unmatched"

// RequestObserver records completed HTTP requests.
type RequestObserver interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// NewMetricsMiddleware reports every request to obs, labelled by the chi
// route pattern (for example /tasks/{id}) rather than the raw path.
func NewMetricsMiddleware(obs RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			obs.ObserveHTTPRequest(r.Method, routePattern(r), status, time.Since(start))
		})
	}
}

// routePattern is only complete after the router has matched the request.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return UnmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return UnmatchedRoute
}
