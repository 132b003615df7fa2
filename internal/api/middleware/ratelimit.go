package middleware

import (
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"golang.org/x/time/rate"
)

// NewRateLimitMiddleware limits the whole server to rps requests per second
// with the given burst. A non-positive rps disables limiting.
func NewRateLimitMiddleware(rps float64, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests, "Too many requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
