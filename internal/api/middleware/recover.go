package middleware

import (
	"fmt"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
)

// PanicMessage is returned to clients when a handler panics.
const PanicMessage = "An unexpected error occurred"

// Recoverer turns a handler panic into a 500 with the usual error body and
// logs it through the request logger. http.ErrAbortHandler is re-raised so
// the server can abort the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, PanicMessage,
				fmt.Errorf("panic: %v", rec))
		}()
		next.ServeHTTP(w, r)
	})
}
