package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/assureops/api/pkg/apierror"
	"github.com/assureops/api/pkg/logger"
)

// Recovery recovers from panics and returns a 500 error. Stack traces are
// logged, never sent to the client.
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic recovered",
						"panic", rec,
						"path", r.URL.Path,
						"method", r.Method,
						"request_id", GetRequestID(r.Context()),
						"stack", string(debug.Stack()),
					)
					apierror.InternalError(nil).WriteJSON(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
