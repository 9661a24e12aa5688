package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/aymanhs/souq/pkg/logger"
	"github.com/aymanhs/souq/pkg/response"
)

// Recovery catches any panic in downstream handlers, logs the stack trace,
// and returns a 500 to the client. Mount it outside Logger so it wraps all
// other middleware and handlers.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()
				logger.Error("panic recovered",
					"error", fmt.Sprintf("%v", err),
					"stack", string(stack),
					"method", r.Method,
					"path", r.URL.Path,
				)
				response.Internal(w, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
