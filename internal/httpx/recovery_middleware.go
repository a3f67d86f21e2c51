package httpx

import (
	"net/http"
	"runtime/debug"

	"bookrec/internal/logger"
)

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := wrapWriter(w)
		defer func() {
			if err := recover(); err != nil {
				logger.For(r.Context()).
					WithField("stack", string(debug.Stack())).
					Errorf("panic recovered: %v", err)

				if !rw.wroteHeader() {
					JSONError(rw, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
				}
			}
		}()
		next.ServeHTTP(rw, r)
	})
}
