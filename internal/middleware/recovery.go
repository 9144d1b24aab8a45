// File: internal/middleware/recovery.go
package middleware

import (
	"net/http"

	"github.com/carelink/carelink-server/internal/services"
)

// NewRecoverPanic converts handler panics into a generic 500 so one bad
// request cannot take the process down.
func NewRecoverPanic(logger services.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered", "path", r.URL.Path, "panic", err)
					w.Header().Set("Connection", "close")
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
