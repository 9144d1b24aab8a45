// File: internal/middleware/identity.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/carelink/carelink-server/internal/auth"
)

// NewIdentityMiddleware reads the caller's identity from the Authorization
// header. The portal's clients send the raw user ID there; newer clients
// send the JWT issued at signin, in which case the token's subject is used
// instead. Presence is the only check on a raw ID — this is NOT a real
// authentication boundary, and the convention is kept for client
// compatibility.
func NewIdentityMiddleware(jwtSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := r.Header.Get("Authorization")
			if identity == "" {
				identity = r.Header.Get("Authorization-Id")
			}
			if identity == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}

			if sub, err := auth.ParseToken(identity, jwtSecret); err == nil {
				identity = sub
			}

			ctx := context.WithValue(r.Context(), UserIDKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the caller identity set by the identity middleware.
func UserID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(UserIDKey).(string)
	return id, ok && id != ""
}
