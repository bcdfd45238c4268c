// Package admin gates operational endpoints behind a deployment-issued key.
package admin

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	request "fundguard/pkg/platform/middleware/request"
)

// RequireAdminKey verifies the X-Admin-Key header against a bcrypt hash from
// configuration. Only the hash is ever held in memory or config; bcrypt
// comparison is constant-time with respect to the stored digest.
func RequireAdminKey(keyHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-Admin-Key")
			if key == "" || bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)) != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "admin key mismatch",
					"request_id", request.GetRequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"admin key required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
