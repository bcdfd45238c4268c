// Package request assigns each incoming request a unique ID for log and
// audit correlation.
package request

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"fundguard/pkg/requestcontext"
)

// HeaderRequestID is echoed back so clients can correlate responses.
const HeaderRequestID = "X-Request-ID"

// ID middleware attaches a request ID to the context and response headers.
// An inbound X-Request-ID is honored so upstream proxies can trace calls.
func ID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(HeaderRequestID, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	return requestcontext.RequestID(ctx)
}
