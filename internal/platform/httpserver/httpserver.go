package httpserver

import (
	"net/http"
	"time"
)

// Timeouts sized for the moderation API: campaign submissions are one JSON
// body scored synchronously, so requests are short but not instant. The
// write timeout leaves headroom for a full engine evaluation plus store
// round trips; idle keeps reviewer dashboards on warm connections.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 2 * time.Minute
)

// New builds the API server around the assembled router.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
