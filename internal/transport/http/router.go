// Package httptransport assembles the HTTP surface: middleware chain,
// authenticated API routes, and the operational endpoints.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	campaignhandler "fundguard/internal/campaign/handler"
	moderationhandler "fundguard/internal/moderation/handler"
	"fundguard/pkg/platform/middleware/admin"
	"fundguard/pkg/platform/middleware/auth"
	"fundguard/pkg/platform/middleware/metadata"
	"fundguard/pkg/platform/middleware/request"
	"fundguard/pkg/platform/middleware/requesttime"
	"fundguard/pkg/requestcontext"
)

// Deps carries everything the router needs. Handlers own their routes; the
// router owns the middleware chain and the operational surface.
type Deps struct {
	Campaigns    *campaignhandler.Handler
	Moderation   *moderationhandler.Handler
	Tokens       auth.TokenValidator
	AdminKeyHash string
	Logger       *slog.Logger
	Health       func() error
}

// NewRouter wires all endpoints.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(request.ID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)

	// Operational endpoints skip auth.
	r.Get("/healthz", handleHealth(d.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(api chi.Router) {
		api.Use(auth.RequireAuth(d.Tokens, d.Logger))
		d.Campaigns.Register(api)

		api.Group(func(reviewer chi.Router) {
			reviewer.Use(auth.RequireRole(requestcontext.RoleReviewer, d.Logger))
			d.Moderation.Register(reviewer)
		})
	})

	// Break-glass surface for operators without a platform account.
	if d.AdminKeyHash != "" {
		r.Group(func(ops chi.Router) {
			ops.Use(admin.RequireAdminKey(d.AdminKeyHash, d.Logger))
			ops.Get("/admin/moderation/stats", d.Moderation.HandleStats)
		})
	}

	return r
}

func handleHealth(check func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if check != nil {
			if err := check(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unhealthy"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
