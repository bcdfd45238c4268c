package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fundguard/internal/campaign"
	"fundguard/internal/moderation"
	"fundguard/internal/moderation/history"
	id "fundguard/pkg/domain"
	dErrors "fundguard/pkg/domain-errors"
	"fundguard/pkg/platform/httputil"
	"fundguard/pkg/requestcontext"
)

// Service defines the interface for campaign operations.
type Service interface {
	Create(ctx context.Context, c *campaign.Campaign) (*campaign.Campaign, *moderation.ScoreResult, error)
	ReEvaluate(ctx context.Context, campaignID id.CampaignID) (*campaign.Campaign, *moderation.ScoreResult, error)
	Override(ctx context.Context, campaignID id.CampaignID, decision moderation.Decision, note string) (*campaign.Campaign, error)
	Get(ctx context.Context, campaignID id.CampaignID) (*campaign.Campaign, error)
	History(ctx context.Context, campaignID id.CampaignID) ([]history.Record, error)
}

// Handler wires campaign endpoints to the campaign service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a campaign handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts campaign endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/campaigns", h.HandleCreate)
	r.Get("/campaigns/{campaignID}", h.HandleGet)
	r.Post("/campaigns/{campaignID}/reevaluate", h.HandleReEvaluate)
	r.Post("/campaigns/{campaignID}/override", h.HandleOverride)
	r.Get("/campaigns/{campaignID}/moderation", h.HandleHistory)
}

// HandleCreate handles POST /campaigns requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[CreateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c := req.Campaign()
	c.OwnerID = userID

	created, result, err := h.service.Create(ctx, c)
	if err != nil {
		// A persisted draft with a failed moderation run still surfaces as
		// an error; the owner retries via reevaluate.
		h.logger.ErrorContext(ctx, "campaign creation failed",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "campaign created",
		"request_id", requestID,
		"user_id", userID,
		"campaign_id", created.ID,
		"status", created.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusCreated, &ModeratedResponse{
		Campaign:   FromCampaign(created),
		Moderation: result,
	})
}

// HandleGet handles GET /campaigns/{campaignID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	campaignID, ok := h.campaignID(w, r)
	if !ok {
		return
	}

	c, err := h.service.Get(ctx, campaignID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromCampaign(c))
}

// HandleReEvaluate handles POST /campaigns/{campaignID}/reevaluate requests.
// Only the campaign owner or a reviewer may trigger a re-review.
func (h *Handler) HandleReEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	campaignID, ok := h.campaignID(w, r)
	if !ok {
		return
	}

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	if requestcontext.Role(ctx) != requestcontext.RoleReviewer {
		c, err := h.service.Get(ctx, campaignID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		if c.OwnerID != userID {
			httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "only the owner or a reviewer can re-evaluate"))
			return
		}
	}

	c, result, err := h.service.ReEvaluate(ctx, campaignID)
	if err != nil {
		h.logger.ErrorContext(ctx, "re-evaluation failed",
			"request_id", requestID,
			"campaign_id", campaignID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "campaign re-evaluated",
		"request_id", requestID,
		"campaign_id", campaignID,
		"decision", result.Decision,
	)

	httputil.WriteJSON(w, http.StatusOK, &ModeratedResponse{
		Campaign:   FromCampaign(c),
		Moderation: result,
	})
}

// HandleOverride handles POST /campaigns/{campaignID}/override requests.
// Reviewer role required.
func (h *Handler) HandleOverride(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	campaignID, ok := h.campaignID(w, r)
	if !ok {
		return
	}

	if requestcontext.Role(ctx) != requestcontext.RoleReviewer {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "reviewer role required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[OverrideRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := h.service.Override(ctx, campaignID, req.ParsedDecision(), req.Note)
	if err != nil {
		h.logger.ErrorContext(ctx, "override failed",
			"request_id", requestID,
			"campaign_id", campaignID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "campaign decision overridden",
		"request_id", requestID,
		"campaign_id", campaignID,
		"decision", req.Decision,
	)

	httputil.WriteJSON(w, http.StatusOK, FromCampaign(c))
}

// HandleHistory handles GET /campaigns/{campaignID}/moderation requests.
// Only the campaign owner or a reviewer can see the score breakdowns.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	campaignID, ok := h.campaignID(w, r)
	if !ok {
		return
	}

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	if requestcontext.Role(ctx) != requestcontext.RoleReviewer {
		c, err := h.service.Get(ctx, campaignID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		if c.OwnerID != userID {
			httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "only the owner or a reviewer can view moderation history"))
			return
		}
	}

	records, err := h.service.History(ctx, campaignID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromHistory(campaignID.String(), records))
}

// campaignID parses the URL parameter and writes the error response itself
// on failure.
func (h *Handler) campaignID(w http.ResponseWriter, r *http.Request) (id.CampaignID, bool) {
	raw := chi.URLParam(r, "campaignID")
	campaignID, err := id.ParseCampaignID(raw)
	if err != nil {
		httputil.WriteError(w, err)
		return id.CampaignID{}, false
	}
	return campaignID, true
}
