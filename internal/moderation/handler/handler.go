package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"fundguard/internal/moderation"
	"fundguard/internal/moderation/history"
	id "fundguard/pkg/domain"
	dErrors "fundguard/pkg/domain-errors"
	"fundguard/pkg/platform/httputil"
	"fundguard/pkg/requestcontext"
)

// Evaluator scores a submission without persisting anything. Reviewers use
// it to preview how an edit would change a campaign's outcome.
type Evaluator interface {
	Evaluate(ctx context.Context, sub moderation.Submission) (*moderation.ScoreResult, error)
}

// StatsReader reports aggregate moderation statistics.
type StatsReader interface {
	Stats(ctx context.Context) (history.Stats, error)
}

// Handler wires the moderation endpoints to the engine and history store.
type Handler struct {
	engine Evaluator
	stats  StatsReader
	logger *slog.Logger
}

// New constructs a moderation handler with its dependencies.
func New(engine Evaluator, stats StatsReader, logger *slog.Logger) *Handler {
	return &Handler{
		engine: engine,
		stats:  stats,
		logger: logger,
	}
}

// Register mounts moderation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/moderation/evaluate", h.HandleEvaluate)
	r.Get("/moderation/stats", h.HandleStats)
}

// HandleEvaluate handles POST /moderation/evaluate requests. It is a dry
// run: the result is returned but nothing is persisted.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.engine.Evaluate(ctx, req.Submission())
	if err != nil {
		h.logger.ErrorContext(ctx, "dry-run evaluation failed",
			"request_id", requestID,
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "dry-run evaluated",
		"request_id", requestID,
		"user_id", userID,
		"decision", result.Decision,
		"overall", result.Scores.Overall,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleStats handles GET /moderation/stats requests.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	stats, err := h.stats.Stats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "stats query failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "moderation stats", err))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromStats(stats))
}
