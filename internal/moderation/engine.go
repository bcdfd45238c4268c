package moderation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"fundguard/internal/moderation/metrics"
	dErrors "fundguard/pkg/domain-errors"
)

// Engine scores campaign submissions against the pattern libraries and
// produces an approve/review/reject decision. The goal is to keep the rules
// centralized and testable.
//
// The engine is stateless and synchronous: every invocation is independent,
// so concurrent evaluations (including re-reviews of the same campaign)
// need no coordination here. Callers that want at-most-one moderation in
// flight per campaign hold an advisory lock around the call.
type Engine struct {
	thresholds Thresholds
	scorers    []scorer
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

// NewEngine constructs an engine with the given scoring policy.
func NewEngine(thresholds Thresholds, logger *slog.Logger, m *metrics.Metrics) (*Engine, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		thresholds: thresholds,
		scorers: []scorer{
			luxuryScorer{},
			inappropriateScorer{},
			fraudScorer{largeGoalAmount: thresholds.LargeGoalAmount},
			needScorer{},
			trustScorer{},
		},
		logger:  logger,
		metrics: m,
		tracer:  otel.Tracer("fundguard/moderation"),
	}, nil
}

// Thresholds returns the scoring policy the engine was built with.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Evaluate scores a submission and returns the full moderation result.
//
// Errors: CodeValidation for submissions missing required fields,
// CodeTooLarge for oversized text. The engine never returns a ScoreResult
// for input it could not fully evaluate; the caller must treat an error as
// unmoderated, not as approved.
func (e *Engine) Evaluate(ctx context.Context, sub Submission) (*ScoreResult, error) {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "moderation.evaluate")
	defer span.End()

	if err := sub.Validate(); err != nil {
		e.metrics.IncrementEvaluateError("validation")
		return nil, err
	}

	text := ExtractText(sub)
	if len(text) > e.thresholds.MaxTextLength {
		// Fail closed: pathological input is a processing error, never a
		// passing score.
		e.metrics.IncrementEvaluateError("oversized_input")
		return nil, dErrors.New(dErrors.CodeTooLarge, "submission text exceeds the moderation size limit")
	}

	// Scorers are pure and share no state, so they run concurrently and the
	// fixed slice keeps category order deterministic.
	results := make([]CategoryScore, len(e.scorers))
	g, _ := errgroup.WithContext(ctx)
	for i, sc := range e.scorers {
		i, sc := i, sc
		g.Go(func() error {
			scorerStart := time.Now()
			results[i] = sc.score(text, &sub)
			e.metrics.ObserveScorerLatency(sc.category(), time.Since(scorerStart))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.metrics.IncrementEvaluateError("scorer")
		return nil, dErrors.Wrap(dErrors.CodeInternal, "scoring failed", err)
	}

	subscores := Scores{
		Luxury:         results[0].Score,
		Inappropriate:  results[1].Score,
		Fraud:          results[2].Score,
		NeedValidation: results[3].Score,
		Trust:          results[4].Score,
	}
	details := MatchDetails{
		LuxuryItems:          emptyIfNil(results[0].Matches),
		InappropriateContent: emptyIfNil(results[1].Matches),
		SuspiciousPatterns:   emptyIfNil(results[2].Matches),
	}

	agg := e.thresholds.aggregate(&sub, subscores, e.logger)
	result := assembleResult(subscores, agg, details, start)

	span.SetAttributes(
		attribute.String("moderation.decision", string(result.Decision)),
		attribute.Int("moderation.overall", result.Scores.Overall),
	)
	e.metrics.IncrementDecision(string(result.Decision), string(sub.NeedType))
	e.metrics.ObserveEvaluateLatency(time.Since(start))

	e.logger.InfoContext(ctx, "submission moderated",
		"need_type", sub.NeedType,
		"decision", result.Decision,
		"overall", result.Scores.Overall,
		"flags", result.Flags,
		"duration_ms", result.ProcessingTime,
	)

	return result, nil
}

// assembleResult packages sub-scores, the aggregate outcome, and evidence
// into the output contract. Pure packaging; processingTime is the wall-clock
// delta from start.
func assembleResult(subscores Scores, agg aggregateResult, details MatchDetails, start time.Time) *ScoreResult {
	subscores.Overall = agg.overall
	return &ScoreResult{
		Scores:          subscores,
		Decision:        agg.decision,
		Flags:           emptyIfNil(agg.flags),
		Recommendations: emptyIfNil(agg.recommendations),
		Details:         details,
		ProcessingTime:  time.Since(start).Milliseconds(),
		Timestamp:       time.Now(),
	}
}

// emptyIfNil keeps JSON output as [] rather than null for empty lists.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
