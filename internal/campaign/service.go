package campaign

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"fundguard/internal/audit"
	"fundguard/internal/campaign/lock"
	"fundguard/internal/campaign/metrics"
	"fundguard/internal/moderation"
	"fundguard/internal/moderation/history"
	id "fundguard/pkg/domain"
	dErrors "fundguard/pkg/domain-errors"
	"fundguard/pkg/platform/sentinel"
	"fundguard/pkg/requestcontext"
)

// moderationLockTTL bounds how long a crashed moderation run can block
// re-reviews of the same campaign.
const moderationLockTTL = 30 * time.Second

// Service orchestrates the campaign moderation workflow: persist the draft,
// run the engine, record the result, and move the campaign to the status the
// decision implies. It keeps orchestration out of handlers and domain logic
// thin.
type Service struct {
	store      Store
	historian  history.Store
	engine     *moderation.Engine
	locker     lock.Locker
	auditInbox chan<- audit.Event
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewService(
	store Store,
	historian history.Store,
	engine *moderation.Engine,
	locker lock.Locker,
	auditInbox chan<- audit.Event,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	return &Service{
		store:      store,
		historian:  historian,
		engine:     engine,
		locker:     locker,
		auditInbox: auditInbox,
		logger:     logger,
		metrics:    m,
	}
}

// Create persists a new campaign and immediately moderates it. The campaign
// is always persisted first: if the engine fails, the campaign stays in
// pending_moderation rather than being lost or silently approved.
func (s *Service) Create(ctx context.Context, c *Campaign) (*Campaign, *moderation.ScoreResult, error) {
	now := requestcontext.Now(ctx)
	c.ID = id.NewCampaignID()
	c.Status = StatusPendingModeration
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.store.Create(ctx, c); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, nil, dErrors.New(dErrors.CodeConflict, "campaign already exists")
		}
		return nil, nil, dErrors.Wrap(dErrors.CodeInternal, "persist campaign", err)
	}

	result, err := s.moderate(ctx, c)
	if err != nil {
		// The draft survives for a later re-evaluation.
		s.logger.ErrorContext(ctx, "initial moderation failed",
			"campaign_id", c.ID,
			"error", err,
		)
		s.metrics.IncrementCreated(string(StatusPendingModeration))
		return c, nil, err
	}

	s.metrics.IncrementCreated(string(c.Status))
	s.emit(ctx, audit.Event{
		CampaignID: c.ID,
		ActorID:    c.OwnerID.String(),
		Action:     audit.ActionCampaignCreated,
		Decision:   string(result.Decision),
		Overall:    float64(result.Scores.Overall),
	})
	return c, result, nil
}

// ReEvaluate reruns moderation on an existing campaign, for example after
// the owner edits the story in response to recommendations.
func (s *Service) ReEvaluate(ctx context.Context, campaignID id.CampaignID) (*Campaign, *moderation.ScoreResult, error) {
	c, err := s.Get(ctx, campaignID)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.moderate(ctx, c)
	if err != nil {
		return nil, nil, err
	}

	s.metrics.IncrementReevaluation()
	s.emit(ctx, audit.Event{
		CampaignID: c.ID,
		ActorID:    requestcontext.UserID(ctx).String(),
		Action:     audit.ActionCampaignModerated,
		Decision:   string(result.Decision),
		Overall:    float64(result.Scores.Overall),
	})
	return c, result, nil
}

// Override lets a reviewer replace the automated decision. The override is
// recorded as a manual history entry so the automated record stays intact.
func (s *Service) Override(ctx context.Context, campaignID id.CampaignID, decision moderation.Decision, note string) (*Campaign, error) {
	if note == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "an override requires a note")
	}
	switch decision {
	case moderation.DecisionApproved, moderation.DecisionReview, moderation.DecisionRejected:
	default:
		return nil, dErrors.New(dErrors.CodeValidation, "unsupported override decision")
	}

	c, err := s.Get(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	reviewerID := requestcontext.UserID(ctx)
	status := StatusForDecision(decision)
	if err := s.store.UpdateStatus(ctx, c.ID, status, now); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "update campaign status", err)
	}
	c.Status = status
	c.UpdatedAt = now

	record := history.Record{
		ID:         uuid.New(),
		CampaignID: c.ID,
		Origin:     history.OriginManual,
		ReviewedBy: reviewerID,
		Note:       note,
		Result:     moderation.ScoreResult{Decision: decision, Timestamp: now},
		CreatedAt:  now,
	}
	if err := s.historian.Append(ctx, record); err != nil {
		// The status change already took effect; losing the history row is
		// worth a loud log, not a rollback.
		s.logger.ErrorContext(ctx, "override history append failed",
			"campaign_id", c.ID,
			"error", err,
		)
	}

	s.metrics.IncrementOverride(string(decision))
	s.emit(ctx, audit.Event{
		CampaignID: c.ID,
		ActorID:    reviewerID.String(),
		Action:     audit.ActionCampaignOverride,
		Decision:   string(decision),
		Reason:     note,
	})
	return c, nil
}

// Get fetches a campaign by ID.
func (s *Service) Get(ctx context.Context, campaignID id.CampaignID) (*Campaign, error) {
	c, err := s.store.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "campaign not found")
		}
		return nil, dErrors.Wrap(dErrors.CodeInternal, "find campaign", err)
	}
	return c, nil
}

// History lists the moderation records for a campaign, newest first.
func (s *Service) History(ctx context.Context, campaignID id.CampaignID) ([]history.Record, error) {
	if _, err := s.Get(ctx, campaignID); err != nil {
		return nil, err
	}
	records, err := s.historian.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list moderation history", err)
	}
	return records, nil
}

// moderate runs the engine under the per-campaign lock and applies the
// decision to the campaign.
func (s *Service) moderate(ctx context.Context, c *Campaign) (*moderation.ScoreResult, error) {
	release, err := s.locker.Acquire(ctx, c.ID.String(), moderationLockTTL)
	if err != nil {
		if errors.Is(err, sentinel.ErrLocked) {
			s.metrics.IncrementLockContention()
			return nil, dErrors.New(dErrors.CodeConflict, "moderation already in progress for this campaign")
		}
		return nil, dErrors.Wrap(dErrors.CodeUnavailable, "acquire moderation lock", err)
	}
	defer release()

	result, err := s.engine.Evaluate(ctx, c.Submission())
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	status := StatusForDecision(result.Decision)
	if err := s.store.UpdateStatus(ctx, c.ID, status, now); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "update campaign status", err)
	}
	c.Status = status
	c.UpdatedAt = now

	record := history.Record{
		ID:         uuid.New(),
		CampaignID: c.ID,
		Origin:     history.OriginAutomated,
		Result:     *result,
		CreatedAt:  now,
	}
	if err := s.historian.Append(ctx, record); err != nil {
		s.logger.ErrorContext(ctx, "moderation history append failed",
			"campaign_id", c.ID,
			"error", err,
		)
	}
	return result, nil
}

// emit hands the event to the audit worker without blocking the request. A
// full inbox drops the event; moderation results are already persisted in
// history, so the audit stream is best effort.
func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditInbox == nil {
		return
	}
	event.Timestamp = requestcontext.Now(ctx)
	select {
	case s.auditInbox <- event:
	default:
		s.logger.WarnContext(ctx, "audit inbox full, event dropped",
			"action", event.Action,
			"campaign_id", event.CampaignID,
		)
	}
}
