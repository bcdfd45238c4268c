package campaign

import (
	"time"

	"fundguard/internal/moderation"
	id "fundguard/pkg/domain"
)

// Status tracks where a campaign sits in the moderation lifecycle.
type Status string

const (
	// StatusPendingModeration is the initial state: the draft is persisted
	// but the engine has not produced a decision (or failed to).
	StatusPendingModeration Status = "pending_moderation"
	StatusApproved          Status = "approved"
	StatusUnderReview       Status = "under_review"
	StatusRejected          Status = "rejected"
)

// StatusForDecision maps a moderation decision to the campaign status it
// implies.
func StatusForDecision(d moderation.Decision) Status {
	switch d {
	case moderation.DecisionApproved:
		return StatusApproved
	case moderation.DecisionReview:
		return StatusUnderReview
	case moderation.DecisionRejected:
		return StatusRejected
	default:
		return StatusPendingModeration
	}
}

// Campaign is a fundraising campaign record as the moderation service sees
// it. Donations, media, and realtime updates live elsewhere in the platform.
type Campaign struct {
	ID         id.CampaignID
	OwnerID    id.UserID
	Title      string
	Story      string
	NeedType   moderation.NeedType
	GoalAmount float64
	Budget     []moderation.BudgetLine
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Submission builds the engine input from the stored campaign fields.
func (c *Campaign) Submission() moderation.Submission {
	return moderation.Submission{
		Title:           c.Title,
		Story:           c.Story,
		NeedType:        c.NeedType,
		GoalAmount:      c.GoalAmount,
		BudgetBreakdown: c.Budget,
		CreatedBy:       c.OwnerID.String(),
	}
}
