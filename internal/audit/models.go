package audit

import (
	"time"

	"fundguard/pkg/domain"
)

// Action names are stable identifiers; downstream consumers key on them.
const (
	ActionCampaignCreated   = "campaign_created"
	ActionCampaignModerated = "campaign_moderated"
	ActionCampaignOverride  = "campaign_override"
	ActionModerationDryRun  = "moderation_dry_run"
)

// Event is emitted from domain logic to capture key moderation actions.
// Keep it transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp  time.Time         `json:"timestamp"`
	CampaignID domain.CampaignID `json:"campaignId"`
	ActorID    string            `json:"actorId"`
	Action     string            `json:"action"`
	Decision   string            `json:"decision,omitempty"`
	Overall    float64           `json:"overall,omitempty"`
	Reason     string            `json:"reason,omitempty"`
}
