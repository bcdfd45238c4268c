// Package history persists moderation results so human reviewers and the
// statistics surface can inspect past decisions. The engine itself never
// writes here; the campaign workflow does.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fundguard/internal/moderation"
	id "fundguard/pkg/domain"
)

// Origin distinguishes engine decisions from human overrides.
type Origin string

const (
	OriginAutomated Origin = "automated"
	OriginManual    Origin = "manual"
)

// Record is one moderation event for a campaign. Records are append-only;
// a re-review or an override adds a new record rather than mutating an old
// one.
type Record struct {
	ID         uuid.UUID
	CampaignID id.CampaignID
	Origin     Origin
	// ReviewedBy is set for manual records only.
	ReviewedBy id.UserID
	Note       string
	Result     moderation.ScoreResult
	CreatedAt  time.Time
}

// Stats summarizes persisted results for the reporting surface.
type Stats struct {
	TotalEvaluations    int                         `json:"total_evaluations"`
	Decisions           map[moderation.Decision]int `json:"decisions"`
	AverageOverall      float64                     `json:"average_overall"`
	AverageProcessingMs float64                     `json:"average_processing_ms"`
}

// Store persists moderation records. Swap with concrete storage without
// touching the services.
type Store interface {
	Append(ctx context.Context, record Record) error
	ListByCampaign(ctx context.Context, campaignID id.CampaignID) ([]Record, error)
	Stats(ctx context.Context) (Stats, error)
}
