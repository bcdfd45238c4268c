package campaign

import (
	"context"
	"time"

	id "fundguard/pkg/domain"
)

// Store persists campaigns. Implementations return sentinel.ErrNotFound for
// unknown IDs so services can translate to domain errors.
type Store interface {
	Create(ctx context.Context, c *Campaign) error
	FindByID(ctx context.Context, campaignID id.CampaignID) (*Campaign, error)
	UpdateStatus(ctx context.Context, campaignID id.CampaignID, status Status, updatedAt time.Time) error
}
