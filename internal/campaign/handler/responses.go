package handler

import (
	"time"

	"fundguard/internal/campaign"
	"fundguard/internal/moderation"
	"fundguard/internal/moderation/history"
)

// CampaignResponse is the campaign portion of HTTP responses.
type CampaignResponse struct {
	ID         string                  `json:"id"`
	OwnerID    string                  `json:"owner_id"`
	Title      string                  `json:"title"`
	Story      string                  `json:"story"`
	NeedType   string                  `json:"need_type"`
	GoalAmount float64                 `json:"goal_amount"`
	Budget     []moderation.BudgetLine `json:"budget_breakdown"`
	Status     string                  `json:"status"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// FromCampaign converts a domain campaign to an HTTP response.
func FromCampaign(c *campaign.Campaign) *CampaignResponse {
	budget := c.Budget
	if budget == nil {
		budget = []moderation.BudgetLine{}
	}
	return &CampaignResponse{
		ID:         c.ID.String(),
		OwnerID:    c.OwnerID.String(),
		Title:      c.Title,
		Story:      c.Story,
		NeedType:   string(c.NeedType),
		GoalAmount: c.GoalAmount,
		Budget:     budget,
		Status:     string(c.Status),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ModeratedResponse is the HTTP response for POST /campaigns and
// POST /campaigns/{id}/reevaluate.
type ModeratedResponse struct {
	Campaign   *CampaignResponse       `json:"campaign"`
	Moderation *moderation.ScoreResult `json:"moderation,omitempty"`
}

// HistoryEntryResponse is one moderation record in the history listing.
type HistoryEntryResponse struct {
	ID         string                 `json:"id"`
	Origin     string                 `json:"origin"`
	ReviewedBy string                 `json:"reviewed_by,omitempty"`
	Note       string                 `json:"note,omitempty"`
	Result     moderation.ScoreResult `json:"result"`
	CreatedAt  time.Time              `json:"created_at"`
}

// HistoryResponse is the HTTP response for GET /campaigns/{id}/moderation.
type HistoryResponse struct {
	CampaignID string                 `json:"campaign_id"`
	Records    []HistoryEntryResponse `json:"records"`
}

// FromHistory converts moderation records to an HTTP response.
func FromHistory(campaignID string, records []history.Record) *HistoryResponse {
	entries := make([]HistoryEntryResponse, 0, len(records))
	for _, r := range records {
		entry := HistoryEntryResponse{
			ID:        r.ID.String(),
			Origin:    string(r.Origin),
			Note:      r.Note,
			Result:    r.Result,
			CreatedAt: r.CreatedAt,
		}
		if !r.ReviewedBy.IsNil() {
			entry.ReviewedBy = r.ReviewedBy.String()
		}
		entries = append(entries, entry)
	}
	return &HistoryResponse{CampaignID: campaignID, Records: entries}
}
