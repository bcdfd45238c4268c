package handler

import (
	"strings"

	"fundguard/internal/campaign"
	"fundguard/internal/moderation"
	dErrors "fundguard/pkg/domain-errors"
)

// CreateRequest is the HTTP request body for POST /campaigns.
type CreateRequest struct {
	Title           string              `json:"title"`
	Story           string              `json:"story"`
	NeedType        string              `json:"need_type"`
	GoalAmount      float64             `json:"goal_amount"`
	BudgetBreakdown []BudgetLineRequest `json:"budget_breakdown"`

	// Parsed values (populated by Validate)
	parsedNeedType moderation.NeedType
}

// BudgetLineRequest is one budget entry in the request body.
type BudgetLineRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CreateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	r.Story = strings.TrimSpace(r.Story)
	if r.Story == "" {
		return dErrors.New(dErrors.CodeValidation, "story is required")
	}

	needType, err := moderation.ParseNeedType(strings.TrimSpace(r.NeedType))
	if err != nil {
		return err
	}
	r.parsedNeedType = needType

	if r.GoalAmount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "goal_amount must be positive")
	}

	for i, line := range r.BudgetBreakdown {
		if strings.TrimSpace(line.Description) == "" {
			return dErrors.New(dErrors.CodeValidation, "budget line descriptions are required")
		}
		if line.Amount < 0 {
			return dErrors.New(dErrors.CodeValidation, "budget line amounts cannot be negative")
		}
		r.BudgetBreakdown[i].Description = strings.TrimSpace(line.Description)
		r.BudgetBreakdown[i].Category = strings.TrimSpace(line.Category)
	}

	return nil
}

// Campaign converts the validated request into a domain campaign. The owner
// is taken from the authenticated context by the handler.
func (r *CreateRequest) Campaign() *campaign.Campaign {
	lines := make([]moderation.BudgetLine, 0, len(r.BudgetBreakdown))
	for _, l := range r.BudgetBreakdown {
		lines = append(lines, moderation.BudgetLine{
			Description: l.Description,
			Amount:      l.Amount,
			Category:    l.Category,
		})
	}
	return &campaign.Campaign{
		Title:      r.Title,
		Story:      r.Story,
		NeedType:   r.parsedNeedType,
		GoalAmount: r.GoalAmount,
		Budget:     lines,
	}
}

// OverrideRequest is the HTTP request body for POST /campaigns/{id}/override.
type OverrideRequest struct {
	Decision string `json:"decision"`
	Note     string `json:"note"`

	parsedDecision moderation.Decision
}

// Validate validates and parses the request.
func (r *OverrideRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	switch moderation.Decision(strings.TrimSpace(r.Decision)) {
	case moderation.DecisionApproved:
		r.parsedDecision = moderation.DecisionApproved
	case moderation.DecisionReview:
		r.parsedDecision = moderation.DecisionReview
	case moderation.DecisionRejected:
		r.parsedDecision = moderation.DecisionRejected
	default:
		return dErrors.New(dErrors.CodeValidation, "decision must be approved, review, or rejected")
	}

	r.Note = strings.TrimSpace(r.Note)
	if r.Note == "" {
		return dErrors.New(dErrors.CodeValidation, "note is required")
	}

	return nil
}

// ParsedDecision returns the validated decision.
func (r *OverrideRequest) ParsedDecision() moderation.Decision {
	return r.parsedDecision
}
