package handler

import (
	"strings"

	"fundguard/internal/moderation"
	dErrors "fundguard/pkg/domain-errors"
)

// EvaluateRequest is the HTTP request body for POST /moderation/evaluate.
type EvaluateRequest struct {
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
func (r *EvaluateRequest) Validate() error {
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

	return nil
}

// Submission converts the validated request into the engine input. The
// engine revalidates budget lines itself.
func (r *EvaluateRequest) Submission() moderation.Submission {
	lines := make([]moderation.BudgetLine, 0, len(r.BudgetBreakdown))
	for _, l := range r.BudgetBreakdown {
		lines = append(lines, moderation.BudgetLine{
			Description: strings.TrimSpace(l.Description),
			Amount:      l.Amount,
			Category:    strings.TrimSpace(l.Category),
		})
	}
	return moderation.Submission{
		Title:           r.Title,
		Story:           r.Story,
		NeedType:        r.parsedNeedType,
		GoalAmount:      r.GoalAmount,
		BudgetBreakdown: lines,
	}
}
