package moderation

import (
	"fmt"
	"time"

	dErrors "fundguard/pkg/domain-errors"
)

// NeedType declares what category of need a campaign claims to address.
// Invariant: the value must be one of the supported need types.
//
// Construct via ParseNeedType at trust boundaries; direct casting bypasses
// validation.
type NeedType string

const (
	NeedMedical   NeedType = "medical"
	NeedEducation NeedType = "education"
	NeedEmergency NeedType = "emergency"
	NeedCommunity NeedType = "community"
	NeedPersonal  NeedType = "personal"
	NeedOther     NeedType = "other"
)

// validNeedTypes is the single source of truth for supported need types.
var validNeedTypes = map[NeedType]bool{
	NeedMedical:   true,
	NeedEducation: true,
	NeedEmergency: true,
	NeedCommunity: true,
	NeedPersonal:  true,
	NeedOther:     true,
}

// ParseNeedType constructs a NeedType from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseNeedType(s string) (NeedType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "need type cannot be empty")
	}
	nt := NeedType(s)
	if !validNeedTypes[nt] {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unsupported need type %q", s))
	}
	return nt, nil
}

// BudgetLine is one entry of a campaign's budget breakdown.
type BudgetLine struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category,omitempty"`
}

// Submission is the campaign content the engine scores. The engine treats it
// as read-only; all results are return values.
type Submission struct {
	Title           string       `json:"title"`
	Story           string       `json:"story"`
	NeedType        NeedType     `json:"need_type"`
	GoalAmount      float64      `json:"goal_amount"`
	BudgetBreakdown []BudgetLine `json:"budget_breakdown"`
	CreatedBy       string       `json:"created_by,omitempty"`
}

// Validate fails fast on submissions the engine cannot meaningfully score.
// A missing story must surface as an error, never as a low-detail low score.
func (s Submission) Validate() error {
	if s.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if s.Story == "" {
		return dErrors.New(dErrors.CodeValidation, "story is required")
	}
	if !validNeedTypes[s.NeedType] {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unsupported need type %q", string(s.NeedType)))
	}
	if s.GoalAmount <= 0 {
		return dErrors.New(dErrors.CodeValidation, "goal amount must be positive")
	}
	for i, line := range s.BudgetBreakdown {
		if line.Description == "" {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("budget line %d: description is required", i))
		}
		if line.Amount < 0 {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("budget line %d: amount cannot be negative", i))
		}
	}
	return nil
}

// Decision is the moderation outcome for a submission.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionReview   Decision = "review"
	DecisionRejected Decision = "rejected"
)

// Scores holds the five category sub-scores plus the aggregated overall
// score. All values are integers in [0,100]. Luxury, inappropriate, and
// fraud are risk scores (higher is worse); needValidation and trust are
// credibility scores (higher is better).
type Scores struct {
	Luxury         int `json:"luxury"`
	Inappropriate  int `json:"inappropriate"`
	Fraud          int `json:"fraud"`
	NeedValidation int `json:"needValidation"`
	Trust          int `json:"trust"`
	Overall        int `json:"overall"`
}

// MatchDetails carries the matched-pattern evidence backing the risk scores,
// for display to human reviewers.
type MatchDetails struct {
	LuxuryItems          []string `json:"luxuryItems"`
	InappropriateContent []string `json:"inappropriateContent"`
	SuspiciousPatterns   []string `json:"suspiciousPatterns"`
}

// ScoreResult is the full moderation outcome for one submission. It is
// constructed fresh per invocation and never persisted by the engine itself;
// the campaign workflow decides whether to write it to moderation history.
type ScoreResult struct {
	Scores          Scores       `json:"scores"`
	Decision        Decision     `json:"decision"`
	Flags           []string     `json:"flags"`
	Recommendations []string     `json:"recommendations"`
	Details         MatchDetails `json:"details"`
	// ProcessingTime is wall-clock milliseconds spent in this invocation,
	// recorded for observability only.
	ProcessingTime int64     `json:"processingTime"`
	Timestamp      time.Time `json:"timestamp"`
}

// CategoryScore is one scorer's output: a 0-100 sub-score plus the matched
// phrases that produced it.
type CategoryScore struct {
	Score   int
	Matches []string
}
