package moderation

import (
	"fmt"
	"log/slog"

	pkgstrings "fundguard/pkg/platform/strings"
)

// Flag codes are stable identifiers consumed by the review UI and
// statistics; renaming one is a breaking change for stored history.
const (
	FlagLuxuryItems       = "luxury-items-detected"
	FlagInappropriate     = "inappropriate-content"
	FlagFraudIndicators   = "fraud-indicators"
	FlagFraudVeto         = "fraud-veto"
	FlagNoBudgetBreakdown = "no-budget-breakdown"
	FlagLowNeedValidation = "low-need-validation"
	FlagLowTrustSignals   = "low-trust-signals"
)

// Aggregation weights. Risk categories pull the overall score down from the
// baseline; credibility categories pull it up. Fraud carries the largest
// risk weight, and is additionally a veto condition (see decisionFor).
const (
	baselineScore = 60

	weightFraudRisk         = 0.45
	weightLuxuryRisk        = 0.35
	weightInappropriateRisk = 0.30

	weightNeedCredibility  = 0.25
	weightTrustCredibility = 0.15
)

// Sub-score cutoffs at which advisory flags are emitted.
const (
	luxuryFlagThreshold        = 30
	inappropriateFlagThreshold = 20
	fraudFlagThreshold         = 40
	lowNeedFlagThreshold       = 30
	lowTrustFlagThreshold      = 20
)

// Thresholds carries the tunable decision constants. The three decision
// bands partition [0,100]: overall >= Approve is approved, Review <=
// overall < Approve is review, overall < Review is rejected.
type Thresholds struct {
	Approve   int
	Review    int
	FraudVeto int
	// LargeGoalAmount is the goal above which an empty budget breakdown
	// counts as a suspicious pattern.
	LargeGoalAmount float64
	// MaxTextLength bounds the normalized text the engine will score.
	MaxTextLength int
}

// DefaultThresholds returns the documented default scoring policy.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Approve:         70,
		Review:          40,
		FraudVeto:       70,
		LargeGoalAmount: 5000,
		MaxTextLength:   50000,
	}
}

// Validate enforces that the bands are contiguous, non-overlapping, and
// exhaustive over [0,100].
func (t Thresholds) Validate() error {
	if t.Review <= 0 || t.Approve > 100 || t.Review >= t.Approve {
		return errBadThresholds(t)
	}
	if t.FraudVeto <= 0 || t.FraudVeto > 100 {
		return errBadThresholds(t)
	}
	if t.LargeGoalAmount <= 0 || t.MaxTextLength <= 0 {
		return errBadThresholds(t)
	}
	return nil
}

func errBadThresholds(t Thresholds) error {
	return fmt.Errorf("invalid moderation thresholds: approve=%d review=%d fraud_veto=%d large_goal=%v max_text=%d",
		t.Approve, t.Review, t.FraudVeto, t.LargeGoalAmount, t.MaxTextLength)
}

// aggregateResult is the decision aggregator's output, before final
// assembly into a ScoreResult.
type aggregateResult struct {
	overall         int
	decision        Decision
	flags           []string
	recommendations []string
}

// aggregate combines the five sub-scores into an overall score and decision,
// and derives advisory flags and recommendations. Sub-scores outside [0,100]
// indicate an upstream scorer bug; they are clamped and logged rather than
// propagated into the decision.
func (t Thresholds) aggregate(sub *Submission, scores Scores, logger *slog.Logger) aggregateResult {
	scores = clampSubscores(scores, logger)

	risk := weightFraudRisk*float64(scores.Fraud) +
		weightLuxuryRisk*float64(scores.Luxury) +
		weightInappropriateRisk*float64(scores.Inappropriate)
	credibility := weightNeedCredibility*float64(scores.NeedValidation) +
		weightTrustCredibility*float64(scores.Trust)

	overall := clampScore(int(baselineScore - risk + credibility))
	decision := t.decisionFor(overall, scores.Fraud)
	flags := t.flagsFor(sub, scores)

	return aggregateResult{
		overall:         overall,
		decision:        decision,
		flags:           flags,
		recommendations: recommendationsFor(flags, sub.NeedType),
	}
}

// decisionFor maps an overall score to its decision band. The fraud veto is
// checked first: strong direct fraud evidence cannot be averaged away by
// high need or trust scores, because a false negative on fraud costs more
// than a false positive on a borderline legitimate campaign.
func (t Thresholds) decisionFor(overall, fraud int) Decision {
	if fraud >= t.FraudVeto {
		return DecisionRejected
	}
	switch {
	case overall >= t.Approve:
		return DecisionApproved
	case overall >= t.Review:
		return DecisionReview
	default:
		return DecisionRejected
	}
}

// flagsFor derives advisory flags deterministically from which sub-score
// thresholds were crossed. Flags must be stable and reproducible for the
// same input.
func (t Thresholds) flagsFor(sub *Submission, scores Scores) []string {
	var flags []string

	if scores.Luxury >= luxuryFlagThreshold {
		flags = append(flags, FlagLuxuryItems)
	}
	if scores.Inappropriate >= inappropriateFlagThreshold {
		flags = append(flags, FlagInappropriate)
	}
	if scores.Fraud >= fraudFlagThreshold {
		flags = append(flags, FlagFraudIndicators)
	}
	if scores.Fraud >= t.FraudVeto {
		flags = append(flags, FlagFraudVeto)
	}
	if len(sub.BudgetBreakdown) == 0 && sub.GoalAmount >= t.LargeGoalAmount {
		flags = append(flags, FlagNoBudgetBreakdown)
	}
	// A declared concrete need with no substantiating vocabulary is a soft
	// flag; "personal" and "other" campaigns carry no such expectation.
	switch sub.NeedType {
	case NeedMedical, NeedEducation, NeedEmergency:
		if scores.NeedValidation < lowNeedFlagThreshold {
			flags = append(flags, FlagLowNeedValidation)
		}
	}
	if scores.Trust < lowTrustFlagThreshold {
		flags = append(flags, FlagLowTrustSignals)
	}

	return pkgstrings.DedupeAndTrim(flags)
}

// recommendationsFor selects advisory templates based on which flags are
// present. Order follows flag order so output is reproducible.
func recommendationsFor(flags []string, needType NeedType) []string {
	var recs []string
	for _, flag := range flags {
		switch flag {
		case FlagLuxuryItems:
			recs = append(recs, "Remove luxury or non-essential items from the campaign budget.")
		case FlagInappropriate:
			recs = append(recs, "Remove inappropriate language from the campaign story.")
		case FlagFraudIndicators, FlagFraudVeto:
			recs = append(recs, "Remove urgency and guaranteed-return language and describe specifically how funds will be used.")
		case FlagNoBudgetBreakdown:
			recs = append(recs, "Provide an itemized budget breakdown for the requested amount.")
		case FlagLowNeedValidation:
			switch needType {
			case NeedMedical:
				recs = append(recs, "Add supporting medical documentation such as hospital records or a doctor's letter.")
			case NeedEducation:
				recs = append(recs, "Include enrollment or tuition documentation from the institution.")
			default:
				recs = append(recs, "Add specific details that substantiate the stated need.")
			}
		case FlagLowTrustSignals:
			recs = append(recs, "Commit to posting receipts and regular progress updates for donors.")
		}
	}
	return pkgstrings.DedupeAndTrim(recs)
}

// clampSubscores bounds each category sub-score to [0,100], logging any
// out-of-range value.
func clampSubscores(scores Scores, logger *slog.Logger) Scores {
	clamp := func(name string, v int) int {
		if v < 0 || v > 100 {
			if logger != nil {
				logger.Warn("sub-score out of range, clamping",
					"category", name,
					"value", v,
				)
			}
			return clampScore(v)
		}
		return v
	}
	scores.Luxury = clamp(categoryLuxury, scores.Luxury)
	scores.Inappropriate = clamp(categoryInappropriate, scores.Inappropriate)
	scores.Fraud = clamp(categoryFraud, scores.Fraud)
	scores.NeedValidation = clamp(categoryNeed, scores.NeedValidation)
	scores.Trust = clamp(categoryTrust, scores.Trust)
	return scores
}
