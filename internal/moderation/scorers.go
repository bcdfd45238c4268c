package moderation

import (
	pkgstrings "fundguard/pkg/platform/strings"
)

// Scorer categories, used for metrics labels and result assembly.
const (
	categoryLuxury        = "luxury"
	categoryInappropriate = "inappropriate"
	categoryFraud         = "fraud"
	categoryNeed          = "need_validation"
	categoryTrust         = "trust"
)

// Per-match weights. Each scorer caps its sub-score at 100; the weights
// control how quickly evidence saturates a category.
const (
	luxuryNarrativeWeight     = 15
	luxuryBudgetWeight        = 25
	inappropriateSevereWeight = 40
	inappropriateMildWeight   = 15
	fraudSevereWeight         = 30
	fraudMildWeight           = 15
	fraudNoBudgetWeight       = 25
	needMatchWeight           = 20
	trustMatchWeight          = 15
	trustItemizedWeight       = 20
)

// noBudgetEvidence is the synthetic suspicious-pattern entry for large asks
// with no budget breakdown. No keyword matched; the missing breakdown is
// itself the evidence.
const noBudgetEvidence = "no budget breakdown provided for large goal amount"

// itemizedBudgetEvidence is the trust credit for a budget that accounts for
// the goal amount line by line.
const itemizedBudgetEvidence = "itemized budget breakdown"

// scorer is the shared contract for the five category scorers. Scorers are
// pure: no shared mutable state, no I/O, order-insensitive. The engine runs
// them concurrently.
type scorer interface {
	category() string
	score(text string, sub *Submission) CategoryScore
}

// luxuryScorer flags designer brands and premium goods. A match inside a
// budget line weighs more than a narrative mention: it indicates actual
// allocation of funds to the flagged item rather than incidental wording.
type luxuryScorer struct{}

func (luxuryScorer) category() string { return categoryLuxury }

func (luxuryScorer) score(text string, sub *Submission) CategoryScore {
	matches := matchAll(luxuryPatterns, text)
	score := luxuryNarrativeWeight * len(matches)

	for _, line := range sub.BudgetBreakdown {
		lineText := normalize(line.Description + " " + line.Category)
		for _, label := range matchAll(luxuryPatterns, lineText) {
			matches = append(matches, "budget: "+label)
			score += luxuryBudgetWeight
		}
	}

	return CategoryScore{Score: clampScore(score), Matches: pkgstrings.DedupeAndTrimLower(matches)}
}

// inappropriateScorer applies the two-tier profanity/explicit-content
// blocklist.
type inappropriateScorer struct{}

func (inappropriateScorer) category() string { return categoryInappropriate }

func (inappropriateScorer) score(text string, _ *Submission) CategoryScore {
	severe := matchAll(inappropriateSevere, text)
	mild := matchAll(inappropriateMild, text)

	score := inappropriateSevereWeight*len(severe) + inappropriateMildWeight*len(mild)
	matches := append(severe, mild...)

	return CategoryScore{Score: clampScore(score), Matches: pkgstrings.DedupeAndTrimLower(matches)}
}

// fraudScorer detects scam phrasing and low-transparency asks. An empty
// budget breakdown on a goal above the configured large-amount threshold is
// counted as a suspicious pattern even though no keyword matched.
type fraudScorer struct {
	largeGoalAmount float64
}

func (fraudScorer) category() string { return categoryFraud }

func (s fraudScorer) score(text string, sub *Submission) CategoryScore {
	severe := matchAll(fraudSevere, text)
	mild := matchAll(fraudMild, text)

	score := fraudSevereWeight*len(severe) + fraudMildWeight*len(mild)
	matches := append(severe, mild...)

	if len(sub.BudgetBreakdown) == 0 && sub.GoalAmount >= s.largeGoalAmount {
		score += fraudNoBudgetWeight
		matches = append(matches, noBudgetEvidence)
	}

	return CategoryScore{Score: clampScore(score), Matches: pkgstrings.DedupeAndTrimLower(matches)}
}

// needScorer measures whether the narrative substantiates the declared need
// type with category-appropriate detail. Higher is more credible.
type needScorer struct{}

func (needScorer) category() string { return categoryNeed }

func (needScorer) score(text string, sub *Submission) CategoryScore {
	matches := matchAll(needIndicators[sub.NeedType], text)
	score := needMatchWeight * len(matches)

	return CategoryScore{Score: clampScore(score), Matches: pkgstrings.DedupeAndTrimLower(matches)}
}

// trustScorer rewards transparency commitments: receipts, updates,
// documentation, and a budget that itemizes the goal amount.
type trustScorer struct{}

func (trustScorer) category() string { return categoryTrust }

func (trustScorer) score(text string, sub *Submission) CategoryScore {
	matches := matchAll(trustPatterns, text)
	score := trustMatchWeight * len(matches)

	if budgetItemizesGoal(sub) && !budgetContainsLuxury(sub) {
		score += trustItemizedWeight
		matches = append(matches, itemizedBudgetEvidence)
	}

	return CategoryScore{Score: clampScore(score), Matches: pkgstrings.DedupeAndTrimLower(matches)}
}

// budgetItemizesGoal reports whether the budget breakdown has at least two
// lines and accounts for the goal amount within 10%.
func budgetItemizesGoal(sub *Submission) bool {
	if len(sub.BudgetBreakdown) < 2 || sub.GoalAmount <= 0 {
		return false
	}
	var total float64
	for _, line := range sub.BudgetBreakdown {
		total += line.Amount
	}
	diff := total - sub.GoalAmount
	if diff < 0 {
		diff = -diff
	}
	return diff <= 0.1*sub.GoalAmount
}

// budgetContainsLuxury reports whether any budget line names a flagged
// luxury item. An itemized budget of luxury goods is not a transparency
// signal and earns no trust credit.
func budgetContainsLuxury(sub *Submission) bool {
	for _, line := range sub.BudgetBreakdown {
		lineText := normalize(line.Description + " " + line.Category)
		if len(matchAll(luxuryPatterns, lineText)) > 0 {
			return true
		}
	}
	return false
}

// clampScore bounds a sub-score to [0,100].
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
