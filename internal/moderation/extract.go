package moderation

import "strings"

// ExtractText normalizes a submission into a single lowercase blob for
// pattern matching: title, story, and each budget line's description and
// category, joined by single spaces with whitespace collapsed.
//
// Always returns a string; an empty submission yields "".
func ExtractText(sub Submission) string {
	parts := make([]string, 0, 2+2*len(sub.BudgetBreakdown))
	parts = append(parts, sub.Title, sub.Story)
	for _, line := range sub.BudgetBreakdown {
		parts = append(parts, line.Description)
		if line.Category != "" {
			parts = append(parts, line.Category)
		}
	}
	return normalize(strings.Join(parts, " "))
}

// normalize lowercases and collapses runs of whitespace to single spaces.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
