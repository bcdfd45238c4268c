package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	t.Run("joins title story and budget fields", func(t *testing.T) {
		sub := Submission{
			Title: "Help My Family",
			Story: "We need support.",
			BudgetBreakdown: []BudgetLine{
				{Description: "Rent", Amount: 500, Category: "Housing"},
				{Description: "Groceries", Amount: 200},
			},
		}
		got := ExtractText(sub)
		assert.Equal(t, "help my family we need support. rent housing groceries", got)
	})

	t.Run("collapses whitespace and lowercases", func(t *testing.T) {
		sub := Submission{
			Title: "  Help\t\tMe  ",
			Story: "Line one\n\nLine TWO",
		}
		assert.Equal(t, "help me line one line two", ExtractText(sub))
	})

	t.Run("empty submission yields empty string", func(t *testing.T) {
		assert.Equal(t, "", ExtractText(Submission{}))
	})

	t.Run("skips empty category", func(t *testing.T) {
		sub := Submission{
			Title: "a",
			Story: "b",
			BudgetBreakdown: []BudgetLine{
				{Description: "c", Amount: 1},
			},
		}
		assert.Equal(t, "a b c", ExtractText(sub))
	})
}
