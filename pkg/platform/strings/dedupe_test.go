package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	t.Run("removes duplicates preserving first occurrence", func(t *testing.T) {
		got := DedupeAndTrim([]string{"b", "a", "b", "a"})
		assert.Equal(t, []string{"b", "a"}, got)
	})

	t.Run("trims whitespace before comparing", func(t *testing.T) {
		got := DedupeAndTrim([]string{" luxury-items-detected ", "luxury-items-detected"})
		assert.Equal(t, []string{"luxury-items-detected"}, got)
	})

	t.Run("drops empty entries", func(t *testing.T) {
		got := DedupeAndTrim([]string{"", "  ", "x"})
		assert.Equal(t, []string{"x"}, got)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, DedupeAndTrim(nil))
	})

	t.Run("case sensitive", func(t *testing.T) {
		got := DedupeAndTrim([]string{"Rolex", "rolex"})
		assert.Equal(t, []string{"Rolex", "rolex"}, got)
	})
}

func TestDedupeAndTrimLower(t *testing.T) {
	t.Run("lowercases before deduping", func(t *testing.T) {
		got := DedupeAndTrimLower([]string{"Rolex", "rolex", " ROLEX "})
		assert.Equal(t, []string{"rolex"}, got)
	})

	t.Run("preserves order of distinct values", func(t *testing.T) {
		got := DedupeAndTrimLower([]string{"Yacht", "rolex", "YACHT"})
		assert.Equal(t, []string{"yacht", "rolex"}, got)
	})
}
