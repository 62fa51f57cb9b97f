package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Beverages", "beverages"},
		{"spaces", "Main Course", "main-course"},
		{"punctuation run", "Rice & Curry!", "rice-curry"},
		{"leading and trailing junk", "  --Specials--  ", "specials"},
		{"digits kept", "Combo 2 Go", "combo-2-go"},
		{"only junk", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestUniqueSlugClaimsAndSuffixes(t *testing.T) {
	taken := make(map[string]bool)

	assert.Equal(t, "drinks", UniqueSlug(taken, "Drinks"))
	assert.Equal(t, "drinks-1", UniqueSlug(taken, "Drinks"))
	assert.Equal(t, "drinks-2", UniqueSlug(taken, "drinks"))

	// All three are now claimed
	assert.True(t, taken["drinks"])
	assert.True(t, taken["drinks-1"])
	assert.True(t, taken["drinks-2"])
}

func TestUniqueSlugEmptyName(t *testing.T) {
	taken := make(map[string]bool)

	assert.Equal(t, "untitled", UniqueSlug(taken, "   "))
	assert.Equal(t, "untitled-1", UniqueSlug(taken, "!!!"))
}
