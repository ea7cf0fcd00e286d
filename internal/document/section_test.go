package document

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-ai/inkwell/internal/types"
)

// TestSectionStatus_Regenerable tests regeneration eligibility
func TestSectionStatus_Regenerable(t *testing.T) {
	assert.True(t, SectionStatusCompleted.Regenerable())
	assert.True(t, SectionStatusError.Regenerable())
	assert.False(t, SectionStatusPending.Regenerable())
	assert.False(t, SectionStatusWriting.Regenerable())
	assert.False(t, SectionStatusReviewing.Regenerable())
}

// TestSection_SetContent tests content storage and word counting
func TestSection_SetContent(t *testing.T) {
	s := &Section{ID: types.NewID()}
	s.SetContent("one two three four five")

	assert.Equal(t, 5, s.WordCount)
	assert.True(t, s.CanComplete())
	assert.False(t, s.UpdatedAt.IsZero())
}

// TestSection_ClearContent tests the regeneration reset
func TestSection_ClearContent(t *testing.T) {
	s := &Section{
		ID:            types.NewID(),
		Status:        SectionStatusCompleted,
		Content:       "old content",
		WordCount:     2,
		ContextDigest: "old digest",
		ReviewNotes:   "notes",
		FallbackUsed:  true,
	}

	s.ClearContent()

	assert.Equal(t, SectionStatusPending, s.Status)
	assert.Empty(t, s.Content)
	assert.Zero(t, s.WordCount)
	assert.Empty(t, s.ContextDigest)
	assert.Empty(t, s.ReviewNotes)
	assert.False(t, s.FallbackUsed)
	assert.False(t, s.CanComplete())
}

// TestSection_CanComplete tests the non-empty content rule
func TestSection_CanComplete(t *testing.T) {
	s := &Section{}
	assert.False(t, s.CanComplete())

	s.Content = "   \n\t  "
	assert.False(t, s.CanComplete())

	s.Content = "real prose"
	assert.True(t, s.CanComplete())
}

// TestCountWords tests whitespace word counting
func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", "  \n\t ", 0},
		{"simple", "alpha beta gamma", 3},
		{"mixed whitespace", "alpha\n\nbeta\tgamma  delta", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountWords(tt.text))
		})
	}
}

// TestSortSections tests order-index sorting
func TestSortSections(t *testing.T) {
	sections := []*Section{
		{OrderIndex: 3},
		{OrderIndex: 0},
		{OrderIndex: 2},
		{OrderIndex: 1},
	}

	SortSections(sections)

	for i, sec := range sections {
		assert.Equal(t, i, sec.OrderIndex)
	}
}

// TestSettings_Validate tests settings validation
func TestSettings_Validate(t *testing.T) {
	valid := DefaultSettings()
	assert.NoError(t, valid.Validate())

	zero := Settings{TargetWordCount: 0}
	assert.Error(t, zero.Validate())

	negative := Settings{TargetWordCount: -100}
	assert.Error(t, negative.Validate())

	badFormat := Settings{TargetWordCount: 1000, Format: "haiku"}
	assert.Error(t, badFormat.Validate())
}

// TestSettings_EffectiveFormat tests format defaulting
func TestSettings_EffectiveFormat(t *testing.T) {
	assert.Equal(t, FormatGeneric, Settings{}.EffectiveFormat())
	assert.Equal(t, FormatArticle, Settings{Format: FormatArticle}.EffectiveFormat())
	assert.Equal(t, FormatGeneric, Settings{Format: "bogus"}.EffectiveFormat())
}
