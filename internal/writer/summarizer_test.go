package writer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDigest_ShortContent tests that short text passes through unchanged
func TestDigest_ShortContent(t *testing.T) {
	assert.Equal(t, "a few words only", Digest("a few  words\nonly"))
	assert.Equal(t, "", Digest(""))
	assert.Equal(t, "", Digest("   \n "))
}

// TestDigest_BoundsLongContent tests the word limit
func TestDigest_BoundsLongContent(t *testing.T) {
	long := strings.Repeat("word ", 500)

	digest := Digest(long)

	words := strings.Fields(digest)
	// Limit words plus the ellipsis marker appended to the last word.
	assert.Len(t, words, DigestWordLimit)
	assert.True(t, strings.HasSuffix(digest, "…"))
}

// TestDigest_Deterministic tests output stability
func TestDigest_Deterministic(t *testing.T) {
	content := strings.Repeat("alpha beta gamma ", 50)
	assert.Equal(t, Digest(content), Digest(content))
}

// TestRunningContext tests digest joining and empty filtering
func TestRunningContext(t *testing.T) {
	joined := RunningContext([]string{"first digest", "", "  ", "second digest"})

	assert.Equal(t, "first digest\n\nsecond digest", joined)
	assert.Equal(t, "", RunningContext(nil))
	assert.Equal(t, "", RunningContext([]string{"", "  "}))
}
