package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewID tests ID generation
func TestNewID(t *testing.T) {
	id1 := NewID()
	id2 := NewID()

	assert.NotEqual(t, id1, id2)
	assert.NoError(t, id1.Validate())
	assert.False(t, id1.IsZero())
}

// TestParseID tests parsing and validation
func TestParseID(t *testing.T) {
	original := NewID()

	parsed, err := ParseID(original.String())
	require.NoError(t, err)
	assert.Equal(t, original, parsed)

	_, err = ParseID("not-a-uuid")
	assert.Error(t, err)

	_, err = ParseID("")
	assert.Error(t, err)
}

// TestID_JSON tests JSON round-tripping
func TestID_JSON(t *testing.T) {
	id := NewID()

	data, err := json.Marshal(id)
	require.NoError(t, err)

	var decoded ID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)

	var invalid ID
	assert.Error(t, json.Unmarshal([]byte(`"garbage"`), &invalid))
}

// TestID_IsZero tests zero value detection
func TestID_IsZero(t *testing.T) {
	var zero ID
	assert.True(t, zero.IsZero())
	assert.Error(t, zero.Validate())
}
