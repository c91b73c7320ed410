package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DvizhHSE/Dvizh-backend/apperr"
)

func TestParseID(t *testing.T) {
	id := NewID()

	parsed, err := ParseID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	// surrounding whitespace is tolerated
	parsed, err = ParseID("  " + id.Hex() + " ")
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParseIDMalformed(t *testing.T) {
	for _, input := range []string{"", "nope", "507f1f77bcf86cd79943901", "507f1f77bcf86cd79943901z"} {
		_, err := ParseID(input)
		require.ErrorIs(t, err, apperr.ErrMalformedID, "input %q", input)
	}
}

func TestIDZero(t *testing.T) {
	assert.True(t, ID{}.IsZero())
	assert.False(t, NewID().IsZero())
}
