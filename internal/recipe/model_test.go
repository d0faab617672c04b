package recipe

import (
	"strings"
	"testing"

	"recipe_api/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ValidRecipe(t *testing.T) {
	instructions := strings.Repeat("a", 60)

	rec, err := New("Pancakes", instructions, 20, 1)
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", rec.Title)
	assert.Equal(t, instructions, rec.Instructions)
	assert.Equal(t, 20, rec.MinutesToComplete)
	assert.Equal(t, 1, rec.UserID)
}

func TestNew_InstructionsRequired(t *testing.T) {
	_, err := New("Pancakes", "", 20, 1)
	require.Error(t, err)

	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "Instructions are required.", err.Error())
}

func TestNew_InstructionsTooShort(t *testing.T) {
	_, err := New("Pancakes", strings.Repeat("a", 49), 20, 1)
	require.Error(t, err)

	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "Instructions must be at least 50 characters long.", err.Error())
}

func TestNew_InstructionsExactlyMinLength(t *testing.T) {
	rec, err := New("Pancakes", strings.Repeat("a", 50), 20, 1)
	require.NoError(t, err)
	assert.Len(t, rec.Instructions, 50)
}

func TestNew_InstructionsLengthCountsCharacters(t *testing.T) {
	// 50 multi-byte characters are enough even though each is >1 byte
	rec, err := New("Pancakes", strings.Repeat("é", 50), 20, 1)
	require.NoError(t, err)
	assert.NotNil(t, rec)
}
