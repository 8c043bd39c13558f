package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "notarium/pkg/domain-errors"
)

func TestParseListingID(t *testing.T) {
	valid := uuid.New().String()

	id, err := ParseListingID(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, id.String())
	assert.False(t, id.IsNil())
}

func TestParseListingIDRejectsEmpty(t *testing.T) {
	_, err := ParseListingID("")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestParseListingIDRejectsGarbage(t *testing.T) {
	_, err := ParseListingID("not-a-uuid")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestNewListingIDUnique(t *testing.T) {
	a := NewListingID()
	b := NewListingID()
	assert.NotEqual(t, a, b)
	assert.False(t, a.IsNil())
}
