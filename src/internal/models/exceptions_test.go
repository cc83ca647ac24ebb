package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetailedError(t *testing.T) {
	err := NotFoundf("Session with session_id '%s' not found.", "sess_1")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, "Session with session_id 'sess_1' not found.", err.Error())

	wrapped := fmt.Errorf("handler: %w", Conflictf("User with user_id '%s' already exists.", "user_1"))
	assert.ErrorIs(t, wrapped, ErrConflict)

	var detailed *DetailedError
	assert.True(t, errors.As(wrapped, &detailed))
	assert.Equal(t, "User with user_id 'user_1' already exists.", detailed.Detail)
}
