package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.NoError(t, CanTransition(StatusPending, StatusPreparing))
	assert.NoError(t, CanTransition(StatusPreparing, StatusCompleted))

	// No skips, no backward moves, completed is terminal.
	assert.ErrorIs(t, CanTransition(StatusPending, StatusCompleted), ErrInvalidTransition)
	assert.ErrorIs(t, CanTransition(StatusPreparing, StatusPending), ErrInvalidTransition)
	assert.ErrorIs(t, CanTransition(StatusCompleted, StatusPreparing), ErrInvalidTransition)
	assert.ErrorIs(t, CanTransition(StatusCompleted, StatusPending), ErrInvalidTransition)
	assert.ErrorIs(t, CanTransition(StatusPending, StatusPending), ErrInvalidTransition)
}

func TestIsActiveStatus(t *testing.T) {
	assert.True(t, IsActiveStatus(StatusPending))
	assert.True(t, IsActiveStatus(StatusPreparing))
	assert.False(t, IsActiveStatus(StatusCompleted))
}
