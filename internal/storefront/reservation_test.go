package storefront

import (
	"testing"

	"lessonshop/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationTransitions(t *testing.T) {
	r := newReservation(models.Lesson{ID: "1"})
	assert.Equal(t, StateOptimistic, r.State)

	require.NoError(t, r.transition(StateConfirmed))
	assert.Equal(t, StateConfirmed, r.State)

	err := r.transition(StateReverted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StateConfirmed, r.State)

	r = newReservation(models.Lesson{ID: "2"})
	assert.ErrorIs(t, r.transition(StateOptimistic), ErrInvalidTransition)
	require.NoError(t, r.transition(StateReverted))
	assert.ErrorIs(t, r.transition(StateConfirmed), ErrInvalidTransition)
}
