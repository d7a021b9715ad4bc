package storefront

import (
	"github.com/cockroachdb/errors"

	"lessonshop/internal/models"
)

// ReservationState tracks one cart line against the server's availability.
type ReservationState string

const (
	// StateOptimistic: availability was decremented locally only.
	StateOptimistic ReservationState = "optimistic"
	// StateConfirmed: the server accepted the matching decrement.
	StateConfirmed ReservationState = "confirmed"
	// StateReverted: the line left the cart and the local decrement was undone.
	StateReverted ReservationState = "reverted"
)

// ErrInvalidTransition is returned for any move out of a settled state.
var ErrInvalidTransition = errors.New("invalid reservation transition")

// Reservation is a cart line: a copy of the lesson taken when it was added.
type Reservation struct {
	Lesson models.Lesson
	State  ReservationState
}

func newReservation(lesson models.Lesson) *Reservation {
	return &Reservation{Lesson: lesson, State: StateOptimistic}
}

// transition moves an optimistic reservation to confirmed or reverted.
func (r *Reservation) transition(to ReservationState) error {
	if r.State != StateOptimistic || (to != StateConfirmed && to != StateReverted) {
		return errors.Wrapf(ErrInvalidTransition, "%s -> %s for lesson %s", r.State, to, r.Lesson.ID)
	}
	r.State = to
	return nil
}
