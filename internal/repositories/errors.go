package repositories

import (
	"math"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("not found")

func lessonNotFound(id string) error {
	return errors.Wrapf(ErrNotFound, "lesson with ID %s", id)
}

func orderNotFound(id string) error {
	return errors.Wrapf(ErrNotFound, "order with ID %s", id)
}

// clampAvailability applies delta to current, never going below zero and
// saturating at math.MaxInt instead of wrapping.
func clampAvailability(current, delta int) int {
	if delta > 0 && current > math.MaxInt-delta {
		return math.MaxInt
	}
	if delta < 0 && current < math.MinInt-delta {
		return 0
	}
	if next := current + delta; next > 0 {
		return next
	}
	return 0
}

// matchesQuery reports whether subject or location contains query, ignoring case.
func matchesQuery(subject, location, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(subject), q) ||
		strings.Contains(strings.ToLower(location), q)
}
