package storefront

import (
	"sort"
	"strings"

	"lessonshop/internal/models"
)

// SortKey names a lesson attribute the catalog can sort by.
type SortKey string

const (
	SortBySubject      SortKey = "subject"
	SortByLocation     SortKey = "location"
	SortByPrice        SortKey = "price"
	SortByAvailability SortKey = "availability"
)

// SortOrder is ascending or descending.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// FilterAndSort returns the lessons matching query (case-insensitive substring
// of subject or location) ordered by key. The input slice is not modified.
func FilterAndSort(lessons []models.Lesson, query string, key SortKey, order SortOrder) []models.Lesson {
	q := strings.ToLower(query)
	out := make([]models.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if q == "" ||
			strings.Contains(strings.ToLower(l.Subject), q) ||
			strings.Contains(strings.ToLower(l.Location), q) {
			out = append(out, l)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := compareBy(out[i], out[j], key)
		if order == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compareBy(a, b models.Lesson, key SortKey) int {
	switch key {
	case SortByLocation:
		return strings.Compare(strings.ToLower(a.Location), strings.ToLower(b.Location))
	case SortByPrice:
		return compareNumbers(a.Price, b.Price)
	case SortByAvailability:
		return compareNumbers(a.Availability, b.Availability)
	default:
		return strings.Compare(strings.ToLower(a.Subject), strings.ToLower(b.Subject))
	}
}

func compareNumbers[T int | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
