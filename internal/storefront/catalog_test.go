package storefront_test

import (
	"testing"

	"lessonshop/internal/models"
	"lessonshop/internal/storefront"

	"github.com/stretchr/testify/assert"
)

func ids(lessons []models.Lesson) []string {
	out := make([]string, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, l.ID)
	}
	return out
}

func TestFilterAndSort(t *testing.T) {
	catalog := storefront.SampleCatalog()

	tests := []struct {
		name  string
		query string
		key   storefront.SortKey
		order storefront.SortOrder
		want  []string
	}{
		{"subject ascending", "", storefront.SortBySubject, storefront.Ascending,
			[]string{"6", "10", "9", "2", "5", "4", "1", "7", "8", "3"}},
		{"price descending", "", storefront.SortByPrice, storefront.Descending,
			[]string{"7", "8", "3", "9", "6", "10", "1", "4", "2", "5"}},
		{"location filter is case-insensitive", "LON", storefront.SortBySubject, storefront.Ascending,
			[]string{"1"}},
		{"subject or location match", "ch", storefront.SortByLocation, storefront.Ascending,
			[]string{"9", "2"}},
		{"availability keeps input order on ties", "", storefront.SortByAvailability, storefront.Descending,
			[]string{"3", "8", "5", "1", "2", "4", "6", "7", "9", "10"}},
		{"no match", "zzz", storefront.SortBySubject, storefront.Ascending, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := storefront.FilterAndSort(catalog, tt.query, tt.key, tt.order)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterAndSortDoesNotModifyInput(t *testing.T) {
	catalog := storefront.SampleCatalog()
	storefront.FilterAndSort(catalog, "", storefront.SortByPrice, storefront.Descending)
	assert.Equal(t, storefront.SampleCatalog(), catalog)
}
