package storefront

import "lessonshop/internal/models"

// SampleCatalog is shown when the lesson API cannot be reached.
func SampleCatalog() []models.Lesson {
	return []models.Lesson{
		{ID: "1", Subject: "Mathematics", Location: "London", Price: 25, Availability: 5},
		{ID: "2", Subject: "English", Location: "Manchester", Price: 20, Availability: 5},
		{ID: "3", Subject: "Science", Location: "Birmingham", Price: 30, Availability: 8},
		{ID: "4", Subject: "History", Location: "Liverpool", Price: 22, Availability: 5},
		{ID: "5", Subject: "Geography", Location: "Leeds", Price: 18, Availability: 6},
		{ID: "6", Subject: "Art", Location: "Bristol", Price: 28, Availability: 5},
		{ID: "7", Subject: "Music", Location: "Edinburgh", Price: 35, Availability: 5},
		{ID: "8", Subject: "Physics", Location: "Glasgow", Price: 32, Availability: 7},
		{ID: "9", Subject: "Chemistry", Location: "Cardiff", Price: 29, Availability: 5},
		{ID: "10", Subject: "Biology", Location: "Belfast", Price: 27, Availability: 5},
	}
}
