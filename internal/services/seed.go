package services

import (
	"context"
	"log"

	"lessonshop/internal/models"
	"lessonshop/internal/repositories"
)

// SampleLessons returns the lessons inserted into an empty store at startup.
func SampleLessons() []models.Lesson {
	return []models.Lesson{
		{Subject: "Mathematics", Location: "London", Price: 25, Availability: 5},
		{Subject: "English", Location: "Manchester", Price: 20, Availability: 3},
		{Subject: "Science", Location: "Birmingham", Price: 30, Availability: 8},
		{Subject: "History", Location: "Liverpool", Price: 22, Availability: 2},
		{Subject: "Geography", Location: "Leeds", Price: 18, Availability: 6},
		{Subject: "Art", Location: "Bristol", Price: 28, Availability: 4},
		{Subject: "Music", Location: "Edinburgh", Price: 35, Availability: 3},
		{Subject: "Physics", Location: "Glasgow", Price: 32, Availability: 7},
		{Subject: "Chemistry", Location: "Cardiff", Price: 29, Availability: 5},
		{Subject: "Biology", Location: "Belfast", Price: 27, Availability: 4},
	}
}

// SeedSampleLessons inserts SampleLessons when repo holds no lessons and
// returns how many were inserted.
func SeedSampleLessons(ctx context.Context, repo repositories.LessonRepository) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	lessons := SampleLessons()
	for i := range lessons {
		if err := repo.Create(ctx, &lessons[i]); err != nil {
			return i, err
		}
		log.Printf("Seeded lesson: %s in %s (ID: %s)", lessons[i].Subject, lessons[i].Location, lessons[i].ID)
	}
	return len(lessons), nil
}
