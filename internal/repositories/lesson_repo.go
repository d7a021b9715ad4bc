package repositories

import (
	"context"

	"lessonshop/internal/models"
)

// LessonRepository defines the interface for lesson data access.
type LessonRepository interface {
	GetAll(ctx context.Context) ([]models.Lesson, error)
	GetByID(ctx context.Context, id string) (*models.Lesson, error)
	Create(ctx context.Context, lesson *models.Lesson) error
	// AdjustAvailability atomically sets availability to max(0, availability+delta)
	// and returns the updated lesson.
	AdjustAvailability(ctx context.Context, id string, delta int) (*models.Lesson, error)
	Search(ctx context.Context, query string) ([]models.Lesson, error)
	Count(ctx context.Context) (int64, error)
}
