package repositories

import (
	"context"
	"sync"
	"time"

	"lessonshop/internal/models"

	"github.com/google/uuid"
)

// MemoryLessonRepository is an in-memory implementation of LessonRepository.
type MemoryLessonRepository struct {
	lessons map[string]models.Lesson
	order   []string // insertion order, keeps listings stable
	mu      sync.RWMutex
}

// NewMemoryLessonRepository creates a new instance of MemoryLessonRepository.
func NewMemoryLessonRepository() *MemoryLessonRepository {
	return &MemoryLessonRepository{
		lessons: make(map[string]models.Lesson),
	}
}

// GetAll returns all lessons in insertion order.
func (r *MemoryLessonRepository) GetAll(_ context.Context) ([]models.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lessonList := make([]models.Lesson, 0, len(r.order))
	for _, id := range r.order {
		lessonList = append(lessonList, r.lessons[id])
	}
	return lessonList, nil
}

// GetByID returns a lesson by its ID.
func (r *MemoryLessonRepository) GetByID(_ context.Context, id string) (*models.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lesson, ok := r.lessons[id]
	if !ok {
		return nil, lessonNotFound(id)
	}
	return &lesson, nil
}

// Create adds a new lesson, assigning its ID and creation time when unset.
func (r *MemoryLessonRepository) Create(_ context.Context, lesson *models.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lesson.ID == "" {
		lesson.ID = uuid.New().String()
	}
	if lesson.CreatedAt.IsZero() {
		lesson.CreatedAt = time.Now().UTC()
	}
	if _, exists := r.lessons[lesson.ID]; !exists {
		r.order = append(r.order, lesson.ID)
	}
	r.lessons[lesson.ID] = *lesson
	return nil
}

// AdjustAvailability applies delta under the write lock, clamping at zero.
func (r *MemoryLessonRepository) AdjustAvailability(_ context.Context, id string, delta int) (*models.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lesson, ok := r.lessons[id]
	if !ok {
		return nil, lessonNotFound(id)
	}
	lesson.Availability = clampAvailability(lesson.Availability, delta)
	r.lessons[id] = lesson
	return &lesson, nil
}

// Search returns lessons whose subject or location contains query.
func (r *MemoryLessonRepository) Search(_ context.Context, query string) ([]models.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]models.Lesson, 0)
	for _, id := range r.order {
		lesson := r.lessons[id]
		if matchesQuery(lesson.Subject, lesson.Location, query) {
			matches = append(matches, lesson)
		}
	}
	return matches, nil
}

// Count returns the number of stored lessons.
func (r *MemoryLessonRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.lessons)), nil
}
