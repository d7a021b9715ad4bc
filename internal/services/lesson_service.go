package services

import (
	"context"

	"lessonshop/internal/models"
	"lessonshop/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// CreateLessonInput is the create-lesson payload. Price and availability
// accept numbers or numeric strings.
type CreateLessonInput struct {
	Subject      string `json:"subject" validate:"required"`
	Location     string `json:"location" validate:"required"`
	Price        any    `json:"price"`
	Availability any    `json:"availability"`
}

// AdjustAvailabilityInput carries the signed availability change.
type AdjustAvailabilityInput struct {
	Change any `json:"change"`
}

// LessonService handles business logic related to lessons.
type LessonService struct {
	repo      repositories.LessonRepository
	publisher Publisher
	validate  *validator.Validate
}

// NewLessonService creates a new LessonService. publisher may be nil.
func NewLessonService(repo repositories.LessonRepository, publisher Publisher) *LessonService {
	return &LessonService{
		repo:      repo,
		publisher: publisher,
		validate:  newValidator(),
	}
}

// GetAllLessons retrieves all lessons.
func (s *LessonService) GetAllLessons(ctx context.Context) ([]models.Lesson, error) {
	return s.repo.GetAll(ctx)
}

// GetLessonByID retrieves a single lesson by its ID.
func (s *LessonService) GetLessonByID(ctx context.Context, id string) (*models.Lesson, error) {
	return s.repo.GetByID(ctx, id)
}

// SearchLessons returns lessons whose subject or location contains query.
func (s *LessonService) SearchLessons(ctx context.Context, query string) ([]models.Lesson, error) {
	return s.repo.Search(ctx, query)
}

// CreateLesson validates and coerces in, then stores a new lesson.
func (s *LessonService) CreateLesson(ctx context.Context, in CreateLessonInput) (*models.Lesson, error) {
	fields := make(map[string]string)
	if err := fieldErrors(s.validate, in, fields); err != nil {
		return nil, err
	}
	price := requireFloat(fields, "price", in.Price)
	availability := requireInt(fields, "availability", in.Availability)
	if len(fields) > 0 {
		return nil, &ValidationError{Message: "Missing required fields", Fields: fields}
	}

	lesson := &models.Lesson{
		Subject:      in.Subject,
		Location:     in.Location,
		Price:        price,
		Availability: availability,
	}
	if err := s.repo.Create(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// AdjustAvailability adds in.Change to the lesson's availability, clamped at zero.
func (s *LessonService) AdjustAvailability(ctx context.Context, id string, in AdjustAvailabilityInput) (*models.Lesson, error) {
	fields := make(map[string]string)
	change := requireInt(fields, "change", in.Change)
	if len(fields) > 0 {
		return nil, &ValidationError{Message: "Change value is required", Fields: fields}
	}

	lesson, err := s.repo.AdjustAvailability(ctx, id, change)
	if err != nil {
		return nil, err
	}
	publish(s.publisher, EventAvailabilityChanged, AvailabilityChangedEvent{
		LessonID:     lesson.ID,
		Change:       change,
		Availability: lesson.Availability,
	})
	return lesson, nil
}
