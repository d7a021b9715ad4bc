package repositories

import (
	"context"
	"math"
	"strings"

	"lessonshop/internal/models"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// likeEscaper makes a user query safe for a LIKE pattern with ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GORMLessonRepository is a GORM implementation of LessonRepository.
type GORMLessonRepository struct {
	db *gorm.DB
}

// NewGORMLessonRepository creates a new instance of GORMLessonRepository.
func NewGORMLessonRepository(db *gorm.DB) *GORMLessonRepository {
	return &GORMLessonRepository{
		db: db,
	}
}

// GetAll retrieves all lessons from the database.
func (r *GORMLessonRepository) GetAll(ctx context.Context) ([]models.Lesson, error) {
	var lessons []models.Lesson
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&lessons).Error; err != nil {
		return nil, errors.Wrap(err, "failed to get all lessons")
	}
	return lessons, nil
}

// GetByID retrieves a single lesson by its ID from the database.
func (r *GORMLessonRepository) GetByID(ctx context.Context, id string) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := r.db.WithContext(ctx).First(&lesson, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, lessonNotFound(id)
		}
		return nil, errors.Wrapf(err, "failed to get lesson by ID %s", id)
	}
	return &lesson, nil
}

// Create creates a new lesson in the database.
func (r *GORMLessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	if lesson.ID == "" {
		lesson.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(lesson).Error; err != nil {
		return errors.Wrap(err, "failed to create lesson")
	}
	return nil
}

// AdjustAvailability clamps in a single UPDATE so concurrent adjustments
// cannot lose each other's writes.
func (r *GORMLessonRepository) AdjustAvailability(ctx context.Context, id string, delta int) (*models.Lesson, error) {
	var lesson models.Lesson
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Lesson{}).
			Where("id = ?", id).
			Update("availability", sqlAvailabilityExpr(delta))
		if res.Error != nil {
			return errors.Wrapf(res.Error, "failed to adjust availability of lesson %s", id)
		}
		if res.RowsAffected == 0 {
			return lessonNotFound(id)
		}
		if err := tx.First(&lesson, "id = ?", id).Error; err != nil {
			return errors.Wrapf(err, "failed to reload lesson %s", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// sqlAvailabilityExpr clamps at zero and saturates at math.MaxInt. The branch is
// chosen in Go so the addition itself can never overflow the column.
func sqlAvailabilityExpr(delta int) clause.Expr {
	if delta > 0 {
		return gorm.Expr("CASE WHEN availability > ? THEN ? ELSE availability + ? END",
			math.MaxInt-delta, math.MaxInt, delta)
	}
	return gorm.Expr("CASE WHEN availability + ? < 0 THEN 0 ELSE availability + ? END", delta, delta)
}

// Search returns lessons whose subject or location contains query, ignoring case.
func (r *GORMLessonRepository) Search(ctx context.Context, query string) ([]models.Lesson, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	var lessons []models.Lesson
	err := r.db.WithContext(ctx).
		Where(`LOWER(subject) LIKE ? ESCAPE '\' OR LOWER(location) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("created_at, id").
		Find(&lessons).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to search lessons for %q", query)
	}
	return lessons, nil
}

// Count returns the number of stored lessons.
func (r *GORMLessonRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Lesson{}).Count(&n).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count lessons")
	}
	return n, nil
}
