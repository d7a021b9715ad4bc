package models

import "time"

// Lesson represents a bookable lesson in the catalog.
type Lesson struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Subject      string    `json:"subject" gorm:"type:varchar(255);not null"`
	Location     string    `json:"location" gorm:"type:varchar(255);not null"`
	Price        float64   `json:"price"`
	Availability int       `json:"availability"` // Never negative, clamped at zero
	CreatedAt    time.Time `json:"created_at"`
}

// Snapshot returns the order line view of the lesson at this moment.
func (l Lesson) Snapshot() OrderLine {
	return OrderLine{
		LessonID: l.ID,
		Subject:  l.Subject,
		Location: l.Location,
		Price:    l.Price,
	}
}
