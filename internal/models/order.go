package models

import "time"

// OrderLine is a frozen copy of a lesson taken at order time.
// It is not a live reference: later lesson changes never reach it.
type OrderLine struct {
	LessonID string  `json:"id"`
	Subject  string  `json:"subject"`
	Location string  `json:"location"`
	Price    float64 `json:"price"` // Price at the time of order
}

// Order represents a customer order. Orders are immutable once created.
type Order struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string      `json:"name" gorm:"type:varchar(255);not null"`
	Phone     string      `json:"phone" gorm:"type:varchar(64);not null"`
	Lessons   []OrderLine `json:"lessons" gorm:"serializer:json;type:text"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"created_at" gorm:"index"`
}
