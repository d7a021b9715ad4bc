package services

import (
	"log"

	"lessonshop/internal/models"
)

// Routing keys for domain events.
const (
	EventOrderCreated        = "order.created"
	EventAvailabilityChanged = "lesson.availability_changed"
)

// Publisher sends domain events to a message broker.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

// OrderCreatedEvent is published after an order is stored.
type OrderCreatedEvent struct {
	OrderID string             `json:"order_id"`
	Name    string             `json:"name"`
	Lessons []models.OrderLine `json:"lessons"`
	Total   float64            `json:"total"`
}

// AvailabilityChangedEvent is published after a lesson's availability is adjusted.
type AvailabilityChangedEvent struct {
	LessonID     string `json:"lesson_id"`
	Change       int    `json:"change"`
	Availability int    `json:"availability"`
}

// publish never fails the caller; broker problems are only logged.
func publish(p Publisher, routingKey string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(routingKey, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
