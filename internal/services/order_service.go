package services

import (
	"context"
	"log"

	"lessonshop/internal/models"
	"lessonshop/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// CreateOrderInput is the create-order payload. Lines are stored as given:
// they are not checked against the lesson store.
type CreateOrderInput struct {
	Name    string             `json:"name" validate:"required"`
	Phone   string             `json:"phone" validate:"required"`
	Lessons []models.OrderLine `json:"lessons" validate:"required,min=1"`
	Total   any                `json:"total"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher Publisher
	validate  *validator.Validate
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, publisher Publisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		validate:  newValidator(),
	}
}

// GetAllOrders retrieves all orders, newest first.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// CreateOrder stores a new order. When total is absent it defaults to the
// sum of the line prices.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	fields := make(map[string]string)
	if err := fieldErrors(s.validate, in, fields); err != nil {
		return nil, err
	}
	total := LinesTotal(in.Lessons)
	if in.Total != nil {
		total = requireFloat(fields, "total", in.Total)
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Message: "Missing required fields", Fields: fields}
	}

	newOrder := &models.Order{
		Name:    in.Name,
		Phone:   in.Phone,
		Lessons: append([]models.OrderLine(nil), in.Lessons...),
		Total:   total,
	}
	if err := s.orderRepo.Create(ctx, newOrder); err != nil {
		return nil, err
	}
	log.Printf("Created order %s with %d lessons", newOrder.ID, len(newOrder.Lessons))

	publish(s.publisher, EventOrderCreated, OrderCreatedEvent{
		OrderID: newOrder.ID,
		Name:    newOrder.Name,
		Lessons: newOrder.Lessons,
		Total:   newOrder.Total,
	})
	return newOrder, nil
}

// LinesTotal sums line prices in decimal to avoid float drift.
func LinesTotal(lines []models.OrderLine) float64 {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromFloat(l.Price))
	}
	return sum.InexactFloat64()
}
