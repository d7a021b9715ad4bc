// Package storefront is the client side of the lesson shop: it keeps the
// catalog, cart and order history a front end renders, and reconciles cart
// reservations with the server at checkout.
package storefront

import (
	"log"

	"lessonshop/internal/models"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

// View is the page the front end shows.
type View string

const (
	ViewLessons View = "lessons"
	ViewOrders  View = "orders"
)

// Alert messages shown to the user.
const (
	AlertOrderPlaced  = "Order placed successfully!"
	AlertOrderFailed  = "Failed to place order. Please try again."
	AlertNetworkError = "Error placing order. Please try again."
)

// Notifier shows a blocking message to the user.
type Notifier interface {
	Alert(message string)
}

// LogNotifier writes alerts to the standard logger.
type LogNotifier struct{}

// Alert logs message.
func (LogNotifier) Alert(message string) {
	log.Printf("ALERT: %s", message)
}

// OrderForm is the customer's draft contact details.
type OrderForm struct {
	Name  string
	Phone string
}

// CheckoutResult reports how each cart line settled.
type CheckoutResult struct {
	Order       models.Order
	Confirmed   []string // lesson ids whose server decrement succeeded
	Unconfirmed []string // lesson ids whose server decrement failed
}

// Controller holds client-side state. It is not safe for concurrent use;
// a front end drives it from a single event loop.
type Controller struct {
	api      API
	notifier Notifier

	lessons []models.Lesson
	cart    []*Reservation
	settled []*Reservation
	orders  []models.Order
	view    View

	Form OrderForm
}

// NewController creates a Controller. A nil notifier logs alerts.
func NewController(api API, notifier Notifier) *Controller {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Controller{
		api:      api,
		notifier: notifier,
		view:     ViewLessons,
	}
}

// Load fetches lessons and orders. When lessons cannot be fetched the
// sample catalog is shown instead; an order fetch failure leaves history empty.
func (c *Controller) Load() {
	lessons, err := c.api.ListLessons()
	if err != nil {
		log.Printf("Error fetching lessons, using sample catalog: %v", err)
		lessons = SampleCatalog()
	}
	c.lessons = lessons

	orders, err := c.api.ListOrders()
	if err != nil {
		log.Printf("Error fetching orders: %v", err)
		return
	}
	c.orders = orders
}

// Lessons returns a copy of the local lesson list, including local reservations.
func (c *Controller) Lessons() []models.Lesson {
	return append([]models.Lesson(nil), c.lessons...)
}

// Catalog returns the local lessons filtered by query and sorted.
func (c *Controller) Catalog(query string, key SortKey, order SortOrder) []models.Lesson {
	return FilterAndSort(c.lessons, query, key, order)
}

// Orders returns a copy of the order history, newest first.
func (c *Controller) Orders() []models.Order {
	return append([]models.Order(nil), c.orders...)
}

// View returns the current page.
func (c *Controller) View() View {
	return c.view
}

// Cart returns the lesson snapshots currently in the cart.
func (c *Controller) Cart() []models.Lesson {
	items := make([]models.Lesson, 0, len(c.cart))
	for _, r := range c.cart {
		items = append(items, r.Lesson)
	}
	return items
}

// Reservations returns the open cart lines, then the lines of the most
// recent checkout, then removals made since it. A completed checkout drops
// every earlier settled reservation.
func (c *Controller) Reservations() []Reservation {
	out := make([]Reservation, 0, len(c.cart)+len(c.settled))
	for _, r := range c.cart {
		out = append(out, *r)
	}
	for _, r := range c.settled {
		out = append(out, *r)
	}
	return out
}

// CartTotal is the exact sum of cart item prices.
func (c *Controller) CartTotal() float64 {
	sum := decimal.Zero
	for _, r := range c.cart {
		sum = sum.Add(decimal.NewFromFloat(r.Lesson.Price))
	}
	return sum.InexactFloat64()
}

// AddToCart reserves one place on lesson locally. It is a no-op when the
// lesson has no availability or is already in the cart. The server is not
// contacted until checkout.
func (c *Controller) AddToCart(lesson models.Lesson) bool {
	idx := c.lessonIndex(lesson.ID)
	if idx >= 0 {
		lesson = c.lessons[idx]
	}
	if lesson.Availability <= 0 || c.cartIndex(lesson.ID) >= 0 {
		return false
	}

	c.cart = append(c.cart, newReservation(lesson))
	if idx >= 0 {
		c.lessons[idx].Availability--
	}
	return true
}

// RemoveFromCart drops the line for lessonID and undoes its local reservation.
func (c *Controller) RemoveFromCart(lessonID string) bool {
	i := c.cartIndex(lessonID)
	if i < 0 {
		return false
	}
	r := c.cart[i]
	if err := r.transition(StateReverted); err != nil {
		log.Printf("Error reverting reservation: %v", err)
		return false
	}
	if idx := c.lessonIndex(lessonID); idx >= 0 {
		c.lessons[idx].Availability++
	}
	c.cart = append(c.cart[:i], c.cart[i+1:]...)
	c.settled = append(c.settled, r)
	return true
}

// Checkout posts the cart as an order, then decrements each line's stored
// availability one request at a time.
//
// If the order post fails, nothing changes: the cart and form stay, and local
// availability keeps its optimistic decrements. Once the order is stored, a
// failed decrement is logged and the loop moves on; there is no rollback.
// The cart and form are then cleared whatever the decrements returned.
// An empty cart is a no-op and returns nil, nil.
func (c *Controller) Checkout() (*CheckoutResult, error) {
	if len(c.cart) == 0 {
		return nil, nil
	}

	req := OrderRequest{
		Name:    c.Form.Name,
		Phone:   c.Form.Phone,
		Lessons: make([]models.OrderLine, 0, len(c.cart)),
		Total:   c.CartTotal(),
	}
	for _, r := range c.cart {
		req.Lessons = append(req.Lessons, r.Lesson.Snapshot())
	}

	order, err := c.api.CreateOrder(req)
	if err != nil {
		log.Printf("Error placing order: %v", err)
		if errors.Is(err, ErrUnexpectedStatus) {
			c.notifier.Alert(AlertOrderFailed)
		} else {
			c.notifier.Alert(AlertNetworkError)
		}
		return nil, err
	}
	c.orders = append([]models.Order{*order}, c.orders...)

	result := &CheckoutResult{Order: *order}
	for _, r := range c.cart {
		if _, err := c.api.AdjustAvailability(r.Lesson.ID, -1); err != nil {
			log.Printf("Error updating lesson availability: %v", err)
			result.Unconfirmed = append(result.Unconfirmed, r.Lesson.ID)
			continue
		}
		if err := r.transition(StateConfirmed); err != nil {
			log.Printf("Error confirming reservation: %v", err)
			continue
		}
		result.Confirmed = append(result.Confirmed, r.Lesson.ID)
	}

	c.settled = c.cart
	c.cart = nil
	c.Form = OrderForm{}

	c.notifier.Alert(AlertOrderPlaced)
	c.view = ViewOrders
	return result, nil
}

func (c *Controller) lessonIndex(id string) int {
	for i := range c.lessons {
		if c.lessons[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) cartIndex(id string) int {
	for i, r := range c.cart {
		if r.Lesson.ID == id {
			return i
		}
	}
	return -1
}
