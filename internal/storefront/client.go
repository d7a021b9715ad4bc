package storefront

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"lessonshop/internal/models"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

var (
	// ErrNetwork marks requests that never produced a response.
	ErrNetwork = errors.New("network failure")
	// ErrUnexpectedStatus marks responses outside the 2xx range.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// OrderRequest is the body posted to create an order.
type OrderRequest struct {
	Name    string             `json:"name"`
	Phone   string             `json:"phone"`
	Lessons []models.OrderLine `json:"lessons"`
	Total   float64            `json:"total"`
}

// API is the subset of the lesson API the controller calls.
type API interface {
	ListLessons() ([]models.Lesson, error)
	ListOrders() ([]models.Order, error)
	CreateOrder(req OrderRequest) (*models.Order, error)
	AdjustAvailability(lessonID string, change int) (*models.Lesson, error)
}

// Client calls the lesson API over HTTP with fiber's client agent.
type Client struct {
	baseURL string
	timeout time.Duration
}

// NewClient returns a Client for an API rooted at baseURL, for example
// "http://localhost:3000/api". A zero timeout leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: timeout,
	}
}

// ListLessons fetches every lesson.
func (c *Client) ListLessons() ([]models.Lesson, error) {
	var lessons []models.Lesson
	if err := c.do(fiber.Get(c.baseURL+"/lessons"), &lessons); err != nil {
		return nil, errors.Wrap(err, "list lessons")
	}
	return lessons, nil
}

// ListOrders fetches every order, newest first.
func (c *Client) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(fiber.Get(c.baseURL+"/orders"), &orders); err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return orders, nil
}

// CreateOrder posts req and returns the stored order.
func (c *Client) CreateOrder(req OrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(fiber.Post(c.baseURL+"/orders").JSON(req), &order); err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	return &order, nil
}

// AdjustAvailability changes a lesson's stored availability by change.
func (c *Client) AdjustAvailability(lessonID string, change int) (*models.Lesson, error) {
	endpoint := fmt.Sprintf("%s/lessons/%s/availability", c.baseURL, url.PathEscape(lessonID))
	var lesson models.Lesson
	if err := c.do(fiber.Put(endpoint).JSON(fiber.Map{"change": change}), &lesson); err != nil {
		return nil, errors.Wrapf(err, "adjust availability of lesson %s", lessonID)
	}
	return &lesson, nil
}

func (c *Client) do(a *fiber.Agent, out any) error {
	if c.timeout > 0 {
		a.Timeout(c.timeout)
	}
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return errors.Mark(errors.Wrap(errs[0], "request failed"), ErrNetwork)
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return errors.Mark(errors.Newf("status %d: %s", code, body), ErrUnexpectedStatus)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
