package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// InfoHandler serves the service descriptor and health check.
type InfoHandler struct {
	storeDriver string
}

// NewInfoHandler creates a new InfoHandler.
func NewInfoHandler(storeDriver string) *InfoHandler {
	return &InfoHandler{storeDriver: storeDriver}
}

// RegisterRoutes registers "/" and "/health".
func (h *InfoHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleRoot)
	router.Get("/health", h.HandleHealth)
}

// HandleRoot describes the API.
func (h *InfoHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Lesson Management API",
		"version": "1.0.0",
		"endpoints": fiber.Map{
			"lessons": "/api/lessons",
			"orders":  "/api/orders",
		},
	})
}

// HandleHealth reports liveness.
func (h *InfoHandler) HandleHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
		"store":  h.storeDriver,
	})
}
