package handlers

import (
	"net/url"

	"lessonshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// LessonHandler handles HTTP requests for lessons.
type LessonHandler struct {
	service *services.LessonService
}

// NewLessonHandler creates a new LessonHandler.
func NewLessonHandler(service *services.LessonService) *LessonHandler {
	return &LessonHandler{
		service: service,
	}
}

// RegisterRoutes registers the lesson routes with the Fiber app.
func (h *LessonHandler) RegisterRoutes(router fiber.Router) {
	lessonRoutes := router.Group("/lessons")
	lessonRoutes.Get("/", h.HandleGetLessons)
	lessonRoutes.Post("/", h.HandleCreateLesson)
	lessonRoutes.Get("/search/:query", h.HandleSearchLessons)
	lessonRoutes.Get("/:id", h.HandleGetLessonByID)
	lessonRoutes.Put("/:id/availability", h.HandleAdjustAvailability)
}

// HandleGetLessons retrieves all lessons.
func (h *LessonHandler) HandleGetLessons(c *fiber.Ctx) error {
	lessons, err := h.service.GetAllLessons(c.UserContext())
	if err != nil {
		return respondError(c, err, "Failed to fetch lessons")
	}
	return c.JSON(lessons)
}

// HandleGetLessonByID retrieves a single lesson by its ID.
func (h *LessonHandler) HandleGetLessonByID(c *fiber.Ctx) error {
	lesson, err := h.service.GetLessonByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to fetch lesson")
	}
	return c.JSON(lesson)
}

// HandleCreateLesson creates a new lesson.
func (h *LessonHandler) HandleCreateLesson(c *fiber.Ctx) error {
	var input services.CreateLessonInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	lesson, err := h.service.CreateLesson(c.UserContext(), input)
	if err != nil {
		return respondError(c, err, "Failed to create lesson")
	}
	return c.Status(fiber.StatusCreated).JSON(lesson)
}

// HandleAdjustAvailability applies {"change": n} to a lesson's availability.
func (h *LessonHandler) HandleAdjustAvailability(c *fiber.Ctx) error {
	var input services.AdjustAvailabilityInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	lesson, err := h.service.AdjustAvailability(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return respondError(c, err, "Failed to update lesson availability")
	}
	return c.JSON(lesson)
}

// HandleSearchLessons returns lessons whose subject or location contains the query.
func (h *LessonHandler) HandleSearchLessons(c *fiber.Ctx) error {
	query, err := url.PathUnescape(c.Params("query"))
	if err != nil {
		query = c.Params("query")
	}

	lessons, err := h.service.SearchLessons(c.UserContext(), query)
	if err != nil {
		return respondError(c, err, "Failed to search lessons")
	}
	return c.JSON(lessons)
}
