package handlers

import (
	"log"

	"lessonshop/internal/repositories"
	"lessonshop/internal/services"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto status codes: validation 400,
// not found 404, anything else a generic 500 with the detail kept in the log.
func respondError(c *fiber.Ctx, err error, failure string) error {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": vErr.Message,
			"errors":  vErr.Fields,
		})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Not found",
			"error":   err.Error(),
		})
	default:
		log.Printf("%s: %+v", failure, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": failure,
		})
	}
}

func invalidBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body: %v", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}
