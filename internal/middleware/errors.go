package middleware

import (
	"log"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

// NotFound answers every request no route matched. Register it last.
func NotFound() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	}
}

// ErrorHandler is the fiber.Config ErrorHandler. Errors that escape a handler
// (including recovered panics) become a generic JSON 500; fiber's own
// status errors keep their code.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code != fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
		})
	}
	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Something went wrong!",
	})
}
