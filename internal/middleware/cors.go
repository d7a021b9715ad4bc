package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS applies the same cross-origin policy to every response.
func CORS(allowOrigins string) fiber.Handler {
	log.Printf("CORS middleware initialized (AllowOrigins: %s)", allowOrigins)
	return cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	})
}
