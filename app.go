package main

import (
	"lessonshop/internal/config"
	"lessonshop/internal/database"
	"lessonshop/internal/handlers"
	"lessonshop/internal/middleware"
	"lessonshop/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// newApp wires services and handlers over stores. publisher may be nil.
func newApp(cfg config.Config, stores *database.Stores, publisher services.Publisher) *fiber.App {
	// --- Initialize Services ---
	lessonService := services.NewLessonService(stores.Lessons, publisher)
	orderService := services.NewOrderService(stores.Orders, publisher)

	// --- Initialize Handlers ---
	infoHandler := handlers.NewInfoHandler(stores.Driver)
	lessonHandler := handlers.NewLessonHandler(lessonService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{
		AppName:      "Lesson Management API",
		ErrorHandler: middleware.ErrorHandler,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New()) // Request logger
	app.Use(middleware.CORS(cfg.CORSAllowOrigins))

	// --- Routes ---
	infoHandler.RegisterRoutes(app)

	api := app.Group("/api")
	lessonHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)

	app.Use(middleware.NotFound())
	return app
}
