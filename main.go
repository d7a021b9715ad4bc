package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"lessonshop/internal/config"
	"lessonshop/internal/database"
	"lessonshop/internal/services"
	"lessonshop/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Store ---
	// A store that cannot be reached is fatal; the service never runs degraded.
	ctx := context.Background()
	stores, err := database.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("Failed to connect to %s store: %v", cfg.Store.Driver, err)
	}

	if cfg.SeedSampleData {
		n, err := services.SeedSampleLessons(ctx, stores.Lessons)
		if err != nil {
			log.Printf("Error seeding sample lessons: %v", err)
		} else if n > 0 {
			log.Printf("Sample lessons inserted: %d", n)
		}
	}

	// --- RabbitMQ (optional) ---
	var publisher services.Publisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		log.Println("Starting RabbitMQ consumer for lesson events...")
		if err := mqClient.ConsumeEvents(rabbitmq.LogEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	app := newApp(cfg, stores, publisher)

	// --- Start HTTP Server ---
	log.Printf("Server running on port %s (store: %s)", cfg.Port, stores.Driver)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Addr()); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := stores.Close(closeCtx); err != nil {
		log.Printf("Error closing %s store: %v", stores.Driver, err)
	}

	log.Println("Server gracefully stopped")
}
