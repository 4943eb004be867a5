package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tracku/internal/config"
	"tracku/internal/handlers"
	"tracku/internal/middleware"
	"tracku/internal/models"
	"tracku/internal/repositories"
	"tracku/internal/services"
	"tracku/pkg/events"
)

func main() {
	cfg := config.Load()

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Project{}, &models.Update{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Activity event publisher (optional) ---
	var mqClient *events.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = events.NewClient(events.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, activity events disabled")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	projectRepo := repositories.NewGORMProjectRepository(db)
	updateRepo := repositories.NewGORMUpdateRepository(db)

	// --- Services ---
	tokenService := services.NewTokenService(cfg)
	authService := services.NewAuthService(userRepo, projectRepo, updateRepo, tokenService, mqClient)
	projectService := services.NewProjectService(projectRepo, updateRepo, mqClient)
	updateService := services.NewUpdateService(updateRepo, mqClient)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(authService, cfg)
	projectHandler := handlers.NewProjectHandler(projectService)
	updateHandler := handlers.NewUpdateHandler(updateService, projectService)

	// --- Fiber app ---
	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowCredentials: true,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        50,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests. Please try again in 1 minute",
			})
		},
	}))

	// --- Routes ---
	authRequired := middleware.AuthRequired(tokenService, userRepo)
	userHandler.RegisterRoutes(app, authRequired)
	projectHandler.RegisterRoutes(app, authRequired)
	updateHandler.RegisterRoutes(app, authRequired)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
