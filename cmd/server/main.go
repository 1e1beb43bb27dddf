package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"eksporyuk-api/internal/adapters/http/middleware"
	"eksporyuk-api/internal/adapters/http/routes"
	"eksporyuk-api/internal/adapters/persistence/models"
	"eksporyuk-api/internal/adapters/persistence/repositories"
	"eksporyuk-api/internal/config"
	"eksporyuk-api/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// @title EksporYuk API
// @version 1.0
// @description Membership, course and affiliate commission platform API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@eksporyuk.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.eksporyuk.com
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed admin user and commission defaults
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed defaults: %v", err)
	}

	// Seed sample catalog data (dev only)
	if cfg.IsDev() {
		if err := config.SeedCatalogData(db); err != nil {
			log.Printf("⚠️ Warning: Failed to seed catalog data: %v", err)
		}
	}

	// Start Cron Service for the scheduled access lock sweep
	accessService := services.NewAccessLockService(
		repositories.NewMembershipGrantRepository(db),
		repositories.NewCourseEnrollmentRepository(db),
		repositories.NewMembershipRepository(db),
		repositories.NewCourseRepository(db),
	)
	cronService := services.NewCronService(accessService, cfg)
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron service: %v", err)
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "EksporYuk API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
