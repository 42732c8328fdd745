package main

import (
	"log"
	"os"

	"hydrolink/auth"
	"hydrolink/config"
	"hydrolink/db"
	"hydrolink/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()

	auth.Configure(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize database
	if err := db.Init(cfg.DBPath); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Create uploads directory if it doesn't exist
	if _, err := os.Stat(cfg.UploadDir); os.IsNotExist(err) {
		os.Mkdir(cfg.UploadDir, 0755)
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Serve static files
	app.Static("/uploads", "./"+cfg.UploadDir)

	// Setup routes
	routes.SetupRoutes(app, cfg)

	// Start server
	log.Fatal(app.Listen(":" + cfg.Port))
}
