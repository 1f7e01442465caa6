package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/sraws-app/sraws/backend/internal/delivery"
	"github.com/sraws-app/sraws/backend/internal/router"
	"github.com/sraws-app/sraws/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Push channel registry shared by the notifier and the websocket endpoint
	hub := delivery.NewHub()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, hub)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
