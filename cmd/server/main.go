package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/campusmart/internal/config"
	"github.com/example/campusmart/internal/database"
	"github.com/example/campusmart/internal/routes"
	"github.com/example/campusmart/internal/ws"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	app := fiber.New(fiber.Config{
		AppName: "CampusMart Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	app.Static("/uploads", cfg.UploadDir)

	hub := ws.NewHub()
	routes.Register(app, db, cfg, hub)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API is running")
	})

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
