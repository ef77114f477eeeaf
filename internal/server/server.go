package server

import (
	"github.com/flixnettv/flix-Xtreme-Panel/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func New(db *gorm.DB, cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Xtreme Panel API",
	})

	SetupRoutes(app, db, cfg)

	return app
}
