package routes

import (
	v1 "wallboard-backend/internal/api/routes/v1"
	"wallboard-backend/internal/libraries"
	"wallboard-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

func Register(app *fiber.App, store repo.SnapshotStore, hub *libraries.Hub) {
	// API v1 group
	api := app.Group("/api")
	v1Group := api.Group("/v1")

	// Register v1 routes
	v1.RegisterRoutes(v1Group, store, hub)

	// Push channel
	app.Get("/ws", libraries.WebSocketHandler(hub))
}
