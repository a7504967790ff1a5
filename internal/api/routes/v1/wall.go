package v1

import (
	"wallboard-backend/internal/handlers"
	"wallboard-backend/internal/libraries"
	"wallboard-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

func registerWall(r fiber.Router, store repo.SnapshotStore, hub *libraries.Hub) {
	// Initialize handler
	wallHandler := handlers.NewWallHandler(store, hub)

	// Register routes
	r.Get("/data", wallHandler.GetData)
	r.Post("/data", wallHandler.SaveData)
	r.Post("/messages", wallHandler.CreateMessage)
	r.Delete("/messages/:id", wallHandler.DeleteMessage)
	r.Put("/messages/:id", wallHandler.UpdateMessage)
	r.Post("/folders", wallHandler.CreateFolder)
	r.Delete("/folders/:id", wallHandler.DeleteFolder)
	r.Put("/folders/:id", wallHandler.UpdateFolder)
}
