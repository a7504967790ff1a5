package v1

import (
	"wallboard-backend/internal/libraries"
	"wallboard-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, store repo.SnapshotStore, hub *libraries.Hub) {
	registerHealth(r)
	registerWall(r, store, hub)
}
