package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"

	"wallboard-backend/internal/libraries"
	"wallboard-backend/internal/models"
	"wallboard-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

// for simple read-modify-write operations a service layer is not required
type WallHandler struct {
	store repo.SnapshotStore
	hub   libraries.Broadcaster
}

func NewWallHandler(store repo.SnapshotStore, hub libraries.Broadcaster) *WallHandler {
	return &WallHandler{
		store: store,
		hub:   hub,
	}
}

// GetData returns the full snapshot.
func (h *WallHandler) GetData(c *fiber.Ctx) error {
	snap, err := h.store.Read()
	if err != nil {
		log.Println(err, "Error reading snapshot")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read data",
		})
	}
	return c.Status(fiber.StatusOK).JSON(snap)
}

// SaveData fully replaces the stored snapshot with the request body. The
// caller is expected to have read, cloned and patched the latest snapshot;
// two racing callers overwrite each other wholesale.
func (h *WallHandler) SaveData(c *fiber.Ctx) error {
	var snap models.Snapshot
	if err := c.BodyParser(&snap); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	snap.Normalize()

	if err := h.store.Write(snap); err != nil {
		log.Println(err, "Error writing snapshot")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save data",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

// CreateMessage appends one message and broadcasts it.
func (h *WallHandler) CreateMessage(c *fiber.Ctx) error {
	var msg models.Message
	if err := c.BodyParser(&msg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if msg.ID == 0 {
		msg.ID = models.NextID()
	}
	if msg.Comments == nil {
		msg.Comments = []models.Comment{}
	}

	snap, err := h.store.Read()
	if err != nil {
		log.Println(err, "Error reading snapshot")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add message",
		})
	}
	snap.AppendMessage(msg)

	if err := h.store.Write(snap); err != nil {
		log.Println(err, "Error writing snapshot")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add message",
		})
	}

	h.hub.BroadcastEvent(libraries.EventNewMessage, msg)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": msg,
	})
}

// DeleteMessage removes a message by id. A second delete of the same id is a
// no-op so duplicate clicks stay harmless.
func (h *WallHandler) DeleteMessage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid message id",
		})
	}

	snap, err := h.store.Read()
	if err != nil {
		log.Println(err, "Error reading snapshot")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete message",
		})
	}
	snap.RemoveMessage(id)

	if err := h.store.Write(snap); err != nil {
		log.Println(err, "Error writing snapshot")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete message",
		})
	}

	h.hub.BroadcastEvent(libraries.EventDeleteMessage, id)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

// UpdateMessage shallow-merges the body fields into the matching record.
func (h *WallHandler) UpdateMessage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid message id",
		})
	}

	var patch map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	snap, err := h.store.Read()
	if err != nil {
		log.Println(err, "Error reading snapshot")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update message",
		})
	}

	msg, err := snap.PatchMessage(id, patch)
	if errors.Is(err, models.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Message not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid message fields",
		})
	}

	if err := h.store.Write(snap); err != nil {
		log.Println(err, "Error writing snapshot")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update message",
		})
	}

	h.hub.BroadcastEvent(libraries.EventUpdateMessage, msg)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": msg,
	})
}

// CreateFolder appends one folder and broadcasts it.
func (h *WallHandler) CreateFolder(c *fiber.Ctx) error {
	var folder models.Folder
	if err := c.BodyParser(&folder); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if folder.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Folder name is required",
		})
	}
	if folder.ID == 0 {
		folder.ID = models.NextID()
	}
	folder.IsLocked = folder.Password != nil

	snap, err := h.store.Read()
	if err != nil {
		log.Println(err, "Error reading snapshot")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add folder",
		})
	}
	snap.AppendFolder(folder)

	if err := h.store.Write(snap); err != nil {
		log.Println(err, "Error writing snapshot")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add folder",
		})
	}

	h.hub.BroadcastEvent(libraries.EventNewFolder, folder)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"folder":  folder,
	})
}

// DeleteFolder removes a folder and cascades to every message inside it. The
// clients' repull picks up the message-list change.
func (h *WallHandler) DeleteFolder(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid folder id",
		})
	}

	snap, err := h.store.Read()
	if err != nil {
		log.Println(err, "Error reading snapshot")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete folder",
		})
	}
	snap.RemoveFolderCascade(id)

	if err := h.store.Write(snap); err != nil {
		log.Println(err, "Error writing snapshot")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete folder",
		})
	}

	h.hub.BroadcastEvent(libraries.EventDeleteFolder, id)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}

// UpdateFolder shallow-merges the body fields into the matching folder. No
// broadcast: folder renames surface through the next repull.
func (h *WallHandler) UpdateFolder(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid folder id",
		})
	}

	var patch map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	snap, err := h.store.Read()
	if err != nil {
		log.Println(err, "Error reading snapshot")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update folder",
		})
	}

	folder, err := snap.PatchFolder(id, patch)
	if errors.Is(err, models.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Folder not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid folder fields",
		})
	}

	if err := h.store.Write(snap); err != nil {
		log.Println(err, "Error writing snapshot")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update folder",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"folder":  folder,
	})
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
