package view

import (
	"fmt"
	"sort"

	"wallboard-backend/internal/layout"
	"wallboard-backend/internal/models"
)

// PlacedMessage is a message with its resolved on-canvas position.
type PlacedMessage struct {
	Message  models.Message
	Position models.Position
}

// RenderPlan is what the UI draws for the active folder. Banner and EmptyText
// are mutually exclusive: the public view shows the pinned announcement
// instead of an empty-state line.
type RenderPlan struct {
	Banner    bool
	EmptyText string
	Notes     []PlacedMessage
}

// FolderTab is one entry in the folder strip, public tab included.
type FolderTab struct {
	FolderID *int64
	Name     string
	Locked   bool
	Active   bool
	Count    int
}

// VisibleMessages filters the snapshot to the active folder and sorts newest
// first (id descending).
func VisibleMessages(snap models.Snapshot, active *int64) []models.Message {
	msgs := snap.MessagesInFolder(active)
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].ID > msgs[j].ID
	})
	return msgs
}

// Render reconciles the snapshot into a draw plan for the active folder.
func (s State) Render(snap models.Snapshot) RenderPlan {
	public := s.PublicActive()
	plan := RenderPlan{Banner: public}

	msgs := VisibleMessages(snap, s.ActiveFolder)
	if len(msgs) == 0 {
		if public {
			// the banner stands in for the empty-state line
			return plan
		}
		name := "this"
		if folder, ok := snap.FindFolder(*s.ActiveFolder); ok {
			name = folder.Name
		}
		plan.EmptyText = fmt.Sprintf("No messages in the %s folder yet — be the first!", name)
		return plan
	}

	positions := layout.Place(s.Viewport, msgs, public)
	plan.Notes = make([]PlacedMessage, len(msgs))
	for i, m := range msgs {
		plan.Notes[i] = PlacedMessage{Message: m, Position: positions[i]}
	}
	return plan
}

// FolderTabs builds the folder strip: the permanent public tab first, then
// every folder in snapshot order, each with its message count.
func (s State) FolderTabs(snap models.Snapshot) []FolderTab {
	tabs := make([]FolderTab, 0, len(snap.Folders)+1)
	tabs = append(tabs, FolderTab{
		Name:   "Public",
		Active: s.PublicActive(),
		Count:  snap.CountInFolder(nil),
	})
	for _, f := range snap.Folders {
		id := f.ID
		tabs = append(tabs, FolderTab{
			FolderID: &id,
			Name:     f.Name,
			Locked:   f.IsLocked,
			Active:   s.ActiveFolder != nil && *s.ActiveFolder == f.ID,
			Count:    snap.CountInFolder(&id),
		})
	}
	return tabs
}
