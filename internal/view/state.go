// Package view is the client-side reconciliation of a synchronized snapshot
// into a renderable board: filtering by active folder, grid placement,
// folder-tab pagination and the drag lifecycle. It renders nothing itself;
// it produces plans a UI can draw.
package view

import (
	"wallboard-backend/internal/layout"
)

// State is the single view-state record. Interactive handlers never mutate a
// State in place: every operation returns a replacement, so a resize handler
// and a drag handler can never race on shared fields.
type State struct {
	ActiveFolder *int64
	// FolderLocked is the editorial lock: set while a password-verified
	// folder is open, it disables drag and expand/collapse. It gates the UI
	// only; the records stay mutable through the API.
	FolderLocked bool
	Page         int
	Viewport     layout.Viewport
	Drag         *DragState
}

func NewState(v layout.Viewport) State {
	return State{Viewport: v}
}

// WithViewport replaces the viewport after a resize.
func (s State) WithViewport(v layout.Viewport) State {
	s.Viewport = v
	return s
}

func (s State) PublicActive() bool {
	return s.ActiveFolder == nil
}
