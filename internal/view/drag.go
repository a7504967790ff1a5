package view

import (
	"wallboard-backend/internal/layout"
	"wallboard-backend/internal/models"
)

// DragState tracks one in-flight gesture. Origin is the note's pre-drag
// position; X and Y follow the pointer, clamped.
type DragState struct {
	MessageID int64
	Origin    models.Position
	X         float64
	Y         float64
}

// DragOutcome says what a finished gesture means. Exactly one of MoveTo
// (persist a folder reassignment) or SnapBack (purely visual, persist
// nothing) applies.
type DragOutcome struct {
	MessageID int64
	MoveTo    *int64
	Moved     bool
	SnapBack  bool
}

// BeginDrag starts a gesture. Under the editorial lock of a verified folder
// dragging is disabled and the state comes back unchanged.
func (s State) BeginDrag(messageID int64, origin models.Position) (State, bool) {
	if s.FolderLocked {
		return s, false
	}
	s.Drag = &DragState{
		MessageID: messageID,
		Origin:    origin,
		X:         origin.X,
		Y:         origin.Y,
	}
	return s, true
}

// MoveDrag follows the pointer, clamped to the drag square around the origin
// and to the canvas bounds. Frame coalescing is the renderer's concern, not
// the state's.
func (s State) MoveDrag(x, y float64, canvas layout.Rect) State {
	if s.Drag == nil {
		return s
	}
	cx, cy := layout.ClampDrag(s.Drag.Origin.X, s.Drag.Origin.Y, x, y, canvas)
	drag := *s.Drag
	drag.X = cx
	drag.Y = cy
	s.Drag = &drag
	return s
}

// EndDrag finishes the gesture. The pointer's final screen position is
// hit-tested against the rendered folder tabs: landing on a folder different
// from the note's current one yields a move, anything else snaps the note
// back to its origin with nothing persisted.
func (s State) EndDrag(snap models.Snapshot, tabs []layout.Tab, pointerX, pointerY float64) (State, DragOutcome) {
	if s.Drag == nil {
		return s, DragOutcome{}
	}
	outcome := DragOutcome{MessageID: s.Drag.MessageID}
	s.Drag = nil

	msg, ok := snap.FindMessage(outcome.MessageID)
	if !ok {
		outcome.SnapBack = true
		return s, outcome
	}

	target, hit := layout.HitTab(tabs, pointerX, pointerY)
	if hit && !msg.InFolder(target) {
		outcome.Moved = true
		outcome.MoveTo = target
		return s, outcome
	}

	outcome.SnapBack = true
	return s, outcome
}
