package view

import (
	"fmt"
	"strings"

	"wallboard-backend/internal/layout"
	"wallboard-backend/internal/models"
)

// The functions here express user intents as full next snapshots: clone the
// last known snapshot, patch the copy, hand it back for a whole-snapshot
// push. None of them touch the input snapshot.

// SubmitMessage validates and appends a new note to the active folder. Its
// grid position is assigned now, from its rank at the end of the folder, so
// the note keeps its cell even as newer notes arrive.
func (s State) SubmitMessage(snap models.Snapshot, text, image string) (models.Snapshot, models.Message, error) {
	msg, err := models.NewMessage(text, image, s.ActiveFolder)
	if err != nil {
		return snap, models.Message{}, err
	}

	rank := snap.CountInFolder(s.ActiveFolder)
	pos := layout.GridPosition(s.Viewport, rank, s.PublicActive())
	msg.Position = &pos

	next := snap.Clone()
	next.AppendMessage(msg)
	return next, msg, nil
}

// AddComment appends a comment to a message. Comments are append-only.
func AddComment(snap models.Snapshot, messageID int64, text string) (models.Snapshot, error) {
	comment, err := models.NewComment(text)
	if err != nil {
		return snap, err
	}

	next := snap.Clone()
	for i := range next.Messages {
		if next.Messages[i].ID == messageID {
			next.Messages[i].Comments = append(next.Messages[i].Comments, comment)
			return next, nil
		}
	}
	return snap, fmt.Errorf("message %d: %w", messageID, models.ErrNotFound)
}

// ToggleExpanded flips a note's expand state so it survives reloads. A no-op
// under the editorial lock.
func (s State) ToggleExpanded(snap models.Snapshot, messageID int64) (models.Snapshot, bool) {
	if s.FolderLocked {
		return snap, false
	}
	next := snap.Clone()
	for i := range next.Messages {
		if next.Messages[i].ID == messageID {
			next.Messages[i].Expanded = !next.Messages[i].Expanded
			return next, true
		}
	}
	return snap, false
}

// SavePosition persists a drag-settled position. Once set, the layout engine
// never recomputes it.
func SavePosition(snap models.Snapshot, messageID int64, pos models.Position) (models.Snapshot, error) {
	next := snap.Clone()
	for i := range next.Messages {
		if next.Messages[i].ID == messageID {
			p := pos
			next.Messages[i].Position = &p
			return next, nil
		}
	}
	return snap, fmt.Errorf("message %d: %w", messageID, models.ErrNotFound)
}

// MoveMessageToFolder reassigns a note to another folder (nil for public).
// This is a move, not a copy: the note's position is cleared so the grid
// assigns it a fresh cell in the target folder.
func MoveMessageToFolder(snap models.Snapshot, messageID int64, folderID *int64) (models.Snapshot, error) {
	next := snap.Clone()
	for i := range next.Messages {
		if next.Messages[i].ID == messageID {
			if folderID != nil {
				id := *folderID
				next.Messages[i].FolderID = &id
			} else {
				next.Messages[i].FolderID = nil
			}
			next.Messages[i].Position = nil
			return next, nil
		}
	}
	return snap, fmt.Errorf("message %d: %w", messageID, models.ErrNotFound)
}

// MakeMessagePublic moves a note from a private folder back to the public
// bucket.
func MakeMessagePublic(snap models.Snapshot, messageID int64) (models.Snapshot, error) {
	return MoveMessageToFolder(snap, messageID, nil)
}

// DeleteMessage filters a note out. Deleting an already-gone id is a no-op,
// so a duplicated click cannot fail.
func DeleteMessage(snap models.Snapshot, messageID int64) models.Snapshot {
	next := snap.Clone()
	next.RemoveMessage(messageID)
	return next
}

// CreateFolder validates and appends a folder.
func CreateFolder(snap models.Snapshot, name string, password *string) (models.Snapshot, models.Folder, error) {
	folder, err := models.NewFolder(name, password)
	if err != nil {
		return snap, models.Folder{}, err
	}
	next := snap.Clone()
	next.AppendFolder(folder)
	return next, folder, nil
}

// RenameFolder renames a folder, re-challenging the gate when it is locked.
func RenameFolder(snap models.Snapshot, folderID int64, newName, password string) (models.Snapshot, error) {
	folder, ok := snap.FindFolder(folderID)
	if !ok {
		return snap, fmt.Errorf("folder %d: %w", folderID, models.ErrNotFound)
	}
	if err := GateFolderAction(folder, password); err != nil {
		return snap, err
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return snap, fmt.Errorf("%w: folder needs a name", models.ErrValidation)
	}

	next := snap.Clone()
	for i := range next.Folders {
		if next.Folders[i].ID == folderID {
			next.Folders[i].Name = newName
		}
	}
	return next, nil
}

// DeleteFolder removes a folder and its messages, re-challenging the gate
// when it is locked. The returned state leaves the folder if it was active.
func (s State) DeleteFolder(snap models.Snapshot, folderID int64, password string) (State, models.Snapshot, error) {
	folder, ok := snap.FindFolder(folderID)
	if !ok {
		return s, snap, fmt.Errorf("folder %d: %w", folderID, models.ErrNotFound)
	}
	if err := GateFolderAction(folder, password); err != nil {
		return s, snap, err
	}

	next := snap.Clone()
	next.RemoveFolderCascade(folderID)

	if s.ActiveFolder != nil && *s.ActiveFolder == folderID {
		s.ActiveFolder = nil
		s.FolderLocked = false
		s.Drag = nil
	}
	return s, next, nil
}
