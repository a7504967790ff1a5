package view

import (
	"errors"
	"fmt"

	"wallboard-backend/internal/models"
)

// ErrAccessDenied marks a failed folder-gate challenge. The in-progress
// action aborts and nothing is mutated.
var ErrAccessDenied = errors.New("access denied")

// SwitchFolder moves the view to another folder. A locked folder demands its
// password right here; on mismatch the state is returned unchanged. The
// verified flag lives only in the returned state, never in the snapshot.
func (s State) SwitchFolder(snap models.Snapshot, folderID *int64, password string) (State, error) {
	if folderID == nil {
		s.ActiveFolder = nil
		s.FolderLocked = false
		s.Drag = nil
		return s, nil
	}

	folder, ok := snap.FindFolder(*folderID)
	if !ok {
		return s, fmt.Errorf("folder %d: %w", *folderID, models.ErrNotFound)
	}
	if folder.IsLocked && !folder.CheckPassword(password) {
		return s, fmt.Errorf("wrong password for folder %q: %w", folder.Name, ErrAccessDenied)
	}

	id := *folderID
	s.ActiveFolder = &id
	s.FolderLocked = folder.IsLocked
	s.Drag = nil
	return s, nil
}

// GateFolderAction guards destructive actions (delete, rename) on a locked
// folder. The password is demanded at the moment of the action, independent
// of whether the folder is currently open.
func GateFolderAction(folder models.Folder, password string) error {
	if folder.IsLocked && !folder.CheckPassword(password) {
		return fmt.Errorf("wrong password for folder %q: %w", folder.Name, ErrAccessDenied)
	}
	return nil
}
