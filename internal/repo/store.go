package repo

import "wallboard-backend/internal/models"

// SnapshotStore is the document store contract: read the whole snapshot,
// write the whole snapshot. Write is a full replace, never a merge: callers
// clone the last known snapshot, patch the copy and write it back entire.
// Concurrent writers therefore get last-write-wins semantics on purpose.
type SnapshotStore interface {
	Read() (models.Snapshot, error)
	Write(models.Snapshot) error
}
