package models

import (
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NextID returns a wall-clock millisecond id. Two calls inside the same tick
// bump past the previous id instead of colliding, so ids remain strictly
// increasing and keep working as creation-order sort keys.
func NextID() int64 {
	idMu.Lock()
	defer idMu.Unlock()
	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}
