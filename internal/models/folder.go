package models

import (
	"fmt"
	"strings"
	"time"
)

// Folder groups messages. Password is a plaintext access gate, not real
// security; IsLocked is always derived from it.
type Folder struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	CreatedAt string  `json:"createdAt"`
	Password  *string `json:"password,omitempty"`
	IsLocked  bool    `json:"isLocked"`
}

// NewFolder validates and builds a folder. An empty password is treated the
// same as no password at all.
func NewFolder(name string, password *string) (Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Folder{}, fmt.Errorf("%w: folder needs a name", ErrValidation)
	}
	if password != nil && strings.TrimSpace(*password) == "" {
		password = nil
	}
	return Folder{
		ID:        NextID(),
		Name:      name,
		CreatedAt: time.Now().Format(TimeLayout),
		Password:  password,
		IsLocked:  password != nil,
	}, nil
}

// CheckPassword is the folder gate: exact plaintext match, trivially true for
// unlocked folders.
func (f Folder) CheckPassword(password string) bool {
	if f.Password == nil {
		return true
	}
	return *f.Password == password
}
