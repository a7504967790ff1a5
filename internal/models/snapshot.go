package models

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the complete board state at one instant. It is the only durable
// shape: stores persist it whole and clients repull it whole.
type Snapshot struct {
	Messages []Message `json:"messages"`
	Folders  []Folder  `json:"folders"`
}

func EmptySnapshot() Snapshot {
	return Snapshot{Messages: []Message{}, Folders: []Folder{}}
}

// Normalize fills optional fields older records may lack (nil comments) and
// rederives IsLocked from Password, so components never see ad hoc shapes.
func (s *Snapshot) Normalize() {
	if s.Messages == nil {
		s.Messages = []Message{}
	}
	if s.Folders == nil {
		s.Folders = []Folder{}
	}
	for i := range s.Messages {
		if s.Messages[i].Comments == nil {
			s.Messages[i].Comments = []Comment{}
		}
	}
	for i := range s.Folders {
		s.Folders[i].IsLocked = s.Folders[i].Password != nil
	}
}

// Clone deep-copies the snapshot so callers can patch a copy and write it
// back whole.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Messages: make([]Message, len(s.Messages)),
		Folders:  make([]Folder, len(s.Folders)),
	}
	for i, m := range s.Messages {
		if m.FolderID != nil {
			fid := *m.FolderID
			m.FolderID = &fid
		}
		if m.Position != nil {
			pos := *m.Position
			m.Position = &pos
		}
		m.Comments = append(make([]Comment, 0, len(m.Comments)), m.Comments...)
		out.Messages[i] = m
	}
	for i, f := range s.Folders {
		if f.Password != nil {
			pw := *f.Password
			f.Password = &pw
		}
		out.Folders[i] = f
	}
	return out
}

func (s Snapshot) FindMessage(id int64) (Message, bool) {
	for _, m := range s.Messages {
		if m.ID == id {
			return m, true
		}
	}
	return Message{}, false
}

func (s Snapshot) FindFolder(id int64) (Folder, bool) {
	for _, f := range s.Folders {
		if f.ID == id {
			return f, true
		}
	}
	return Folder{}, false
}

// MessagesInFolder filters to the given folder selector (nil selects the
// public bucket). Order is the snapshot's own.
func (s Snapshot) MessagesInFolder(folderID *int64) []Message {
	out := []Message{}
	for _, m := range s.Messages {
		if m.InFolder(folderID) {
			out = append(out, m)
		}
	}
	return out
}

func (s Snapshot) CountInFolder(folderID *int64) int {
	n := 0
	for _, m := range s.Messages {
		if m.InFolder(folderID) {
			n++
		}
	}
	return n
}

func (s *Snapshot) AppendMessage(m Message) {
	s.Messages = append(s.Messages, m)
}

// RemoveMessage filters out the id. Deleting an id that is already gone is a
// no-op, which keeps duplicate delete clicks harmless.
func (s *Snapshot) RemoveMessage(id int64) {
	kept := s.Messages[:0]
	for _, m := range s.Messages {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.Messages = kept
}

// PatchMessage shallow-merges the given JSON fields into the matching record
// and returns the result. Unknown ids yield ErrNotFound.
func (s *Snapshot) PatchMessage(id int64, patch map[string]json.RawMessage) (Message, error) {
	for i := range s.Messages {
		if s.Messages[i].ID == id {
			if err := mergeFields(&s.Messages[i], patch); err != nil {
				return Message{}, err
			}
			if s.Messages[i].Comments == nil {
				s.Messages[i].Comments = []Comment{}
			}
			return s.Messages[i], nil
		}
	}
	return Message{}, fmt.Errorf("message %d: %w", id, ErrNotFound)
}

func (s *Snapshot) AppendFolder(f Folder) {
	s.Folders = append(s.Folders, f)
}

// RemoveFolderCascade removes the folder and every message referencing it,
// so no dangling folderId survives a delete.
func (s *Snapshot) RemoveFolderCascade(id int64) {
	keptFolders := s.Folders[:0]
	for _, f := range s.Folders {
		if f.ID != id {
			keptFolders = append(keptFolders, f)
		}
	}
	s.Folders = keptFolders

	keptMessages := s.Messages[:0]
	for _, m := range s.Messages {
		if m.FolderID == nil || *m.FolderID != id {
			keptMessages = append(keptMessages, m)
		}
	}
	s.Messages = keptMessages
}

// PatchFolder shallow-merges fields into the matching folder, keeping the
// IsLocked invariant intact.
func (s *Snapshot) PatchFolder(id int64, patch map[string]json.RawMessage) (Folder, error) {
	for i := range s.Folders {
		if s.Folders[i].ID == id {
			if err := mergeFields(&s.Folders[i], patch); err != nil {
				return Folder{}, err
			}
			s.Folders[i].IsLocked = s.Folders[i].Password != nil
			return s.Folders[i], nil
		}
	}
	return Folder{}, fmt.Errorf("folder %d: %w", id, ErrNotFound)
}

// mergeFields overlays raw JSON fields onto an existing record via a JSON
// round trip, mirroring a spread-style shallow merge.
func mergeFields(dst any, patch map[string]json.RawMessage) error {
	base, err := json.Marshal(dst)
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return err
	}
	for k, v := range patch {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(merged, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
