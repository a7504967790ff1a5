package models

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// NoteColors is the fixed sticky-note palette. A color is picked at creation
// and never changes afterwards.
var NoteColors = []string{"yellow", "green", "blue", "pink", "purple", "orange"}

// MaxImageBytes caps inline data-URI images at 5MB.
const MaxImageBytes = 5 * 1024 * 1024

// TimeLayout is the human-readable creation timestamp format.
const TimeLayout = "2006/01/02 15:04:05"

type Position struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

type Comment struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Time string `json:"time"`
}

// Message is one sticky note on the board. FolderID nil means the note lives
// in the public bucket. Position is nil until the layout engine or a user
// drag has placed it.
type Message struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	Image    string    `json:"image,omitempty"`
	Time     string    `json:"time"`
	Color    string    `json:"color"`
	FolderID *int64    `json:"folderId"`
	Comments []Comment `json:"comments"`
	Position *Position `json:"position,omitempty"`
	Expanded bool      `json:"expanded"`
}

// NewMessage validates and builds a note. A note needs text or an image.
func NewMessage(text, image string, folderID *int64) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" && image == "" {
		return Message{}, fmt.Errorf("%w: message needs text or an image", ErrValidation)
	}
	if len(image) > MaxImageBytes {
		return Message{}, fmt.Errorf("%w: image larger than 5MB", ErrValidation)
	}
	return Message{
		ID:       NextID(),
		Text:     text,
		Image:    image,
		Time:     time.Now().Format(TimeLayout),
		Color:    NoteColors[rand.Intn(len(NoteColors))],
		FolderID: folderID,
		Comments: []Comment{},
	}, nil
}

// NewComment validates and builds a comment for appending to a message.
func NewComment(text string) (Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Comment{}, fmt.Errorf("%w: comment needs text", ErrValidation)
	}
	return Comment{
		ID:   NextID(),
		Text: text,
		Time: time.Now().Format(TimeLayout),
	}, nil
}

// InFolder reports whether the message belongs to the given folder selector.
// A nil selector matches the public bucket.
func (m Message) InFolder(folderID *int64) bool {
	if folderID == nil {
		return m.FolderID == nil
	}
	return m.FolderID != nil && *m.FolderID == *folderID
}
