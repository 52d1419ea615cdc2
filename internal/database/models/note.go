package models

import (
	"time"

	"github.com/google/uuid"

	"booknotes/internal/notepolicy"
)

type Note struct {
	ID        uuid.UUID           `json:"id"`
	Title     string              `json:"title"`
	Content   string              `json:"content"`
	Type      notepolicy.NoteType `json:"type"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	UserID    uuid.UUID           `json:"user_id"`
}

// Draft returns the fields the note policy checks before a note is stored.
func (n *Note) Draft() notepolicy.Draft {
	return notepolicy.Draft{Title: n.Title, Content: n.Content, Type: n.Type}
}

// NoteFilter narrows and pages a user's notes.
type NoteFilter struct {
	Type      notepolicy.NoteType
	Page      int
	PageSize  int
	Ascending bool
}
