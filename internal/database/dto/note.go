package dto

import (
	"time"

	"github.com/google/uuid"

	"booknotes/internal/database/models"
	"booknotes/internal/notepolicy"
)

type CreateNoteRequest struct {
	Title   string              `json:"title"`
	Type    notepolicy.NoteType `json:"type"`
	Content string              `json:"content"`
}

// IndexNote is the list representation of a note.
type IndexNote struct {
	ID            uuid.UUID                `json:"id"`
	Title         string                   `json:"title"`
	Type          notepolicy.NoteType      `json:"type"`
	ContentLength notepolicy.ContentLength `json:"content_length"`
	CreatedAt     time.Time                `json:"created_at"`
}

// ShowNote is the detailed representation of a note.
type ShowNote struct {
	ID            uuid.UUID                `json:"id"`
	Title         string                   `json:"title"`
	Type          notepolicy.NoteType      `json:"type"`
	Content       string                   `json:"content"`
	WordCount     int                      `json:"word_count"`
	ContentLength notepolicy.ContentLength `json:"content_length"`
	CreatedAt     time.Time                `json:"created_at"`
}

// NewIndexNote derives the note's length class from the thresholds of the
// owner's utility.
func NewIndexNote(n models.Note, t notepolicy.Thresholds) IndexNote {
	return IndexNote{
		ID:            n.ID,
		Title:         n.Title,
		Type:          n.Type,
		ContentLength: notepolicy.ClassifyLength(notepolicy.WordCount(n.Content), t),
		CreatedAt:     n.CreatedAt,
	}
}

func NewShowNote(n models.Note, t notepolicy.Thresholds) ShowNote {
	wc := notepolicy.WordCount(n.Content)
	return ShowNote{
		ID:            n.ID,
		Title:         n.Title,
		Type:          n.Type,
		Content:       n.Content,
		WordCount:     wc,
		ContentLength: notepolicy.ClassifyLength(wc, t),
		CreatedAt:     n.CreatedAt,
	}
}
