// Package partner defines the canonical shapes a partner feed is normalized
// into and the ResponseMapper each partner format implements.
package partner

import (
	"errors"
	"fmt"

	"booknotes/internal/notepolicy"
)

// Record is one raw partner object keyed by the partner's own field names.
type Record map[string]any

// Book carries ID and Year exactly as the partner sent them, number or
// string, so they marshal back with the same JSON type.
type Book struct {
	ID        any    `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Genre     string `json:"genre"`
	ImageURL  string `json:"image_url"`
	Publisher string `json:"publisher"`
	Year      any    `json:"year"`
}

type NoteUser struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type NoteBook struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

type Note struct {
	Title     string              `json:"title"`
	Type      notepolicy.NoteType `json:"type"`
	CreatedAt string              `json:"created_at"`
	User      NoteUser            `json:"user"`
	Book      NoteBook            `json:"book"`
}

type BooksResponse struct {
	Books []Book `json:"books"`
}

type NotesResponse struct {
	Notes []Note `json:"notes"`
}

// ResponseMapper turns a partner's raw response into canonical records.
// Implementations return every record they could map, in input order, along
// with an error describing the ones they could not.
type ResponseMapper interface {
	RetrieveBooks(statusCode int, body []byte) (*BooksResponse, error)
	RetrieveNotes(statusCode int, body []byte) (*NotesResponse, error)
}

var (
	ErrMalformedPayload   = errors.New("malformed partner payload")
	ErrUnsupportedUtility = errors.New("utility has no partner feed")
	ErrUnavailable        = errors.New("partner unavailable")
)

// UnknownIndex marks a MalformedRecordError that is not tied to a position
// in a list: an envelope problem, or a record mapped on its own.
const UnknownIndex = -1

// MalformedRecordError identifies a single record that could not be mapped.
type MalformedRecordError struct {
	Index  int
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Index < 0 {
		if e.Field == "" {
			return fmt.Sprintf("malformed payload: %s", e.Reason)
		}
		return fmt.Sprintf("malformed payload: %s: %s", e.Field, e.Reason)
	}
	if e.Field == "" {
		return fmt.Sprintf("malformed record %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("malformed record %d: %s: %s", e.Index, e.Field, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedPayload
}

// StatusError is returned when the partner answered with a non 2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("partner responded with status %d", e.StatusCode)
}
