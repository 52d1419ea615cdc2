// Package south maps the South utility's partner feed. Its payloads use
// Spanish field names and carry the author's full name in a single field.
package south

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"booknotes/internal/notepolicy"
	"booknotes/internal/partner"
)

const (
	booksKey = "Libros"
	notesKey = "Notas"
)

type ResponseMapper struct{}

var _ partner.ResponseMapper = (*ResponseMapper)(nil)

func NewResponseMapper() *ResponseMapper {
	return &ResponseMapper{}
}

func (m *ResponseMapper) RetrieveBooks(statusCode int, body []byte) (*partner.BooksResponse, error) {
	records, err := decodeList(statusCode, body, booksKey)
	if err != nil {
		return nil, err
	}
	books, err := m.MapBooks(records)
	return &partner.BooksResponse{Books: books}, err
}

func (m *ResponseMapper) RetrieveNotes(statusCode int, body []byte) (*partner.NotesResponse, error) {
	records, err := decodeList(statusCode, body, notesKey)
	if err != nil {
		return nil, err
	}
	notes, err := m.MapNotes(records)
	return &partner.NotesResponse{Notes: notes}, err
}

// MapBooks renames every book record. Records that fail are skipped and
// reported in the joined error; the others keep their relative order.
func (m *ResponseMapper) MapBooks(records []partner.Record) ([]partner.Book, error) {
	books := make([]partner.Book, 0, len(records))
	var errs []error
	for i, rec := range records {
		book, err := mapBook(rec)
		if err != nil {
			errs = append(errs, atIndex(err, i))
			continue
		}
		books = append(books, book)
	}
	return books, errors.Join(errs...)
}

// MapNotes maps every note record the same way MapBooks does.
func (m *ResponseMapper) MapNotes(records []partner.Record) ([]partner.Note, error) {
	notes := make([]partner.Note, 0, len(records))
	var errs []error
	for i, rec := range records {
		note, err := m.mapNote(rec)
		if err != nil {
			errs = append(errs, atIndex(err, i))
			continue
		}
		notes = append(notes, note)
	}
	return notes, errors.Join(errs...)
}

func mapBook(rec partner.Record) (partner.Book, error) {
	if rec == nil {
		return partner.Book{}, notAnObject()
	}
	f := fields{rec: rec}
	book := partner.Book{
		ID:        f.scalar("Id"),
		Title:     f.str("Titulo"),
		Author:    f.str("Autor"),
		Genre:     f.str("Genero"),
		ImageURL:  f.str("ImagenUrl"),
		Publisher: f.str("Editorial"),
		Year:      f.scalar("Año"),
	}
	if f.err != nil {
		return partner.Book{}, f.err
	}
	return book, nil
}

func (m *ResponseMapper) mapNote(rec partner.Record) (partner.Note, error) {
	if rec == nil {
		return partner.Note{}, notAnObject()
	}
	f := fields{rec: rec}
	note := partner.Note{
		Title:     f.str("TituloNota"),
		Type:      noteType(f.flag("ReseniaNota")),
		CreatedAt: f.str("FechaCreacionNota"),
	}
	if f.err != nil {
		return partner.Note{}, f.err
	}

	user, err := m.MapUser(rec)
	if err != nil {
		return partner.Note{}, err
	}
	book, err := m.MapBook(rec)
	if err != nil {
		return partner.Note{}, err
	}
	note.User = user
	note.Book = book
	return note, nil
}

// MapUser builds the note's author. The partner sends the full name with
// the surname first: the first token is the last name and the rest, joined
// by single spaces, is the first name.
func (m *ResponseMapper) MapUser(rec partner.Record) (partner.NoteUser, error) {
	f := fields{rec: rec}
	email := f.str("EmailAutor")
	fullName := f.str("NombreCompletoAutor")
	if f.err != nil {
		return partner.NoteUser{}, f.err
	}

	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return partner.NoteUser{}, &partner.MalformedRecordError{
			Index:  partner.UnknownIndex,
			Field:  "NombreCompletoAutor",
			Reason: "is blank",
		}
	}
	return partner.NoteUser{
		Email:     email,
		FirstName: strings.Join(parts[1:], " "),
		LastName:  parts[0],
	}, nil
}

// MapBook builds the book a note refers to.
func (m *ResponseMapper) MapBook(rec partner.Record) (partner.NoteBook, error) {
	f := fields{rec: rec}
	book := partner.NoteBook{
		Title:  f.str("TituloLibro"),
		Author: f.str("NombreAutorLibro"),
		Genre:  f.str("GeneroLibro"),
	}
	if f.err != nil {
		return partner.NoteBook{}, f.err
	}
	return book, nil
}

func noteType(review bool) notepolicy.NoteType {
	if review {
		return notepolicy.Review
	}
	return notepolicy.Critique
}

func decodeList(statusCode int, body []byte, key string) ([]partner.Record, error) {
	if statusCode < 200 || statusCode > 299 {
		return nil, &partner.StatusError{StatusCode: statusCode}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var envelope map[string]any
	if err := dec.Decode(&envelope); err != nil {
		return nil, &partner.MalformedRecordError{Index: partner.UnknownIndex, Field: key, Reason: "body is not a JSON object"}
	}

	raw, ok := envelope[key]
	if !ok || raw == nil {
		return nil, &partner.MalformedRecordError{Index: partner.UnknownIndex, Field: key, Reason: "is missing"}
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &partner.MalformedRecordError{Index: partner.UnknownIndex, Field: key, Reason: "is not a list"}
	}

	records := make([]partner.Record, len(list))
	for i, item := range list {
		if obj, ok := item.(map[string]any); ok {
			records[i] = obj
		}
	}
	return records, nil
}

func notAnObject() error {
	return &partner.MalformedRecordError{Index: partner.UnknownIndex, Reason: "record is not an object"}
}

func atIndex(err error, i int) error {
	var malformed *partner.MalformedRecordError
	if errors.As(err, &malformed) {
		cp := *malformed
		cp.Index = i
		return &cp
	}
	return err
}
