// Package notepolicy holds the editorial rules applied to notes: how words
// are counted, how a note's length is bucketed for a utility and which
// notes may be stored at all.
package notepolicy

import (
	"errors"
	"fmt"
	"strings"
)

type NoteType string

const (
	Review   NoteType = "review"
	Critique NoteType = "critique"
)

func (t NoteType) Valid() bool {
	return t == Review || t == Critique
}

// NoteTypes lists the accepted note types.
func NoteTypes() []NoteType {
	return []NoteType{Review, Critique}
}

type ContentLength string

const (
	Short  ContentLength = "short"
	Medium ContentLength = "medium"
	Long   ContentLength = "long"
)

var ErrInvalidNote = errors.New("invalid note")

// InvalidNoteError reports a missing or unacceptable note field.
type InvalidNoteError struct {
	Field  string
	Reason string
}

func (e *InvalidNoteError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *InvalidNoteError) Unwrap() error {
	return ErrInvalidNote
}

var ErrWordCountExceeded = errors.New("word count exceeded")

// WordCountExceededError is returned for reviews longer than the owning
// utility allows. MaxWords is the utility's short threshold.
type WordCountExceededError struct {
	MaxWords int
}

func (e *WordCountExceededError) Error() string {
	return fmt.Sprintf("content must have at most %d words", e.MaxWords)
}

func (e *WordCountExceededError) Unwrap() error {
	return ErrWordCountExceeded
}

// Draft is a note as submitted, before it is persisted.
type Draft struct {
	Title   string
	Content string
	Type    NoteType
}

// WordCount returns the number of whitespace separated tokens in content.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// ClassifyLength buckets a word count against t. Both bounds are inclusive.
func ClassifyLength(wordCount int, t Thresholds) ContentLength {
	switch {
	case wordCount <= t.Short:
		return Short
	case wordCount <= t.Medium:
		return Medium
	default:
		return Long
	}
}

// ContentLengthFor counts the words in content and classifies them for u.
func ContentLengthFor(content string, u Utility) (ContentLength, error) {
	t, err := ThresholdsFor(u)
	if err != nil {
		return "", err
	}
	return ClassifyLength(WordCount(content), t), nil
}

// Validate checks d against the rules of the owning utility u. Reviews may
// not exceed the short threshold; critiques have no ceiling.
func Validate(d Draft, u Utility) error {
	t, err := ThresholdsFor(u)
	if err != nil {
		return err
	}
	if strings.TrimSpace(d.Title) == "" {
		return &InvalidNoteError{Field: "title", Reason: "can't be blank"}
	}
	if strings.TrimSpace(d.Content) == "" {
		return &InvalidNoteError{Field: "content", Reason: "can't be blank"}
	}
	if d.Type == "" {
		return &InvalidNoteError{Field: "type", Reason: "can't be blank"}
	}
	if !d.Type.Valid() {
		return &InvalidNoteError{Field: "type", Reason: fmt.Sprintf("%q is not a valid type", string(d.Type))}
	}

	if d.Type == Review && WordCount(d.Content) > t.Short {
		return &WordCountExceededError{MaxWords: t.Short}
	}
	return nil
}
