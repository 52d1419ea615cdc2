package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booknotes/internal/database/models"
	"booknotes/internal/notepolicy"
)

var noteRowColumns = []string{"id", "title", "content", "type", "user_id", "created_at", "updated_at"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func TestNoteRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNoteRepository(db)

	userID := uuid.New()
	noteID := uuid.New()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO notes").
		WithArgs("Title", "some content", "review", userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(noteID.String(), now, now))

	note := &models.Note{Title: "Title", Content: "some content", Type: notepolicy.Review, UserID: userID}
	require.NoError(t, repo.Create(context.Background(), note))
	assert.Equal(t, noteID, note.ID)
	assert.Equal(t, now, note.CreatedAt)
}

func TestNoteRepository_Create_Error(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNoteRepository(db)

	boom := errors.New("connection reset")
	mock.ExpectQuery("INSERT INTO notes").WillReturnError(boom)

	err := repo.Create(context.Background(), &models.Note{Title: "t", Content: "c", Type: notepolicy.Critique})
	assert.ErrorIs(t, err, boom)
}

func TestNoteRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNoteRepository(db)

	userID := uuid.New()
	noteID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM notes WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(noteID, userID).
		WillReturnRows(sqlmock.NewRows(noteRowColumns).
			AddRow(noteID.String(), "Title", "content here", "critique", userID.String(), now, now))

	note, err := repo.GetByID(context.Background(), noteID, userID)
	require.NoError(t, err)
	assert.Equal(t, notepolicy.Critique, note.Type)
	assert.Equal(t, "content here", note.Content)
}

func TestNoteRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNoteRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM notes").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNoteRepository_List(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()

	tests := []struct {
		name   string
		filter models.NoteFilter
		query  string
		args   []driver.Value
	}{
		{
			name:   "defaults to newest first",
			filter: models.NoteFilter{PageSize: 25},
			query:  "WHERE user_id = \\$1 ORDER BY created_at DESC, id DESC LIMIT \\$2 OFFSET \\$3",
			args:   []driver.Value{userID, 25, 0},
		},
		{
			name:   "type filter and ascending third page",
			filter: models.NoteFilter{Type: notepolicy.Review, Page: 3, PageSize: 10, Ascending: true},
			query:  "WHERE user_id = \\$1 AND type = \\$2 ORDER BY created_at ASC, id ASC LIMIT \\$3 OFFSET \\$4",
			args:   []driver.Value{userID, "review", 10, 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewNoteRepository(db)

			mock.ExpectQuery(tt.query).
				WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows(noteRowColumns).
					AddRow(uuid.NewString(), "First", "one two", "review", userID.String(), now, now).
					AddRow(uuid.NewString(), "Second", "three", "review", userID.String(), now, now))

			notes, err := repo.List(context.Background(), userID, tt.filter)
			require.NoError(t, err)
			require.Len(t, notes, 2)
			assert.Equal(t, "First", notes[0].Title)
			assert.Equal(t, "Second", notes[1].Title)
		})
	}
}

func TestNoteRepository_List_Empty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNoteRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM notes").
		WillReturnRows(sqlmock.NewRows(noteRowColumns))

	notes, err := repo.List(context.Background(), uuid.New(), models.NoteFilter{PageSize: 5})
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestNoteRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNoteRepository(db)

	id, userID := uuid.New(), uuid.New()
	mock.ExpectExec("DELETE FROM notes").WithArgs(id, userID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM notes").WithArgs(id, userID).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), id, userID))
	assert.ErrorIs(t, repo.Delete(context.Background(), id, userID), ErrNotFound)
}
