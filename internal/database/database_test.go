package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"booknotes/internal/database"
	"booknotes/internal/database/models"
	"booknotes/internal/database/repositories"
	"booknotes/internal/logger"
	"booknotes/internal/notepolicy"
)

func startPostgres(t *testing.T) database.Service {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("booknotes"),
		postgres.WithUsername("booknotes"),
		postgres.WithPassword("booknotes"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, container.Terminate(context.Background()))
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	srv, err := database.New(ctx, dsn, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	require.NoError(t, database.Migrate(srv.DB(), logger.NewNop()))
	return srv
}

func TestHealthAndMigrations(t *testing.T) {
	srv := startPostgres(t)

	stats := srv.Health()
	assert.Equal(t, "up", stats["status"])

	// migrating twice is a no-op
	require.NoError(t, database.Migrate(srv.DB(), logger.NewNop()))
}

func TestRepositories(t *testing.T) {
	srv := startPostgres(t)
	ctx := context.Background()
	users := repositories.NewUserRepository(srv.DB())
	notes := repositories.NewNoteRepository(srv.DB())

	user := &models.User{Email: "juan@example.com", Password: "hash", Utility: notepolicy.South}
	require.NoError(t, users.Create(ctx, user))
	assert.ErrorIs(t, users.Create(ctx, &models.User{Email: "juan@example.com", Password: "x", Utility: notepolicy.North}),
		repositories.ErrDuplicateEmail)

	loaded, err := users.GetByEmail(ctx, "juan@example.com")
	require.NoError(t, err)
	assert.Equal(t, notepolicy.South, loaded.Utility)

	for i, typ := range []notepolicy.NoteType{notepolicy.Review, notepolicy.Critique, notepolicy.Critique} {
		n := &models.Note{Title: string(rune('a' + i)), Content: "some words", Type: typ, UserID: user.ID}
		require.NoError(t, notes.Create(ctx, n))
	}

	all, err := notes.List(ctx, user.ID, models.NoteFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	critiques, err := notes.List(ctx, user.ID, models.NoteFilter{Type: notepolicy.Critique, Page: 1, PageSize: 1})
	require.NoError(t, err)
	require.Len(t, critiques, 1)

	got, err := notes.GetByID(ctx, critiques[0].ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, notepolicy.Critique, got.Type)

	require.NoError(t, notes.Delete(ctx, got.ID, user.ID))
	_, err = notes.GetByID(ctx, got.ID, user.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
