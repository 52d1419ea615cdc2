package partner_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booknotes/internal/notepolicy"
	"booknotes/internal/partner"
	"booknotes/internal/partner/south"
)

func newPartnerServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/books", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Libros":[{"Id":7,"Titulo":"Rayuela","Autor":"Cortázar","Genero":"Novela","ImagenUrl":"u","Editorial":"e","Año":1963}]}`))
	})
	mux.HandleFunc("/notes", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFeed(t *testing.T) {
	srv := newPartnerServer(t)
	feed := partner.NewFeed(partner.NewClient(srv.URL+"/", time.Second), south.NewResponseMapper())
	ctx := context.Background()

	books, err := feed.Books(ctx)
	require.NoError(t, err)
	require.Len(t, books.Books, 1)
	assert.Equal(t, json.Number("7"), books.Books[0].ID)
	assert.Equal(t, json.Number("1963"), books.Books[0].Year)

	_, err = feed.Notes(ctx)
	var statusErr *partner.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, _, err := partner.NewClient(url, time.Second).Get(context.Background(), "/books")
	assert.ErrorIs(t, err, partner.ErrUnavailable)
}

func TestRegistry(t *testing.T) {
	reg := partner.NewRegistry()
	feed := partner.NewFeed(partner.NewClient("http://partner.invalid", time.Second), south.NewResponseMapper())
	reg.Register(notepolicy.South, feed)

	got, err := reg.Feed(notepolicy.South)
	require.NoError(t, err)
	assert.Same(t, feed, got)

	_, err = reg.Feed(notepolicy.North)
	assert.ErrorIs(t, err, partner.ErrUnsupportedUtility)
}

func TestMalformedRecordError(t *testing.T) {
	assert.Equal(t, "malformed payload: Libros: is missing",
		(&partner.MalformedRecordError{Index: -1, Field: "Libros", Reason: "is missing"}).Error())
	assert.Equal(t, "malformed record 3: record is not an object",
		(&partner.MalformedRecordError{Index: 3, Reason: "record is not an object"}).Error())
	assert.ErrorIs(t, &partner.MalformedRecordError{}, partner.ErrMalformedPayload)
}
