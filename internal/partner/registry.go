package partner

import (
	"context"
	"fmt"

	"booknotes/internal/notepolicy"
)

// Feed pairs a partner endpoint with the mapper that understands it.
type Feed struct {
	client *Client
	mapper ResponseMapper
}

func NewFeed(client *Client, mapper ResponseMapper) *Feed {
	return &Feed{client: client, mapper: mapper}
}

func (f *Feed) Books(ctx context.Context) (*BooksResponse, error) {
	status, body, err := f.client.Get(ctx, booksPath)
	if err != nil {
		return nil, err
	}
	return f.mapper.RetrieveBooks(status, body)
}

func (f *Feed) Notes(ctx context.Context) (*NotesResponse, error) {
	status, body, err := f.client.Get(ctx, notesPath)
	if err != nil {
		return nil, err
	}
	return f.mapper.RetrieveNotes(status, body)
}

// Registry resolves the feed of a utility. It is populated at startup and
// only read afterwards.
type Registry struct {
	feeds map[notepolicy.Utility]*Feed
}

func NewRegistry() *Registry {
	return &Registry{feeds: make(map[notepolicy.Utility]*Feed)}
}

func (r *Registry) Register(u notepolicy.Utility, f *Feed) {
	r.feeds[u] = f
}

func (r *Registry) Feed(u notepolicy.Utility) (*Feed, error) {
	f, ok := r.feeds[u]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedUtility, u)
	}
	return f, nil
}
