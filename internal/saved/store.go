// Package saved manages saved searches across two realms: a local sqlite
// key-value store and the remote /api/saved service. A manager probes the
// server once per session and routes operations to whichever realm is active,
// falling back to local when the server is unreachable.
package saved

import (
	"context"

	"github.com/TomWang22/fin-news-summarizer/internal/search"
)

// Entry is one saved search as shown to the user. Remote entries carry a
// "srv:" prefixed ID so the two realms can never be confused in one listing.
type Entry struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Params    search.Params `json:"params"`
	CreatedAt string        `json:"created_at"`
}

// ListOptions shape a listing request. The local realm returns its full
// capped list and ignores everything except nothing; pagination knobs only
// apply to the remote realm.
type ListOptions struct {
	NameFilter string
	Limit      int
	OrderBy    string // "id" or "created_at"
	Direction  string // "asc" or "desc"
	Cursor     string // opaque; empty requests the first page
}

// Page is one slice of a listing. An empty NextCursor means end of list.
type Page struct {
	Items      []Entry
	NextCursor string
}

// Store is the single logical interface both realms implement.
type Store interface {
	List(ctx context.Context, opts ListOptions) (*Page, error)
	Create(ctx context.Context, name string, params search.Params) (*Entry, error)
	Delete(ctx context.Context, id string) error
}
