package saved

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/TomWang22/fin-news-summarizer/internal/api"
	"github.com/TomWang22/fin-news-summarizer/internal/search"
)

// remoteIDPrefix namespaces server-assigned IDs so they can never be handed
// to the local realm (or vice versa).
const remoteIDPrefix = "srv:"

// IsRemoteID reports whether an entry ID belongs to the server realm.
func IsRemoteID(id string) bool {
	return strings.HasPrefix(id, remoteIDPrefix)
}

// SavedAPI is the slice of the HTTP client the remote realm depends on.
type SavedAPI interface {
	ListSaved(ctx context.Context, opts api.ListSavedOpts) (*api.SavedPage, error)
	CreateSaved(ctx context.Context, name string, params search.Params) (*api.SavedSearch, error)
	DeleteSaved(ctx context.Context, id int64) error
}

// Remote is the server-backed realm.
type Remote struct {
	api SavedAPI
}

func NewRemote(client SavedAPI) *Remote {
	return &Remote{api: client}
}

// List fetches one page from the server, translating cursors both ways.
func (r *Remote) List(ctx context.Context, opts ListOptions) (*Page, error) {
	apiOpts := api.ListSavedOpts{
		Query: opts.NameFilter,
		Limit: opts.Limit,
		Order: opts.OrderBy,
		Dir:   opts.Direction,
	}
	if opts.Cursor != "" {
		cursor, err := strconv.ParseInt(opts.Cursor, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid cursor %q: %w", opts.Cursor, err)
		}
		apiOpts.Cursor = &cursor
	}

	page, err := r.api.ListSaved(ctx, apiOpts)
	if err != nil {
		return nil, err
	}

	out := &Page{Items: make([]Entry, 0, len(page.Items))}
	for _, row := range page.Items {
		out.Items = append(out.Items, Entry{
			ID:        remoteIDPrefix + strconv.FormatInt(row.ID, 10),
			Name:      row.Name,
			Params:    row.Params,
			CreatedAt: row.CreatedAt,
		})
	}
	if page.NextCursor != nil {
		out.NextCursor = strconv.FormatInt(*page.NextCursor, 10)
	}
	return out, nil
}

func (r *Remote) Create(ctx context.Context, name string, params search.Params) (*Entry, error) {
	row, err := r.api.CreateSaved(ctx, name, params)
	if err != nil {
		return nil, err
	}
	return &Entry{
		ID:        remoteIDPrefix + strconv.FormatInt(row.ID, 10),
		Name:      row.Name,
		Params:    row.Params,
		CreatedAt: row.CreatedAt,
	}, nil
}

// Delete removes a server entry. IDs from the local realm are rejected
// outright instead of being sent to the server.
func (r *Remote) Delete(ctx context.Context, id string) error {
	if !IsRemoteID(id) {
		return fmt.Errorf("%q is not a server saved-search ID", id)
	}
	numeric, err := strconv.ParseInt(strings.TrimPrefix(id, remoteIDPrefix), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid server ID %q: %w", id, err)
	}
	return r.api.DeleteSaved(ctx, numeric)
}
