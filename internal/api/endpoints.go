package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/TomWang22/fin-news-summarizer/internal/search"
)

// Search runs /api/search with the assembled parameters.
func (c *Client) Search(ctx context.Context, p search.Params) (*search.Response, error) {
	q := url.Values{}
	q.Set("query", p.Query)
	q.Set("provider", p.Provider)
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("summarize_sentences", strconv.Itoa(p.Sentences))
	if p.DateFrom != "" {
		q.Set("date_from", p.DateFrom)
	}
	if p.DateTo != "" {
		q.Set("date_to", p.DateTo)
	}
	if p.Sources != "" {
		q.Set("sources", p.Sources)
	}
	if p.Domains != "" {
		q.Set("domains", p.Domains)
	}

	var resp search.Response
	if err := c.doJSON(ctx, http.MethodGet, "/api/search", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SavedSearch is a server-side saved search. CreatedAt stays a raw string:
// the backend emits ISO timestamps without a timezone and the client only
// displays them.
type SavedSearch struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Params    search.Params `json:"params"`
	CreatedAt string        `json:"created_at"`
}

// SavedPage is one page of a cursor-paginated saved-search listing. A nil
// NextCursor signals the end of the list.
type SavedPage struct {
	Items      []SavedSearch `json:"items"`
	NextCursor *int64        `json:"next_cursor"`
}

// ListSavedOpts are the query knobs of GET /api/saved.
type ListSavedOpts struct {
	Query  string // case-insensitive name substring filter
	Limit  int
	Order  string // "id" or "created_at"
	Dir    string // "asc" or "desc"
	Cursor *int64 // keyset cursor from the previous page
}

// ListSaved fetches one page of saved searches.
func (c *Client) ListSaved(ctx context.Context, opts ListSavedOpts) (*SavedPage, error) {
	q := url.Values{}
	if opts.Query != "" {
		q.Set("q", opts.Query)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Order != "" {
		q.Set("order", opts.Order)
	}
	if opts.Dir != "" {
		q.Set("dir", opts.Dir)
	}
	if opts.Cursor != nil {
		q.Set("cursor", strconv.FormatInt(*opts.Cursor, 10))
	}

	var page SavedPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/saved", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

type savedSearchIn struct {
	Name   string        `json:"name"`
	Params search.Params `json:"params"`
}

// CreateSaved persists a saved search server-side. A name collision surfaces
// as ErrConflict.
func (c *Client) CreateSaved(ctx context.Context, name string, params search.Params) (*SavedSearch, error) {
	var created SavedSearch
	if err := c.doJSON(ctx, http.MethodPost, "/api/saved", nil, savedSearchIn{Name: name, Params: params}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteSaved removes a server-side saved search by its numeric ID.
func (c *Client) DeleteSaved(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/saved/%d", id), nil, nil, nil)
}

// DiagResult reports hit counts per probed source ID or domain.
type DiagResult struct {
	Tested  []string       `json:"tested"`
	Results map[string]int `json:"results"`
}

// ProbeOpts configure GET /api/diag/sources. Items is a comma-separated mix
// of source IDs and domains.
type ProbeOpts struct {
	Items    string
	DateFrom string
	DateTo   string
	Limit    int
}

// ProbeSources checks which candidate sources actually return articles.
func (c *Client) ProbeSources(ctx context.Context, opts ProbeOpts) (*DiagResult, error) {
	q := url.Values{}
	q.Set("items", opts.Items)
	limit := opts.Limit
	if limit <= 0 {
		limit = 1
	}
	q.Set("limit", strconv.Itoa(limit))
	if opts.DateFrom != "" {
		q.Set("date_from", opts.DateFrom)
	}
	if opts.DateTo != "" {
		q.Set("date_to", opts.DateTo)
	}

	var result DiagResult
	if err := c.doJSON(ctx, http.MethodGet, "/api/diag/sources", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
