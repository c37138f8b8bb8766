package saved

import (
	"context"
	"fmt"
	"strings"

	"github.com/TomWang22/fin-news-summarizer/internal/search"
)

// Manager presents the two realms as one list. It probes the server once per
// session; any later mode switch to the server re-probes and reverts to local
// on failure so the UI is never silently pointed at an unreachable backend.
type Manager struct {
	local  *Local
	remote *Remote

	syncServer bool
	probed     bool

	// accumulated listing state for the active realm
	items      []Entry
	nextCursor string
	opts       ListOptions
}

func NewManager(local *Local, remote *Remote) *Manager {
	return &Manager{local: local, remote: remote}
}

// SyncServer reports whether the server realm is active.
func (m *Manager) SyncServer() bool { return m.syncServer }

// Items returns the accumulated listing.
func (m *Manager) Items() []Entry { return m.items }

// HasMore reports whether the remote listing has further pages.
func (m *Manager) HasMore() bool { return m.syncServer && m.nextCursor != "" }

func (m *Manager) active() Store {
	if m.syncServer {
		return m.remote
	}
	return m.local
}

// Init probes the server exactly once and loads the initial list from
// whichever realm answered. Probe failure is not an error: it selects local
// mode.
func (m *Manager) Init(ctx context.Context) error {
	if !m.probed {
		m.probed = true
		probe := ListOptions{Limit: 1}
		if _, err := m.remote.List(ctx, probe); err == nil {
			m.syncServer = true
		}
	}
	return m.Refresh(ctx, m.opts)
}

// SetSync forces the realm. Switching to the server re-probes by refreshing;
// on failure the flag reverts to local and the error is returned so the
// caller can notify.
func (m *Manager) SetSync(ctx context.Context, server bool) error {
	m.syncServer = server
	if err := m.Refresh(ctx, m.opts); err != nil {
		if server {
			m.syncServer = false
			if localErr := m.Refresh(ctx, m.opts); localErr != nil {
				return fmt.Errorf("server sync unavailable and local load failed: %w", localErr)
			}
		}
		return fmt.Errorf("server sync unavailable: %w", err)
	}
	return nil
}

// Refresh clears the accumulated list and loads the first page (the full
// list, for the local realm) using the given options.
func (m *Manager) Refresh(ctx context.Context, opts ListOptions) error {
	opts.Cursor = ""
	m.opts = opts
	m.items = nil
	m.nextCursor = ""

	page, err := m.active().List(ctx, opts)
	if err != nil {
		return err
	}
	m.items = page.Items
	m.nextCursor = page.NextCursor
	return nil
}

// LoadMore appends the next remote page to the accumulated list. It reports
// whether anything further remains.
func (m *Manager) LoadMore(ctx context.Context) (bool, error) {
	if !m.HasMore() {
		return false, nil
	}
	opts := m.opts
	opts.Cursor = m.nextCursor
	page, err := m.active().List(ctx, opts)
	if err != nil {
		return m.HasMore(), err
	}
	m.items = append(m.items, page.Items...)
	m.nextCursor = page.NextCursor
	return m.HasMore(), nil
}

// Create saves the params under name, defaulting to the query text (or
// "Search") when the name is blank, then reloads the list. Both realms share
// this naming rule so their behavior never diverges.
func (m *Manager) Create(ctx context.Context, name string, params search.Params) (*Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(params.Query)
	}
	if name == "" {
		name = "Search"
	}

	entry, err := m.active().Create(ctx, name, params)
	if err != nil {
		return nil, err
	}
	if err := m.Refresh(ctx, m.opts); err != nil {
		return entry, fmt.Errorf("saved, but reloading list failed: %w", err)
	}
	return entry, nil
}

// Delete routes by the ID's realm tag, never sending a local ID to the
// server or a server ID to the local store, then reloads the list.
func (m *Manager) Delete(ctx context.Context, id string) error {
	var err error
	if IsRemoteID(id) {
		err = m.remote.Delete(ctx, id)
	} else {
		err = m.local.Delete(ctx, id)
	}
	if err != nil {
		return err
	}
	return m.Refresh(ctx, m.opts)
}

// ClearLocal wipes the local realm and, when it is active, the listing.
func (m *Manager) ClearLocal(ctx context.Context) error {
	if err := m.local.Clear(ctx); err != nil {
		return err
	}
	if !m.syncServer {
		return m.Refresh(ctx, m.opts)
	}
	return nil
}
