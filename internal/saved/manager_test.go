package saved

import (
	"context"
	"errors"
	"testing"

	"github.com/TomWang22/fin-news-summarizer/internal/api"
)

func testManager(t *testing.T, fake *fakeAPI) *Manager {
	t.Helper()
	return NewManager(testLocal(t), NewRemote(fake))
}

func TestManagerProbeSuccessSelectsServer(t *testing.T) {
	fake := &fakeAPI{pages: []*api.SavedPage{
		{}, // probe
		{Items: []api.SavedSearch{{ID: 1, Name: "remote one"}}},
	}}
	m := testManager(t, fake)

	if err := m.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !m.SyncServer() {
		t.Fatal("expected server mode after successful probe")
	}
	if len(m.Items()) != 1 || m.Items()[0].ID != "srv:1" {
		t.Errorf("unexpected items: %+v", m.Items())
	}
}

func TestManagerProbeFailureFallsBackToLocal(t *testing.T) {
	fake := &fakeAPI{listErr: errors.New("connection refused")}
	m := testManager(t, fake)
	ctx := context.Background()

	m.local.Create(ctx, "offline entry", rssParams("AAPL"))

	if err := m.Init(ctx); err != nil {
		t.Fatalf("init must not fail on probe failure: %v", err)
	}
	if m.SyncServer() {
		t.Fatal("expected local mode")
	}
	if len(m.Items()) != 1 || m.Items()[0].Name != "offline entry" {
		t.Errorf("local list not loaded: %+v", m.Items())
	}
}

func TestManagerProbeRunsOnce(t *testing.T) {
	fake := &fakeAPI{}
	m := testManager(t, fake)
	ctx := context.Background()

	m.Init(ctx)
	calls := len(fake.listOpts)
	m.Init(ctx)
	// Second Init must refresh without a second probe (one list call only).
	if got := len(fake.listOpts) - calls; got != 1 {
		t.Errorf("expected 1 additional list call, got %d", got)
	}
}

func TestManagerSetSyncRevertsOnFailure(t *testing.T) {
	fake := &fakeAPI{listErr: errors.New("down")}
	m := testManager(t, fake)
	ctx := context.Background()

	m.Init(ctx) // probe fails, local mode
	err := m.SetSync(ctx, true)
	if err == nil {
		t.Fatal("expected error when forcing an unreachable server")
	}
	if m.SyncServer() {
		t.Error("flag must revert to local after failed toggle")
	}
}

func TestManagerSetSyncOff(t *testing.T) {
	fake := &fakeAPI{}
	m := testManager(t, fake)
	ctx := context.Background()

	m.local.Create(ctx, "mine", rssParams("AAPL"))
	m.Init(ctx) // server mode
	if !m.SyncServer() {
		t.Fatal("expected server mode")
	}

	if err := m.SetSync(ctx, false); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if m.SyncServer() {
		t.Error("expected local mode")
	}
	if len(m.Items()) != 1 || m.Items()[0].Name != "mine" {
		t.Errorf("local list not loaded: %+v", m.Items())
	}
}

func TestManagerLoadMoreAccumulates(t *testing.T) {
	fake := &fakeAPI{pages: []*api.SavedPage{
		{}, // probe
		{Items: []api.SavedSearch{{ID: 5, Name: "a"}}, NextCursor: intPtr(5)},
		{Items: []api.SavedSearch{{ID: 3, Name: "b"}}, NextCursor: nil},
	}}
	m := testManager(t, fake)
	ctx := context.Background()

	if err := m.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !m.HasMore() {
		t.Fatal("expected more pages")
	}

	more, err := m.LoadMore(ctx)
	if err != nil {
		t.Fatalf("load more: %v", err)
	}
	if more {
		t.Error("nil next_cursor must end the listing")
	}
	if len(m.Items()) != 2 || m.Items()[0].Name != "a" || m.Items()[1].Name != "b" {
		t.Errorf("pages not accumulated: %+v", m.Items())
	}

	// The second page request must carry the cursor from the first.
	last := fake.listOpts[len(fake.listOpts)-1]
	if last.Cursor == nil || *last.Cursor != 5 {
		t.Errorf("cursor not threaded: %v", last.Cursor)
	}
}

func TestManagerRefreshClearsAccumulation(t *testing.T) {
	fake := &fakeAPI{pages: []*api.SavedPage{
		{}, // probe
		{Items: []api.SavedSearch{{ID: 5, Name: "a"}}, NextCursor: intPtr(5)},
		{Items: []api.SavedSearch{{ID: 9, Name: "filtered"}}},
	}}
	m := testManager(t, fake)
	ctx := context.Background()

	m.Init(ctx)
	if err := m.Refresh(ctx, ListOptions{NameFilter: "fil", Limit: 10}); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(m.Items()) != 1 || m.Items()[0].Name != "filtered" {
		t.Errorf("filter change must clear accumulation: %+v", m.Items())
	}
	last := fake.listOpts[len(fake.listOpts)-1]
	if last.Query != "fil" || last.Cursor != nil {
		t.Errorf("unexpected list opts: %+v", last)
	}
}

func TestManagerCreateDefaultNames(t *testing.T) {
	fake := &fakeAPI{}
	m := testManager(t, fake)
	ctx := context.Background()
	m.Init(ctx) // server mode

	if _, err := m.Create(ctx, "  ", rssParams("AAPL, MSFT")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if fake.created[0] != "AAPL, MSFT" {
		t.Errorf("blank name must default to the query, got %q", fake.created[0])
	}

	if _, err := m.Create(ctx, "", rssParams("  ")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if fake.created[1] != "Search" {
		t.Errorf("expected literal fallback name, got %q", fake.created[1])
	}
}

func TestManagerCreateConflictSurfaces(t *testing.T) {
	fake := &fakeAPI{createErr: api.ErrConflict}
	m := testManager(t, fake)
	ctx := context.Background()
	m.Init(ctx)

	if _, err := m.Create(ctx, "dup", rssParams("AAPL")); !errors.Is(err, api.ErrConflict) {
		t.Fatalf("conflict must stay distinguishable, got %v", err)
	}
}

func TestManagerDeleteRoutesByRealm(t *testing.T) {
	fake := &fakeAPI{}
	m := testManager(t, fake)
	ctx := context.Background()
	m.Init(ctx) // server mode

	entry, _ := m.local.Create(ctx, "local one", rssParams("AAPL"))

	// Local ID routes to the local realm even while server mode is active.
	if err := m.Delete(ctx, entry.ID); err != nil {
		t.Fatalf("local delete: %v", err)
	}
	if len(fake.deleted) != 0 {
		t.Errorf("local ID must never reach the server: %v", fake.deleted)
	}

	if err := m.Delete(ctx, "srv:4"); err != nil {
		t.Fatalf("server delete: %v", err)
	}
	if len(fake.deleted) != 1 || fake.deleted[0] != 4 {
		t.Errorf("unexpected server deletions: %v", fake.deleted)
	}
}

func TestManagerClearLocal(t *testing.T) {
	fake := &fakeAPI{listErr: errors.New("down")}
	m := testManager(t, fake)
	ctx := context.Background()

	m.local.Create(ctx, "a", rssParams("AAPL"))
	m.Init(ctx) // local mode

	if err := m.ClearLocal(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(m.Items()) != 0 {
		t.Errorf("expected empty listing, got %+v", m.Items())
	}
}
