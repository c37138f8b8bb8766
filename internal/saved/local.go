package saved

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/TomWang22/fin-news-summarizer/internal/search"
)

// storageKey versions the persisted format. Bumping it abandons old data;
// there is deliberately no migration logic.
const storageKey = "savedSearches:v1"

// maxLocalEntries caps the local list, most-recent-first.
const maxLocalEntries = 50

// Local persists saved searches in a sqlite key-value table: one versioned
// key holding the JSON-encoded list.
type Local struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

// OpenLocal opens (creating if needed) the local store at dbPath.
func OpenLocal(dbPath string) (*Local, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	l := &Local{readDB: readDB, writeDB: writeDB}
	if err := l.init(); err != nil {
		l.Close()
		return nil, err
	}
	return l, nil
}

func (l *Local) init() error {
	_, err := l.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (l *Local) Close() error {
	var errs []error
	if l.readDB != nil {
		errs = append(errs, l.readDB.Close())
	}
	if l.writeDB != nil {
		errs = append(errs, l.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

func (l *Local) load() ([]Entry, error) {
	var value string
	err := l.readDB.QueryRow("SELECT value FROM kv WHERE key = ?", storageKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading saved searches: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		// Corrupt payload: start over rather than wedge every operation.
		return nil, nil
	}
	return entries, nil
}

func (l *Local) persist(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding saved searches: %w", err)
	}
	_, err = l.writeDB.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, storageKey, string(data))
	if err != nil {
		return fmt.Errorf("writing saved searches: %w", err)
	}
	return nil
}

// List returns the full capped list, most-recent-first. Local listings have
// no pagination contract beyond the cap, so opts are ignored.
func (l *Local) List(ctx context.Context, opts ListOptions) (*Page, error) {
	entries, err := l.load()
	if err != nil {
		return nil, err
	}
	return &Page{Items: entries}, nil
}

// Create prepends a new entry. An existing entry with the same name is
// silently replaced; the list is trimmed to the cap afterwards.
func (l *Local) Create(ctx context.Context, name string, params search.Params) (*Entry, error) {
	entries, err := l.load()
	if err != nil {
		return nil, err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.Name != name {
			kept = append(kept, e)
		}
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Name:      name,
		Params:    params,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	entries = append([]Entry{entry}, kept...)
	if len(entries) > maxLocalEntries {
		entries = entries[:maxLocalEntries]
	}

	if err := l.persist(entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete removes an entry by its local ID. Unknown IDs are a no-op.
func (l *Local) Delete(ctx context.Context, id string) error {
	entries, err := l.load()
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return l.persist(kept)
}

// Clear drops every local entry.
func (l *Local) Clear(ctx context.Context) error {
	return l.persist(nil)
}
