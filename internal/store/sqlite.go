// Package store provides SQLite-backed persistence for projects and their
// append-only history streams.
package store

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// DB wraps the shared SQLite handle. ProjectStore, VersionLog and Timeline
// are constructed over one DB and injected where needed.
type DB struct {
	sql     *sql.DB
	path    string
	logger  zerolog.Logger
	entropy *rand.Rand

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open opens or creates the SQLite database at the given path.
func Open(dbPath string, logger zerolog.Logger) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	sqldb, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	d := &DB{
		sql:     sqldb,
		path:    dbPath,
		logger:  logger.With().Str("component", "store").Logger(),
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
		locks:   make(map[string]*sync.Mutex),
	}

	if err := d.migrate(); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

func (d *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		doc        TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS history (
		seq         INTEGER PRIMARY KEY AUTOINCREMENT,
		id          TEXT NOT NULL UNIQUE,
		project_id  TEXT NOT NULL,
		type        TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		actor       TEXT,
		description TEXT,
		diff        TEXT,
		snapshot    TEXT,
		action_type TEXT,
		details     TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_history_project ON history(project_id, seq);
	CREATE INDEX IF NOT EXISTS idx_history_project_type ON history(project_id, type, seq);

	CREATE VIRTUAL TABLE IF NOT EXISTS sections_fts USING fts5(
		project_id UNINDEXED,
		section_id UNINDEXED,
		title,
		content
	);
	`
	_, err := d.sql.Exec(schema)
	return err
}

// newEntryID returns a fresh ULID for a history entry.
func (d *DB) newEntryID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), d.entropy).String()
}

// projectLock returns the in-process mutex serializing mutations for one
// project. Save, Append and Prune are read-modify-write sequences on the
// same rows; concurrent writers would corrupt the last-version comparison.
func (d *DB) projectLock(projectID string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.locks[projectID]
	if !ok {
		l = &sync.Mutex{}
		d.locks[projectID] = l
	}
	return l
}

// Close closes the database.
func (d *DB) Close() error {
	return d.sql.Close()
}

const timeLayout = time.RFC3339Nano

func now() time.Time {
	return time.Now().UTC()
}
