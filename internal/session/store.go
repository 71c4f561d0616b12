package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/jonathan/profile-optimizer/internal/sections"
	"github.com/jonathan/profile-optimizer/internal/types"
)

// Snapshot is the persisted form of a Session. Each field maps to one
// key in the store. ActiveResult is derived state: it is carried for
// in-process readers and reinstated from Cache on Restore, never
// persisted on its own.
type Snapshot struct {
	CurrentSection sections.SectionType                             `json:"current_section"`
	Entries        sections.EntriesMap                              `json:"entries"`
	EntryIndex     map[sections.SectionType]int                     `json:"entry_index"`
	Cache          map[sections.SectionType]*types.StructuredResult `json:"optimized_cache"`
	Editable       string                                           `json:"editable_content"`
	FullText       string                                           `json:"full_text"`
	Source         Source                                           `json:"source"`
	Mode           InputMode                                        `json:"input_mode"`
	Status         string                                           `json:"status"`
	StatusKind     StatusKind                                       `json:"status_kind"`
	ActiveResult   *types.StructuredResult                          `json:"-"`
}

// Store persists session snapshots between runs.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
	Close() error
}

// Snapshot captures the session state under the session lock. The maps
// are copied so the snapshot stays consistent while transitions keep
// mutating the session; entry slices and result pointers are shared,
// which is safe because the session only ever replaces them wholesale.
func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make(sections.EntriesMap, len(s.Entries))
	for section, list := range s.Entries {
		entries[section] = list
	}
	indices := make(map[sections.SectionType]int, len(s.EntryIndex))
	for section, i := range s.EntryIndex {
		indices[section] = i
	}
	cache := make(map[sections.SectionType]*types.StructuredResult, len(s.Cache))
	for section, result := range s.Cache {
		cache[section] = result
	}

	return &Snapshot{
		CurrentSection: s.CurrentSection,
		Entries:        entries,
		EntryIndex:     indices,
		Cache:          cache,
		Editable:       s.Editable,
		FullText:       s.FullText,
		Source:         s.Source,
		Mode:           s.Mode,
		Status:         s.Status,
		StatusKind:     s.StatusKind,
		ActiveResult:   s.ActiveResult,
	}
}

// Restore applies a snapshot to the session. Missing maps default to
// empty so a partial snapshot still yields a usable session.
func (s *Session) Restore(snap *Snapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if sections.IsValid(snap.CurrentSection) {
		s.CurrentSection = snap.CurrentSection
	}
	if snap.Entries != nil {
		s.Entries = snap.Entries
	}
	if snap.EntryIndex != nil {
		s.EntryIndex = snap.EntryIndex
	}
	if snap.Cache != nil {
		s.Cache = snap.Cache
	}
	s.Editable = snap.Editable
	s.FullText = snap.FullText
	if snap.Source != "" {
		s.Source = snap.Source
	}
	if snap.Mode != "" {
		s.Mode = snap.Mode
	}
	s.Status = snap.Status
	s.StatusKind = snap.StatusKind
	if cached, ok := s.Cache[s.CurrentSection]; ok {
		s.ActiveResult = cached
	}
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS session_state (
	namespace TEXT NOT NULL,
	key       TEXT NOT NULL,
	value     TEXT NOT NULL,
	PRIMARY KEY (namespace, key)
);
`

var storePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 10000",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA foreign_keys = ON",
}

// SQLiteStore is a namespaced key-value store over SQLite. One row per
// snapshot field, JSON-encoded values.
type SQLiteStore struct {
	db        *sql.DB
	namespace string
}

// OpenStore opens (creating if needed) the session store at path.
// Parent directories are created. namespace isolates multiple sessions
// in the same file.
func OpenStore(path, namespace string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("session store: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("session store: open: %w", err)
	}
	if path == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	for _, pragma := range storePragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("session store: %s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("session store: schema: %w", err)
	}

	return &SQLiteStore{db: db, namespace: namespace}, nil
}

// Load reads the persisted snapshot. Missing keys are left at their
// zero value; a completely empty namespace returns an empty snapshot,
// not an error.
func (st *SQLiteStore) Load(ctx context.Context) (*Snapshot, error) {
	rows, err := st.db.QueryContext(ctx,
		`SELECT key, value FROM session_state WHERE namespace = ?`, st.namespace)
	if err != nil {
		return nil, fmt.Errorf("session store: load: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("session store: scan: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("session store: load: %w", err)
	}

	snap := &Snapshot{}
	for key, raw := range values {
		if err := decodeField(snap, key, raw); err != nil {
			return nil, fmt.Errorf("session store: decode %q: %w", key, err)
		}
	}
	return snap, nil
}

// Save writes every snapshot field in one transaction.
func (st *SQLiteStore) Save(ctx context.Context, snap *Snapshot) error {
	fields, err := encodeFields(snap)
	if err != nil {
		return fmt.Errorf("session store: encode: %w", err)
	}

	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("session store: begin: %w", err)
	}
	defer tx.Rollback()

	for key, value := range fields {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO session_state (namespace, key, value) VALUES (?, ?, ?)
			 ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value`,
			st.namespace, key, value); err != nil {
			return fmt.Errorf("session store: upsert %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("session store: commit: %w", err)
	}
	return nil
}

func (st *SQLiteStore) Close() error {
	return st.db.Close()
}

func encodeFields(snap *Snapshot) (map[string]string, error) {
	fields := map[string]any{
		"current_section":  snap.CurrentSection,
		"entries":          snap.Entries,
		"entry_index":      snap.EntryIndex,
		"optimized_cache":  snap.Cache,
		"editable_content": snap.Editable,
		"full_text":        snap.FullText,
		"source":           snap.Source,
		"input_mode":       snap.Mode,
		"status":           snap.Status,
		"status_kind":      snap.StatusKind,
	}

	encoded := make(map[string]string, len(fields))
	for key, value := range fields {
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		encoded[key] = string(data)
	}
	return encoded, nil
}

func decodeField(snap *Snapshot, key, raw string) error {
	var target any
	switch key {
	case "current_section":
		target = &snap.CurrentSection
	case "entries":
		target = &snap.Entries
	case "entry_index":
		target = &snap.EntryIndex
	case "optimized_cache":
		target = &snap.Cache
	case "editable_content":
		target = &snap.Editable
	case "full_text":
		target = &snap.FullText
	case "source":
		target = &snap.Source
	case "input_mode":
		target = &snap.Mode
	case "status":
		target = &snap.Status
	case "status_kind":
		target = &snap.StatusKind
	default:
		// Unknown keys from older versions are ignored.
		return nil
	}
	return json.Unmarshal([]byte(raw), target)
}
