// Package library provides SQLite-backed storage for named sequences.
//
// The library is the editor's catalog: sequences are stored under a
// unique name as the same JSON document the file format uses, so a
// library entry and a sequence file are interchangeable. Names are
// NFC-normalized before lookup so visually identical names cannot
// collide.
package library

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/text/unicode/norm"

	"github.com/motionseq/motionseq/internal/sequence"
)

//go:embed schema.sql
var schemaSQL string

const currentSchemaVersion = 1

// ErrNotFound is returned when no entry exists under the given name.
var ErrNotFound = errors.New("library: sequence not found")

// Library is a handle to a sequence catalog database.
type Library struct {
	db *sql.DB
}

// Entry describes one stored sequence, without its document body.
type Entry struct {
	ID        string
	Name      string
	PointDim  int
	NumPoints int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open creates or opens a catalog database at the given path. Pragmas
// and the schema are applied automatically; the function is idempotent.
func Open(path string) (*Library, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect library: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under interleaved use.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Library{db: db}, nil
}

// Close closes the database connection.
func (l *Library) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Put stores seq under name, replacing any existing entry with that
// name. The sequence's modified flag is untouched: the library is a
// catalog, not the working file, so storing a copy does not count as
// saving.
func (l *Library) Put(name string, seq *sequence.Sequence) error {
	doc, err := seq.Marshal()
	if err != nil {
		return fmt.Errorf("store sequence %q: %w", name, err)
	}

	now := time.Now().Unix()
	_, err = l.db.Exec(`
		INSERT INTO sequences (id, name, point_dim, num_points, doc, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			point_dim = excluded.point_dim,
			num_points = excluded.num_points,
			doc = excluded.doc,
			updated_at = excluded.updated_at
	`,
		uuid.NewString(),
		normalizeName(name),
		seq.PointDim(),
		seq.Len(),
		string(doc),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("store sequence %q: %w", name, err)
	}

	return nil
}

// Get loads the sequence stored under name. Returns ErrNotFound when no
// entry exists.
func (l *Library) Get(name string) (*sequence.Sequence, error) {
	var doc string
	err := l.db.QueryRow(`SELECT doc FROM sequences WHERE name = ?`, normalizeName(name)).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load sequence %q: %w", name, err)
	}

	seq := sequence.Load([]byte(doc))
	if !seq.IsValid() {
		return nil, fmt.Errorf("load sequence %q: stored document is corrupt", name)
	}
	return seq, nil
}

// List returns every entry, ordered by name for stable output.
func (l *Library) List() ([]Entry, error) {
	rows, err := l.db.Query(`
		SELECT id, name, point_dim, num_points, created_at, updated_at
		FROM sequences
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sequences: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created, updated int64
		if err := rows.Scan(&e.ID, &e.Name, &e.PointDim, &e.NumPoints, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.CreatedAt = time.Unix(created, 0)
		e.UpdatedAt = time.Unix(updated, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Delete removes the entry stored under name. Returns ErrNotFound when
// no entry exists.
func (l *Library) Delete(name string) error {
	res, err := l.db.Exec(`DELETE FROM sequences WHERE name = ?`, normalizeName(name))
	if err != nil {
		return fmt.Errorf("delete sequence %q: %w", name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete sequence %q: %w", name, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// normalizeName puts a name into NFC so composed and decomposed
// spellings of the same characters address the same entry.
func normalizeName(name string) string {
	return norm.NFC.String(name)
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return nil
}
