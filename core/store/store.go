// Package store persists chapters in a SQLite library database. It
// supports both the pure Go driver (default) and the CGO driver (build
// with -tags cgo_sqlite).
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/Chapterhouse/core/errors"
)

// Chapter is one stored chapter record. The body is the rich-text markup
// produced by conversion or typed in the editor.
type Chapter struct {
	ID         string
	Notebook   string
	Title      string
	Body       string
	SourceHash string // BLAKE3 hash of the imported package, if any
	Position   int
	Created    time.Time
	Updated    time.Time
}

// Store is a chapter library backed by a SQLite database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS chapters (
	id          TEXT PRIMARY KEY,
	notebook    TEXT NOT NULL DEFAULT '',
	title       TEXT NOT NULL,
	body        TEXT NOT NULL,
	source_hash TEXT NOT NULL DEFAULT '',
	position    INTEGER NOT NULL,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chapters_notebook ON chapters(notebook, position);
`

// DriverType returns "purego" or "cgo" depending on the build.
func DriverType() string {
	return driverType
}

// Open opens (creating if needed) the library database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening library: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the library database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateChapter inserts a new chapter. A missing ID is generated; the
// position defaults to the end of the notebook.
func (s *Store) CreateChapter(ch *Chapter) error {
	if ch.ID == "" {
		ch.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	ch.Created = now
	ch.Updated = now

	if ch.Position == 0 {
		var max sql.NullInt64
		err := s.db.QueryRow(
			`SELECT MAX(position) FROM chapters WHERE notebook = ?`, ch.Notebook,
		).Scan(&max)
		if err != nil {
			return fmt.Errorf("computing position: %w", err)
		}
		ch.Position = int(max.Int64) + 1
	}

	_, err := s.db.Exec(
		`INSERT INTO chapters (id, notebook, title, body, source_hash, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ch.ID, ch.Notebook, ch.Title, ch.Body, ch.SourceHash, ch.Position,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting chapter: %w", err)
	}
	return nil
}

// GetChapter loads a chapter by ID.
func (s *Store) GetChapter(id string) (*Chapter, error) {
	row := s.db.QueryRow(
		`SELECT id, notebook, title, body, source_hash, position, created_at, updated_at
		 FROM chapters WHERE id = ?`, id,
	)
	ch, err := scanChapter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFound("chapter", id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading chapter: %w", err)
	}
	return ch, nil
}

// FindBySourceHash returns the chapter imported from the package with the
// given content hash, if one exists. Used for duplicate detection.
func (s *Store) FindBySourceHash(hash string) (*Chapter, error) {
	row := s.db.QueryRow(
		`SELECT id, notebook, title, body, source_hash, position, created_at, updated_at
		 FROM chapters WHERE source_hash = ? LIMIT 1`, hash,
	)
	ch, err := scanChapter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFound("chapter", hash)
	}
	if err != nil {
		return nil, fmt.Errorf("loading chapter: %w", err)
	}
	return ch, nil
}

// ListChapters returns the chapters of a notebook in position order. An
// empty notebook name lists the default notebook.
func (s *Store) ListChapters(notebook string) ([]*Chapter, error) {
	rows, err := s.db.Query(
		`SELECT id, notebook, title, body, source_hash, position, created_at, updated_at
		 FROM chapters WHERE notebook = ? ORDER BY position, created_at`, notebook,
	)
	if err != nil {
		return nil, fmt.Errorf("listing chapters: %w", err)
	}
	defer rows.Close()

	var chapters []*Chapter
	for rows.Next() {
		ch, err := scanChapter(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning chapter: %w", err)
		}
		chapters = append(chapters, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing chapters: %w", err)
	}
	return chapters, nil
}

// UpdateChapter writes a chapter's mutable fields (notebook, title, body,
// position) and bumps the updated timestamp.
func (s *Store) UpdateChapter(ch *Chapter) error {
	ch.Updated = time.Now().UTC()
	res, err := s.db.Exec(
		`UPDATE chapters SET notebook = ?, title = ?, body = ?, position = ?, updated_at = ?
		 WHERE id = ?`,
		ch.Notebook, ch.Title, ch.Body, ch.Position, ch.Updated.Format(time.RFC3339Nano), ch.ID,
	)
	if err != nil {
		return fmt.Errorf("updating chapter: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating chapter: %w", err)
	}
	if n == 0 {
		return errors.NewNotFound("chapter", ch.ID)
	}
	return nil
}

// DeleteChapter removes a chapter by ID.
func (s *Store) DeleteChapter(id string) error {
	res, err := s.db.Exec(`DELETE FROM chapters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting chapter: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting chapter: %w", err)
	}
	if n == 0 {
		return errors.NewNotFound("chapter", id)
	}
	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanChapter(row scanner) (*Chapter, error) {
	var ch Chapter
	var created, updated string
	err := row.Scan(&ch.ID, &ch.Notebook, &ch.Title, &ch.Body, &ch.SourceHash, &ch.Position, &created, &updated)
	if err != nil {
		return nil, err
	}
	ch.Created, _ = time.Parse(time.RFC3339Nano, created)
	ch.Updated, _ = time.Parse(time.RFC3339Nano, updated)
	return &ch, nil
}
