// Package store provides a SQLite-backed document store.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id        TEXT PRIMARY KEY,
	title     TEXT NOT NULL DEFAULT '',
	content   TEXT NOT NULL DEFAULT '',
	fork_from TEXT NOT NULL DEFAULT '',
	created   INTEGER NOT NULL,
	modified  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_modified ON documents(modified);
`

// emptyTTL is how long an untouched empty document survives.
const emptyTTL = 3 * time.Hour

// ErrNotFound is returned when no document has the requested id.
var ErrNotFound = errors.New("document not found")

// Document is one stored text document.
type Document struct {
	ID       string
	Title    string
	Content  string
	ForkFrom string
	Created  time.Time
	Modified time.Time
}

// Store is a SQLite-backed document store. It is safe for concurrent use.
type Store struct {
	mu  sync.Mutex
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens a document database at the given path.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open document db: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	s.purgeEmpty()
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// Create stores a new document under a fresh id.
func (s *Store) Create(ctx context.Context, title, content string) (Document, error) {
	return s.insert(ctx, title, content, "")
}

// Fork copies the document id into a new document recording its origin.
// An empty title keeps the source title.
func (s *Store) Fork(ctx context.Context, id, title string) (Document, error) {
	src, err := s.Get(ctx, id)
	if err != nil {
		return Document{}, err
	}
	if title == "" {
		title = src.Title
	}
	return s.insert(ctx, title, src.Content, src.ID)
}

func (s *Store) insert(ctx context.Context, title, content, forkFrom string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	doc := Document{
		ID:       uuid.NewString(),
		Title:    title,
		Content:  content,
		ForkFrom: forkFrom,
		Created:  now,
		Modified: now,
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO documents (id, title, content, fork_from, created, modified) VALUES (?, ?, ?, ?, ?, ?)",
		doc.ID, doc.Title, doc.Content, doc.ForkFrom, now.UnixNano(), now.UnixNano(),
	)
	if err != nil {
		return Document{}, fmt.Errorf("insert document: %w", err)
	}
	return doc, nil
}

// Get returns the document with the given id.
func (s *Store) Get(ctx context.Context, id string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, title, content, fork_from, created, modified FROM documents WHERE id = ?", id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Document{}, fmt.Errorf("get %s: %w", id, err)
	}
	return doc, nil
}

// Save overwrites the title and content of an existing document.
func (s *Store) Save(ctx context.Context, id, title, content string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	res, err := s.db.ExecContext(ctx,
		"UPDATE documents SET title = ?, content = ?, modified = ? WHERE id = ?",
		title, content, now.UnixNano(), id,
	)
	if err != nil {
		return Document{}, fmt.Errorf("save %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Document{}, fmt.Errorf("save %s: %w", id, ErrNotFound)
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT id, title, content, fork_from, created, modified FROM documents WHERE id = ?", id)
	doc, err := scanDocument(row)
	if err != nil {
		return Document{}, fmt.Errorf("reload %s: %w", id, err)
	}
	return doc, nil
}

// List returns all documents, most recently modified first.
func (s *Store) List(ctx context.Context) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, content, fork_from, created, modified FROM documents ORDER BY modified DESC, id")
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(sc scanner) (Document, error) {
	var (
		doc               Document
		created, modified int64
	)
	if err := sc.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.ForkFrom, &created, &modified); err != nil {
		return Document{}, err
	}
	doc.Created = time.Unix(0, created)
	doc.Modified = time.Unix(0, modified)
	return doc, nil
}

// purgeEmpty removes empty documents nobody has touched for emptyTTL.
func (s *Store) purgeEmpty() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-emptyTTL).UnixNano()
	res, err := s.db.Exec("DELETE FROM documents WHERE content = '' AND modified < ?", cutoff)
	if err != nil {
		log.Warn().Err(err).Msg("failed to purge empty documents")
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Info().Int64("deleted", n).Msg("purged empty documents")
	}
}
