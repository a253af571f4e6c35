// Package archive keeps fetched transcripts in a local SQLite database so a
// video's captions survive the platform taking them down.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get when nothing is archived under the key.
var ErrNotFound = errors.New("archive: not found")

// Entry is one archived transcript.
type Entry struct {
	ID         int64  `json:"id"`
	VideoID    string `json:"video_id"`
	Language   string `json:"language"`
	Format     string `json:"format"`
	Translated string `json:"translated,omitempty"`
	Generated  bool   `json:"generated"`
	Body       string `json:"body,omitempty"`
	PlainText  string `json:"plain_text,omitempty"`
	FetchedAt  string `json:"fetched_at"`
}

// Store is an archive backed by one SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the archive at path, creating parent directories.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("archive: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("archive: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("archive: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS transcripts (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		video_id   TEXT NOT NULL,
		language   TEXT NOT NULL,
		format     TEXT NOT NULL,
		translated TEXT NOT NULL DEFAULT '',
		generated  INTEGER NOT NULL DEFAULT 0,
		body       TEXT NOT NULL,
		plain_text TEXT,
		fetched_at TEXT NOT NULL,
		UNIQUE (video_id, language, format, translated)
	)`)
	return err
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Save stores e, replacing an earlier entry with the same video, language,
// format and translation. It returns the row id.
func (s *Store) Save(ctx context.Context, e Entry) (int64, error) {
	if e.VideoID == "" || e.Language == "" || e.Format == "" {
		return 0, errors.New("archive: video_id, language and format are required")
	}
	if e.FetchedAt == "" {
		e.FetchedAt = time.Now().UTC().Format(time.RFC3339)
	}
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO transcripts (video_id, language, format, translated, generated, body, plain_text, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (video_id, language, format, translated) DO UPDATE SET
		   generated = excluded.generated,
		   body = excluded.body,
		   plain_text = excluded.plain_text,
		   fetched_at = excluded.fetched_at
		 RETURNING id`,
		e.VideoID, e.Language, e.Format, e.Translated, e.Generated, e.Body, e.PlainText, e.FetchedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("archive: save: %w", err)
	}
	return id, nil
}

// Get returns the entry for one video, language, format and translation
// target ("" for none).
func (s *Store) Get(ctx context.Context, videoID, language, format, translated string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, video_id, language, format, translated, generated, body, plain_text, fetched_at
		 FROM transcripts WHERE video_id = ? AND language = ? AND format = ? AND translated = ?`,
		videoID, language, format, translated,
	)
	e, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("archive: get: %w", err)
	}
	return e, nil
}

// List returns the entries of a video without bodies, most recent first.
func (s *Store) List(ctx context.Context, videoID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, video_id, language, format, translated, generated, '', NULL, fetched_at
		 FROM transcripts WHERE video_id = ? ORDER BY fetched_at DESC, id DESC`,
		videoID,
	)
	if err != nil {
		return nil, fmt.Errorf("archive: list: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("archive: list: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func scanEntry(scan func(dest ...any) error) (*Entry, error) {
	var e Entry
	var plain sql.NullString
	if err := scan(&e.ID, &e.VideoID, &e.Language, &e.Format, &e.Translated,
		&e.Generated, &e.Body, &plain, &e.FetchedAt); err != nil {
		return nil, err
	}
	e.PlainText = plain.String
	return &e, nil
}
