package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	filename TEXT NOT NULL,
	file_type TEXT,
	storage_path TEXT NOT NULL,
	upload_date TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_user ON documents(user_id);

CREATE TABLE IF NOT EXISTS word_frequency (
	document_id INTEGER NOT NULL,
	word TEXT NOT NULL,
	frequency INTEGER NOT NULL,
	position INTEGER NOT NULL,
	UNIQUE(document_id, word),
	FOREIGN KEY(document_id) REFERENCES documents(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_word_frequency_word ON word_frequency(word);

CREATE TABLE IF NOT EXISTS user_translations (
	user_id INTEGER NOT NULL,
	word TEXT NOT NULL,
	translation TEXT NOT NULL,
	created_at TEXT NOT NULL,
	PRIMARY KEY(user_id, word)
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// CreateDocument inserts document metadata and returns it with its ID
func (s *sqliteStore) CreateDocument(ctx context.Context, d store.Document) (store.Document, error) {
	if d.UploadedAt.IsZero() {
		d.UploadedAt = s.now()
	}

	const stmt = `
INSERT INTO documents (user_id, filename, file_type, storage_path, upload_date)
VALUES (?, ?, ?, ?, ?)
RETURNING id;
`
	err := s.db.QueryRowContext(
		ctx,
		stmt,
		d.UserID,
		d.Filename,
		d.FileType,
		d.StoragePath,
		d.UploadedAt.UTC().Format(time.RFC3339Nano),
	).Scan(&d.ID)
	if err != nil {
		return store.Document{}, err
	}
	return d, nil
}

// GetDocument retrieves a document owned by userID
func (s *sqliteStore) GetDocument(ctx context.Context, userID, id int64) (store.Document, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, user_id, filename, file_type, storage_path, upload_date
FROM documents WHERE id = ? AND user_id = ?`, id, userID)

	d, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return store.Document{}, fmt.Errorf("document %d: %w", id, store.ErrNotFound)
	}
	return d, err
}

// ListDocuments returns a user's documents, oldest first
func (s *sqliteStore) ListDocuments(ctx context.Context, userID int64) ([]store.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, user_id, filename, file_type, storage_path, upload_date
FROM documents WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []store.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document and its vocabulary
func (s *sqliteStore) DeleteDocument(ctx context.Context, userID, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("document %d: %w", id, store.ErrNotFound)
	}

	// Explicit delete: foreign_keys is a per-connection pragma.
	if _, err := tx.ExecContext(ctx, `DELETE FROM word_frequency WHERE document_id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

// ReplaceWords clears a document's vocabulary and stores entries in order
func (s *sqliteStore) ReplaceWords(ctx context.Context, docID int64, entries []freq.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM documents WHERE id = ?`, docID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("document %d: %w", docID, store.ErrNotFound)
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM word_frequency WHERE document_id = ?`, docID); err != nil {
		return err
	}
	if len(entries) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO word_frequency (document_id, word, frequency, position) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, e := range entries {
			if e.Word == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx, docID, e.Word, e.Frequency, i); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Vocabulary returns a document's ranked words merged with the user's
// translations
func (s *sqliteStore) Vocabulary(ctx context.Context, userID, docID int64) ([]freq.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT wf.word, wf.frequency, COALESCE(ut.translation, '')
FROM word_frequency wf
LEFT JOIN user_translations ut ON ut.word = wf.word AND ut.user_id = ?
WHERE wf.document_id = ?
ORDER BY wf.frequency DESC, wf.position ASC`, userID, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []freq.Entry
	for rows.Next() {
		var e freq.Entry
		if err := rows.Scan(&e.Word, &e.Frequency, &e.Translation); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveTranslation inserts or updates a user's translation for a word
func (s *sqliteStore) SaveTranslation(ctx context.Context, t store.Translation) (store.Translation, error) {
	t.Word = store.NormalizeWord(t.Word)
	if t.Word == "" {
		return store.Translation{}, errors.New("translation word is required")
	}

	var created string
	err := s.db.QueryRowContext(ctx, `
INSERT INTO user_translations (user_id, word, translation, created_at) VALUES (?, ?, ?, ?)
ON CONFLICT(user_id, word) DO UPDATE SET translation=excluded.translation
RETURNING created_at;
`, t.UserID, t.Word, t.Translation, s.now().Format(time.RFC3339Nano)).Scan(&created)
	if err != nil {
		return store.Translation{}, err
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return store.Translation{}, err
	}
	return t, nil
}

// Translations returns all of a user's translations ordered by word
func (s *sqliteStore) Translations(ctx context.Context, userID int64) ([]store.Translation, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT user_id, word, translation, created_at
FROM user_translations WHERE user_id = ? ORDER BY word`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Translation
	for rows.Next() {
		var (
			t       store.Translation
			created string
		)
		if err := rows.Scan(&t.UserID, &t.Word, &t.Translation, &created); err != nil {
			return nil, err
		}
		if t.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (store.Document, error) {
	var (
		d        store.Document
		fileType sql.NullString
		uploaded string
	)
	if err := row.Scan(&d.ID, &d.UserID, &d.Filename, &fileType, &d.StoragePath, &uploaded); err != nil {
		return store.Document{}, err
	}
	d.FileType = fileType.String
	t, err := time.Parse(time.RFC3339Nano, uploaded)
	if err != nil {
		return store.Document{}, err
	}
	d.UploadedAt = t
	return d, nil
}
