package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
)

// ErrNotFound is returned when a document does not exist or belongs to
// another user.
var ErrNotFound = errors.New("not found")

// Store persists documents, their ranked vocabulary and per-user
// translations.
type Store interface {
	Close() error

	// Documents
	CreateDocument(ctx context.Context, d Document) (Document, error)
	GetDocument(ctx context.Context, userID, id int64) (Document, error)
	ListDocuments(ctx context.Context, userID int64) ([]Document, error)
	DeleteDocument(ctx context.Context, userID, id int64) error

	// Vocabulary
	ReplaceWords(ctx context.Context, docID int64, entries []freq.Entry) error
	Vocabulary(ctx context.Context, userID, docID int64) ([]freq.Entry, error)

	// Translations
	SaveTranslation(ctx context.Context, t Translation) (Translation, error)
	Translations(ctx context.Context, userID int64) ([]Translation, error)
}

// Document represents an uploaded file's metadata
type Document struct {
	ID          int64
	UserID      int64
	Filename    string
	FileType    string // upload content type
	StoragePath string // blob key
	UploadedAt  time.Time
}

// Translation is a user's translation of a word. Words are stored
// lower-cased so they match tokenizer output.
type Translation struct {
	UserID      int64
	Word        string
	Translation string
	CreatedAt   time.Time
}

// NormalizeWord folds a word to the form used as a translation key,
// matching tokenizer output (NFC, lower case).
func NormalizeWord(w string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(w)))
}
