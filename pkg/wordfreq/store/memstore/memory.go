package memstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store"
)

type translationKey struct {
	userID int64
	word   string
}

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu           sync.RWMutex
	nextID       int64
	docs         map[int64]store.Document
	words        map[int64][]freq.Entry
	translations map[translationKey]store.Translation
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		nextID:       1,
		docs:         make(map[int64]store.Document),
		words:        make(map[int64][]freq.Entry),
		translations: make(map[translationKey]store.Translation),
	}
}

var _ store.Store = (*Store)(nil)

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// CreateDocument assigns the next ID and stores the document.
func (s *Store) CreateDocument(ctx context.Context, d store.Document) (store.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = s.nextID
	s.nextID++
	if d.UploadedAt.IsZero() {
		d.UploadedAt = time.Now().UTC()
	}
	s.docs[d.ID] = d
	return d, nil
}

// GetDocument returns a document owned by userID.
func (s *Store) GetDocument(ctx context.Context, userID, id int64) (store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.docs[id]
	if !ok || d.UserID != userID {
		return store.Document{}, fmt.Errorf("document %d: %w", id, store.ErrNotFound)
	}
	return d, nil
}

// ListDocuments returns a user's documents ordered by ID.
func (s *Store) ListDocuments(ctx context.Context, userID int64) ([]store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []store.Document
	for _, d := range s.docs {
		if d.UserID == userID {
			docs = append(docs, d)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// DeleteDocument removes a document and its vocabulary.
func (s *Store) DeleteDocument(ctx context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.docs[id]
	if !ok || d.UserID != userID {
		return fmt.Errorf("document %d: %w", id, store.ErrNotFound)
	}
	delete(s.docs, id)
	delete(s.words, id)
	return nil
}

// ReplaceWords stores a copy of entries, dropping any earlier vocabulary.
func (s *Store) ReplaceWords(ctx context.Context, docID int64, entries []freq.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[docID]; !ok {
		return fmt.Errorf("document %d: %w", docID, store.ErrNotFound)
	}
	stored := make([]freq.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Word == "" {
			continue
		}
		stored = append(stored, freq.Entry{Word: e.Word, Frequency: e.Frequency})
	}
	s.words[docID] = stored
	return nil
}

// Vocabulary returns the stored entries merged with the user's translations.
func (s *Store) Vocabulary(ctx context.Context, userID, docID int64) ([]freq.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.words[docID]
	out := make([]freq.Entry, len(stored))
	for i, e := range stored {
		if t, ok := s.translations[translationKey{userID, e.Word}]; ok {
			e.Translation = t.Translation
		}
		out[i] = e
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Frequency > out[j].Frequency })
	return out, nil
}

// SaveTranslation inserts or updates a translation, keeping its creation time.
func (s *Store) SaveTranslation(ctx context.Context, t store.Translation) (store.Translation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.Word = store.NormalizeWord(t.Word)
	if t.Word == "" {
		return store.Translation{}, errors.New("translation word is required")
	}
	key := translationKey{t.UserID, t.Word}
	if existing, ok := s.translations[key]; ok {
		t.CreatedAt = existing.CreatedAt
	} else {
		t.CreatedAt = time.Now().UTC()
	}
	s.translations[key] = t
	return t, nil
}

// Translations returns a user's translations ordered by word.
func (s *Store) Translations(ctx context.Context, userID int64) ([]store.Translation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Translation
	for k, t := range s.translations {
		if k.userID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out, nil
}
