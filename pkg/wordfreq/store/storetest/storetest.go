// Package storetest holds behaviour checks shared by store.Store
// implementations.
package storetest

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store"
)

// Run exercises fresh stores from newStore against the store.Store contract.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("Documents", func(t *testing.T) { testDocuments(t, newStore(t)) })
	t.Run("Vocabulary", func(t *testing.T) { testVocabulary(t, newStore(t)) })
	t.Run("Translations", func(t *testing.T) { testTranslations(t, newStore(t)) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, newStore(t)) })
}

func testDocuments(t *testing.T, st store.Store) {
	ctx := context.Background()

	created, err := st.CreateDocument(ctx, store.Document{
		UserID:      7,
		Filename:    "speech.pdf",
		FileType:    "application/pdf",
		StoragePath: "user_7/abc.pdf",
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned ID")
	}
	if created.UploadedAt.IsZero() {
		t.Error("expected upload time to be set")
	}

	got, err := st.GetDocument(ctx, 7, created.ID)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got.Filename != "speech.pdf" || got.FileType != "application/pdf" || got.StoragePath != "user_7/abc.pdf" {
		t.Errorf("unexpected document %+v", got)
	}

	if _, err := st.GetDocument(ctx, 8, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("other user: expected ErrNotFound, got %v", err)
	}
	if _, err := st.GetDocument(ctx, 7, created.ID+100); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing id: expected ErrNotFound, got %v", err)
	}

	if _, err := st.CreateDocument(ctx, store.Document{UserID: 7, Filename: "b.txt", StoragePath: "k2"}); err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if _, err := st.CreateDocument(ctx, store.Document{UserID: 9, Filename: "c.txt", StoragePath: "k3"}); err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	docs, err := st.ListDocuments(ctx, 7)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 2 || docs[0].Filename != "speech.pdf" || docs[1].Filename != "b.txt" {
		t.Errorf("ListDocuments = %+v", docs)
	}
}

func testVocabulary(t *testing.T, st store.Store) {
	ctx := context.Background()

	doc, err := st.CreateDocument(ctx, store.Document{UserID: 1, Filename: "a.txt", StoragePath: "k"})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	first := []freq.Entry{{Word: "old", Frequency: 9}}
	if err := st.ReplaceWords(ctx, doc.ID, first); err != nil {
		t.Fatalf("ReplaceWords: %v", err)
	}

	entries := []freq.Entry{
		{Word: "government", Frequency: 2},
		{Word: "provide", Frequency: 1},
		{Word: "support", Frequency: 1},
	}
	if err := st.ReplaceWords(ctx, doc.ID, entries); err != nil {
		t.Fatalf("ReplaceWords: %v", err)
	}

	if _, err := st.SaveTranslation(ctx, store.Translation{UserID: 1, Word: "Government", Translation: "সরকার"}); err != nil {
		t.Fatalf("SaveTranslation: %v", err)
	}
	if _, err := st.SaveTranslation(ctx, store.Translation{UserID: 2, Word: "support", Translation: "সমর্থন"}); err != nil {
		t.Fatalf("SaveTranslation: %v", err)
	}

	got, err := st.Vocabulary(ctx, 1, doc.ID)
	if err != nil {
		t.Fatalf("Vocabulary: %v", err)
	}
	want := []freq.Entry{
		{Word: "government", Frequency: 2, Translation: "সরকার"},
		{Word: "provide", Frequency: 1},
		{Word: "support", Frequency: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Vocabulary = %+v, want %+v", got, want)
	}

	if err := st.ReplaceWords(ctx, doc.ID+100, entries); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing document: expected ErrNotFound, got %v", err)
	}
}

func testTranslations(t *testing.T, st store.Store) {
	ctx := context.Background()

	first, err := st.SaveTranslation(ctx, store.Translation{UserID: 3, Word: "  Policy ", Translation: "নীতি"})
	if err != nil {
		t.Fatalf("SaveTranslation: %v", err)
	}
	if first.Word != "policy" {
		t.Errorf("word should be normalised, got %q", first.Word)
	}

	updated, err := st.SaveTranslation(ctx, store.Translation{UserID: 3, Word: "policy", Translation: "নীতিমালা"})
	if err != nil {
		t.Fatalf("SaveTranslation: %v", err)
	}
	if !updated.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("update should keep creation time: %v vs %v", updated.CreatedAt, first.CreatedAt)
	}

	if _, err := st.SaveTranslation(ctx, store.Translation{UserID: 3, Word: "country", Translation: "দেশ"}); err != nil {
		t.Fatalf("SaveTranslation: %v", err)
	}
	if _, err := st.SaveTranslation(ctx, store.Translation{UserID: 3, Word: " "}); err == nil {
		t.Error("blank word should be rejected")
	}

	list, err := st.Translations(ctx, 3)
	if err != nil {
		t.Fatalf("Translations: %v", err)
	}
	if len(list) != 2 || list[0].Word != "country" || list[1].Translation != "নীতিমালা" {
		t.Errorf("Translations = %+v", list)
	}

	other, err := st.Translations(ctx, 4)
	if err != nil {
		t.Fatalf("Translations: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("other user should have none, got %+v", other)
	}
}

func testDelete(t *testing.T, st store.Store) {
	ctx := context.Background()

	doc, err := st.CreateDocument(ctx, store.Document{UserID: 5, Filename: "a.txt", StoragePath: "k"})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if err := st.ReplaceWords(ctx, doc.ID, []freq.Entry{{Word: "river", Frequency: 3}}); err != nil {
		t.Fatalf("ReplaceWords: %v", err)
	}

	if err := st.DeleteDocument(ctx, 6, doc.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("other user delete: expected ErrNotFound, got %v", err)
	}
	if err := st.DeleteDocument(ctx, 5, doc.ID); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if _, err := st.GetDocument(ctx, 5, doc.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("deleted document: expected ErrNotFound, got %v", err)
	}
	words, err := st.Vocabulary(ctx, 5, doc.ID)
	if err != nil {
		t.Fatalf("Vocabulary: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("vocabulary should be removed with the document, got %+v", words)
	}
	if err := st.DeleteDocument(ctx, 5, doc.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}
