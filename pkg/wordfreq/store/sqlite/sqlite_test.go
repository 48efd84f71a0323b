package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store/storetest"
)

func openTemp(t *testing.T) store.Store {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLiteContract(t *testing.T) {
	storetest.Run(t, openTemp)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reopen.db")

	st, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	doc, err := st.CreateDocument(ctx, store.Document{UserID: 1, Filename: "a.txt", FileType: "text/plain", StoragePath: "user_1/x.txt"})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	entries := []freq.Entry{
		{Word: "zeta", Frequency: 4},
		{Word: "alpha", Frequency: 4},
		{Word: "mid", Frequency: 1},
	}
	if err := st.ReplaceWords(ctx, doc.ID, entries); err != nil {
		t.Fatalf("ReplaceWords: %v", err)
	}
	st.Close()

	st, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()

	got, err := st.Vocabulary(ctx, 1, doc.ID)
	if err != nil {
		t.Fatalf("Vocabulary: %v", err)
	}
	// Equal frequencies keep the stored rank, not alphabetical order.
	if len(got) != 3 || got[0].Word != "zeta" || got[1].Word != "alpha" || got[2].Word != "mid" {
		t.Errorf("Vocabulary = %+v", got)
	}

	reloaded, err := st.GetDocument(ctx, 1, doc.ID)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if !reloaded.UploadedAt.Equal(doc.UploadedAt) {
		t.Errorf("upload time changed: %v vs %v", reloaded.UploadedAt, doc.UploadedAt)
	}
}
