package wordfreq

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/cognicore/wordfreq/pkg/wordfreq/blob"
	"github.com/cognicore/wordfreq/pkg/wordfreq/extract"
	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
	"github.com/cognicore/wordfreq/pkg/wordfreq/report"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store/memstore"
)

func newTestEngine(t *testing.T, blobs blob.Store, logs *bytes.Buffer) *Engine {
	t.Helper()
	if blobs == nil {
		fs, err := blob.NewFS(t.TempDir())
		if err != nil {
			t.Fatalf("NewFS: %v", err)
		}
		blobs = fs
	}
	opts := Options{Store: memstore.New(), Blobs: blobs}
	if logs != nil {
		opts.Logger = slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	e, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func docxBytes(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString("<w:p><w:r><w:t>" + p + "</w:t></w:r></w:p>")
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `</w:body></w:document>`))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// TestEndToEnd walks a document through upload, processing, translation,
// export and deletion.
func TestEndToEnd(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	e := newTestEngine(t, nil, &logs)

	// === Upload ===
	doc, err := e.Upload(ctx, UploadRequest{
		UserID:      1,
		Filename:    "speech.txt",
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte("The government and the government provide support."),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if doc.FileType != extract.MIMEText {
		t.Errorf("FileType = %q", doc.FileType)
	}
	if !strings.HasPrefix(doc.StoragePath, "user_1/") || !strings.HasSuffix(doc.StoragePath, ".txt") {
		t.Errorf("StoragePath = %q", doc.StoragePath)
	}

	// === Process ===
	res, err := e.Process(ctx, 1, doc.ID)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if res.TokenCount != 4 {
		t.Errorf("TokenCount = %d", res.TokenCount)
	}

	// Reprocessing replaces rather than accumulates.
	if _, err := e.Process(ctx, 1, doc.ID); err != nil {
		t.Fatalf("second Process: %v", err)
	}

	// === Translate ===
	if _, err := e.SaveTranslation(ctx, 1, "Government", "সরকার"); err != nil {
		t.Fatalf("SaveTranslation: %v", err)
	}

	words, err := e.Words(ctx, 1, doc.ID)
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	want := []freq.Entry{
		{Word: "government", Frequency: 2, Translation: "সরকার"},
		{Word: "provide", Frequency: 1},
		{Word: "support", Frequency: 1},
	}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("Words = %+v, want %+v", words, want)
	}

	// === Export ===
	out, err := e.Export(ctx, 1, doc.ID, "csv")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if out.Filename != "speech.txt_analysis.csv" || out.MIMEType != "text/csv" {
		t.Errorf("unexpected export metadata %q %q", out.Filename, out.MIMEType)
	}
	records, err := csv.NewReader(bytes.NewReader(out.Body)).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	wantRows := [][]string{
		{"Word", "Frequency", "Translation"},
		{"government", "2", "সরকার"},
		{"provide", "1", "-"},
		{"support", "1", "-"},
	}
	if !reflect.DeepEqual(records, wantRows) {
		t.Errorf("csv = %v", records)
	}

	pdfOut, err := e.Export(ctx, 1, doc.ID, "pdf")
	if err != nil {
		t.Fatalf("Export pdf: %v", err)
	}
	if !bytes.HasPrefix(pdfOut.Body, []byte("%PDF")) {
		t.Error("expected a PDF body")
	}
	if !strings.Contains(logs.String(), "unicode font unavailable") {
		t.Error("expected a font fallback warning")
	}

	// === Delete ===
	if err := e.Delete(ctx, 1, doc.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := e.Words(ctx, 1, doc.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Words after delete: expected ErrNotFound, got %v", err)
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil, nil)

	_, err := e.Upload(ctx, UploadRequest{UserID: 1, Filename: "a.png", ContentType: "image/png", Data: []byte{1}})
	if !errors.Is(err, extract.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	docs, err := e.Documents(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 0 {
		t.Errorf("nothing should be recorded, got %+v", docs)
	}
}

func TestUploadInfersFormatFromFilename(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil, nil)

	doc, err := e.Upload(ctx, UploadRequest{
		UserID:   2,
		Filename: "minutes.docx",
		Data:     docxBytes(t, "Election results", "Election turnout"),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if doc.FileType != extract.MIMEDOCX {
		t.Errorf("FileType = %q", doc.FileType)
	}

	res, err := e.Process(ctx, 2, doc.ID)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(res.Vocabulary) == 0 || res.Vocabulary[0] != (freq.Entry{Word: "election", Frequency: 2}) {
		t.Errorf("Vocabulary = %+v", res.Vocabulary)
	}
}

func TestProcessExtractionFailure(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil, nil)

	doc, err := e.Upload(ctx, UploadRequest{UserID: 1, Filename: "broken.pdf", ContentType: "application/pdf", Data: []byte("not a pdf")})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if _, err := e.Process(ctx, 1, doc.ID); !errors.Is(err, extract.ErrExtraction) {
		t.Errorf("expected ErrExtraction, got %v", err)
	}
}

func TestOwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil, nil)

	doc, err := e.Upload(ctx, UploadRequest{UserID: 1, Filename: "a.txt", ContentType: "text/plain", Data: []byte("river river")})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.Process(ctx, 2, doc.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Process: expected ErrNotFound, got %v", err)
	}
	if _, err := e.Export(ctx, 2, doc.ID, "csv"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Export: expected ErrNotFound, got %v", err)
	}
	if err := e.Delete(ctx, 2, doc.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	e := newTestEngine(t, nil, nil)

	_, err := e.Export(context.Background(), 1, 1, "xml")
	if !errors.Is(err, report.ErrUnsupportedExportFormat) {
		t.Errorf("expected ErrUnsupportedExportFormat, got %v", err)
	}
}

type failingDeletes struct {
	blob.Store
}

func (failingDeletes) Delete(context.Context, string) error {
	return errors.New("storage offline")
}

func TestDeleteToleratesBlobFailure(t *testing.T) {
	ctx := context.Background()
	fs, err := blob.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	e := newTestEngine(t, failingDeletes{fs}, &logs)

	doc, err := e.Upload(ctx, UploadRequest{UserID: 1, Filename: "a.txt", ContentType: "text/plain", Data: []byte("river")})
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Delete(ctx, 1, doc.ID); err != nil {
		t.Fatalf("Delete should succeed despite blob failure: %v", err)
	}
	if !strings.Contains(logs.String(), "blob delete failed") {
		t.Errorf("expected warning in logs, got %s", logs.String())
	}
	docs, _ := e.Documents(ctx, 1)
	if len(docs) != 0 {
		t.Errorf("document should be gone, got %+v", docs)
	}
}

func TestAnalyze(t *testing.T) {
	e := newTestEngine(t, nil, nil)

	doc, err := e.Analyze([]byte("<p>Policy and policy</p><script>ignored()</script>"), extract.FormatHTML)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(doc.Vocabulary) != 1 || doc.Vocabulary[0] != (freq.Entry{Word: "policy", Frequency: 2}) {
		t.Errorf("Vocabulary = %+v", doc.Vocabulary)
	}
}

func TestReport(t *testing.T) {
	e := newTestEngine(t, nil, nil)

	doc, err := e.Analyze([]byte("river stone river"), extract.FormatText)
	if err != nil {
		t.Fatal(err)
	}
	out, err := e.Report(doc.Vocabulary, "notes.txt", "excel")
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if out.Filename != "notes.txt_analysis.xlsx" || len(out.Body) == 0 {
		t.Errorf("unexpected report %q (%d bytes)", out.Filename, len(out.Body))
	}
	if _, err := e.Report(doc.Vocabulary, "notes.txt", "docx"); !errors.Is(err, report.ErrUnsupportedExportFormat) {
		t.Errorf("expected ErrUnsupportedExportFormat, got %v", err)
	}
}

func TestSuggest(t *testing.T) {
	e := newTestEngine(t, nil, nil)

	s := e.Suggest("Support")
	if s.Word != "Support" || !s.IsCommon || len(s.Suggestions) != 2 {
		t.Errorf("Suggest = %+v", s)
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	if _, err := New(Options{Blobs: failingDeletes{}}); err == nil {
		t.Error("expected error without store")
	}
	if _, err := New(Options{Store: memstore.New()}); err == nil {
		t.Error("expected error without blob store")
	}
}
