// Package wordfreq turns uploaded documents into ranked vocabularies with
// per-user translations and downloadable reports.
package wordfreq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/wordfreq/pkg/wordfreq/blob"
	"github.com/cognicore/wordfreq/pkg/wordfreq/extract"
	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
	"github.com/cognicore/wordfreq/pkg/wordfreq/ingest"
	"github.com/cognicore/wordfreq/pkg/wordfreq/report"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store"
	"github.com/cognicore/wordfreq/pkg/wordfreq/translate"
)

// Engine is the main vocabulary facade
type Engine struct {
	store       store.Store
	blobs       blob.Store
	pipeline    *ingest.Pipeline
	dict        *translate.Dictionary
	font        *report.Font
	reportLimit int
	log         *slog.Logger
}

// Options configures an Engine instance
type Options struct {
	Store      store.Store
	Blobs      blob.Store
	Pipeline   *ingest.Pipeline
	Dictionary *translate.Dictionary
	// Font is embedded in PDF reports; nil renders with the built-in font.
	Font        *report.Font
	ReportLimit int
	Logger      *slog.Logger
}

// New creates an Engine with the given dependencies. Store and Blobs are
// required; the rest fall back to defaults.
func New(opts Options) (*Engine, error) {
	if opts.Store == nil {
		return nil, errors.New("wordfreq: store is required")
	}
	if opts.Blobs == nil {
		return nil, errors.New("wordfreq: blob store is required")
	}
	e := &Engine{
		store:       opts.Store,
		blobs:       opts.Blobs,
		pipeline:    opts.Pipeline,
		dict:        opts.Dictionary,
		font:        opts.Font,
		reportLimit: opts.ReportLimit,
		log:         opts.Logger,
	}
	if e.pipeline == nil {
		e.pipeline = ingest.NewPipeline(nil, 0)
	}
	if e.dict == nil {
		e.dict = translate.Default()
	}
	if e.reportLimit <= 0 {
		e.reportLimit = report.DefaultReportLimit
	}
	if e.log == nil {
		e.log = slog.New(slog.DiscardHandler)
	}
	return e, nil
}

// Close cleanly shuts down the engine
func (e *Engine) Close() error {
	return e.store.Close()
}

// UploadRequest is a document handed over by a user.
type UploadRequest struct {
	UserID   int64
	Filename string
	// ContentType is the declared MIME type. When empty the format is
	// inferred from the filename extension.
	ContentType string
	Data        []byte
}

// Upload validates the declared type, stores the bytes and records the
// document. Nothing is stored for an unsupported type.
func (e *Engine) Upload(ctx context.Context, req UploadRequest) (store.Document, error) {
	format, err := uploadFormat(req)
	if err != nil {
		return store.Document{}, err
	}
	log := e.opLogger("upload", req.UserID)

	key := blob.NewKey(req.UserID, req.Filename)
	if err := e.blobs.Put(ctx, key, req.Data); err != nil {
		return store.Document{}, fmt.Errorf("store upload: %w", err)
	}

	doc, err := e.store.CreateDocument(ctx, store.Document{
		UserID:      req.UserID,
		Filename:    req.Filename,
		FileType:    extract.MIMEType(format),
		StoragePath: key,
	})
	if err != nil {
		if derr := e.blobs.Delete(ctx, key); derr != nil {
			log.Warn("orphaned upload", "key", key, "error", derr)
		}
		return store.Document{}, err
	}
	log.Info("uploaded", "document", doc.ID, "format", format, "bytes", len(req.Data))
	return doc, nil
}

func uploadFormat(req UploadRequest) (extract.Format, error) {
	if strings.TrimSpace(req.ContentType) != "" {
		return extract.FormatFromMIME(req.ContentType)
	}
	return extract.FormatFromFilename(req.Filename)
}

// ProcessResult summarises a processing run.
type ProcessResult struct {
	Document   store.Document
	TextLength int
	TokenCount int
	Vocabulary []freq.Entry
}

// Process extracts, tokenizes and ranks a stored document, replacing any
// vocabulary stored by an earlier run.
func (e *Engine) Process(ctx context.Context, userID, docID int64) (ProcessResult, error) {
	log := e.opLogger("process", userID)

	doc, err := e.store.GetDocument(ctx, userID, docID)
	if err != nil {
		return ProcessResult{}, err
	}
	format, err := extract.FormatFromMIME(doc.FileType)
	if err != nil {
		return ProcessResult{}, err
	}
	data, err := e.blobs.Get(ctx, doc.StoragePath)
	if err != nil {
		return ProcessResult{}, fmt.Errorf("fetch document %d: %w", docID, err)
	}

	processed, err := e.pipeline.ProcessRaw(extract.RawDocument{
		Filename: doc.Filename,
		Format:   format,
		Data:     data,
	})
	if err != nil {
		return ProcessResult{}, err
	}
	log.Debug("extracted", "document", docID, "chars", processed.TextLength)
	log.Debug("tokenized", "document", docID, "tokens", len(processed.Tokens), "distinct", len(processed.Vocabulary))

	if err := e.store.ReplaceWords(ctx, docID, processed.Vocabulary); err != nil {
		return ProcessResult{}, err
	}
	log.Info("stored", "document", docID, "words", len(processed.Vocabulary))

	return ProcessResult{
		Document:   doc,
		TextLength: processed.TextLength,
		TokenCount: len(processed.Tokens),
		Vocabulary: processed.Vocabulary,
	}, nil
}

// Analyze runs the pipeline over raw bytes without storing anything.
func (e *Engine) Analyze(data []byte, format extract.Format) (ingest.ProcessedDoc, error) {
	return e.pipeline.ProcessRaw(extract.RawDocument{Format: format, Data: data})
}

// Documents lists a user's documents.
func (e *Engine) Documents(ctx context.Context, userID int64) ([]store.Document, error) {
	return e.store.ListDocuments(ctx, userID)
}

// Words returns a document's vocabulary with the user's translations.
func (e *Engine) Words(ctx context.Context, userID, docID int64) ([]freq.Entry, error) {
	if _, err := e.store.GetDocument(ctx, userID, docID); err != nil {
		return nil, err
	}
	return e.store.Vocabulary(ctx, userID, docID)
}

// Export renders a document's vocabulary in the named format.
func (e *Engine) Export(ctx context.Context, userID, docID int64, format string) (*report.Document, error) {
	f, err := report.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	log := e.opLogger("export", userID)

	doc, err := e.store.GetDocument(ctx, userID, docID)
	if err != nil {
		return nil, err
	}
	entries, err := e.store.Vocabulary(ctx, userID, docID)
	if err != nil {
		return nil, err
	}

	out, err := e.render(entries, doc.Filename, f, log)
	if err != nil {
		return nil, err
	}
	log.Info("rendered", "document", docID, "format", f, "bytes", len(out.Body))
	return out, nil
}

// Report renders entries that were not stored, such as the result of
// Analyze. source names the analysed file.
func (e *Engine) Report(entries []freq.Entry, source, format string) (*report.Document, error) {
	f, err := report.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return e.render(entries, source, f, e.log.With("op", "report"))
}

func (e *Engine) render(entries []freq.Entry, source string, f report.Format, log *slog.Logger) (*report.Document, error) {
	out, err := report.Render(entries, f, report.Options{
		Source: source,
		Limit:  e.reportLimit,
		Font:   e.font,
	})
	if err != nil {
		return nil, err
	}
	if out.FontFallback {
		log.Warn("unicode font unavailable, translations may not render", "source", source)
	}
	return out, nil
}

// Delete removes a document and its vocabulary. A failure to remove the
// stored bytes is logged and does not fail the call.
func (e *Engine) Delete(ctx context.Context, userID, docID int64) error {
	log := e.opLogger("delete", userID)

	doc, err := e.store.GetDocument(ctx, userID, docID)
	if err != nil {
		return err
	}
	if err := e.blobs.Delete(ctx, doc.StoragePath); err != nil {
		log.Warn("blob delete failed", "document", docID, "key", doc.StoragePath, "error", err)
	}
	if err := e.store.DeleteDocument(ctx, userID, docID); err != nil {
		return err
	}
	log.Info("deleted", "document", docID)
	return nil
}

// SaveTranslation stores the user's translation for a word, replacing any
// earlier one. Words are matched case-insensitively.
func (e *Engine) SaveTranslation(ctx context.Context, userID int64, word, translation string) (store.Translation, error) {
	return e.store.SaveTranslation(ctx, store.Translation{
		UserID:      userID,
		Word:        word,
		Translation: translation,
	})
}

// Translations lists the user's saved translations.
func (e *Engine) Translations(ctx context.Context, userID int64) ([]store.Translation, error) {
	return e.store.Translations(ctx, userID)
}

// Suggest returns dictionary suggestions for a word.
func (e *Engine) Suggest(word string) translate.Suggestion {
	return e.dict.Suggest(word)
}

func (e *Engine) opLogger(op string, userID int64) *slog.Logger {
	return e.log.With("op", op, "op_id", ulid.Make().String(), "user", userID)
}
