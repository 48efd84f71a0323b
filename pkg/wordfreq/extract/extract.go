// Package extract turns raw document bytes into a single text buffer.
package extract

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// Format identifies the declared type of an uploaded document.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// MIME types accepted at upload.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText = "text/plain"
	MIMEHTML = "text/html"
)

var (
	// ErrUnsupportedFormat is returned for a format tag with no extractor.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrExtraction is returned when bytes cannot be parsed as their declared format.
	ErrExtraction = errors.New("text extraction failed")
)

// Extractor extracts plain text from one document format.
type Extractor interface {
	// ExtractText takes raw file bytes and returns the extracted text.
	ExtractText(data []byte) (string, error)
}

var extractors = map[Format]Extractor{
	FormatPDF:  PDF{},
	FormatDOCX: DOCX{},
	FormatText: Text{},
	FormatHTML: HTML{},
}

// For returns the extractor registered for f.
func For(f Format) (Extractor, error) {
	ex, ok := extractors[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
	return ex, nil
}

// Extract returns the text of data interpreted as format f.
func Extract(data []byte, f Format) (string, error) {
	ex, err := For(f)
	if err != nil {
		return "", err
	}
	return ex.ExtractText(data)
}

// FormatFromMIME maps an upload content type to a format tag.
// Parameters such as charset are ignored.
func FormatFromMIME(contentType string) (Format, error) {
	mt := strings.TrimSpace(contentType)
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mt = parsed
	}
	switch strings.ToLower(mt) {
	case MIMEPDF:
		return FormatPDF, nil
	case MIMEDOCX:
		return FormatDOCX, nil
	case MIMEText:
		return FormatText, nil
	case MIMEHTML:
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: content type %q", ErrUnsupportedFormat, contentType)
}

// FormatFromFilename maps a file extension to a format tag.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt", ".text":
		return FormatText, nil
	case ".html", ".htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: file %q", ErrUnsupportedFormat, name)
}

// MIMEType returns the canonical content type for a format tag.
func MIMEType(f Format) string {
	switch f {
	case FormatPDF:
		return MIMEPDF
	case FormatDOCX:
		return MIMEDOCX
	case FormatText:
		return MIMEText
	case FormatHTML:
		return MIMEHTML
	}
	return ""
}

// RawDocument is an uploaded document awaiting extraction.
type RawDocument struct {
	Filename string
	Format   Format
	Data     []byte
}

// Text extracts the document's text.
func (d RawDocument) Text() (string, error) {
	return Extract(d.Data, d.Format)
}

func extractionError(kind string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrExtraction, kind, cause)
}
