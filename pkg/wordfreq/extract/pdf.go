package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDF extracts text from .pdf files page by page. Pages without a text
// layer contribute nothing; they are not an error.
type PDF struct{}

// ExtractText implements the Extractor interface for PDF files
func (PDF) ExtractText(data []byte) (out string, err error) {
	// The PDF library panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			out = ""
			err = extractionError("pdf", fmt.Errorf("malformed document: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", extractionError("pdf", err)
	}

	return joinPages(reader.NumPage(), func(i int) (text string, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("malformed page: %v", r)
			}
		}()
		page := reader.Page(i)
		if page.V.IsNull() {
			return "", nil
		}
		return page.GetPlainText(nil)
	})
}

// joinPages collects the text of pages 1..n, one page per line. A page
// whose text cannot be read is skipped; the document fails only when no
// page could be read.
func joinPages(n int, pageText func(i int) (string, error)) (string, error) {
	var (
		b        strings.Builder
		read     int
		firstErr error
	)
	for i := 1; i <= n; i++ {
		text, err := pageText(i)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("page %d: %w", i, err)
			}
			continue
		}
		read++
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(text)
	}
	if read == 0 && firstErr != nil {
		return "", extractionError("pdf", firstErr)
	}
	return b.String(), nil
}
