// Package report renders a ranked vocabulary into export formats.
package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
)

// Format is an export target token.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

// DefaultReportLimit is the number of rows laid out in the PDF report.
const DefaultReportLimit = 100

// Placeholder is written where a translation is missing.
const Placeholder = "-"

// ErrUnsupportedExportFormat is returned for unknown export targets and for
// render failures inside a known target.
var ErrUnsupportedExportFormat = errors.New("unsupported export format")

var header = []string{"Word", "Frequency", "Translation"}

// ParseFormat validates an export target token.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatExcel, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedExportFormat, s)
}

// MIMEType returns the content type of a rendered format.
func (f Format) MIMEType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return ""
}

// Extension returns the file extension of a rendered format, without dot.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatExcel:
		return "xlsx"
	case FormatPDF:
		return "pdf"
	}
	return ""
}

// Filename builds the download name for an exported document.
func Filename(original string, f Format) string {
	return original + "_analysis." + f.Extension()
}

// Options control rendering.
type Options struct {
	// Source names the analysed document; it appears in the PDF title
	// and the download filename.
	Source string
	// Limit caps the rows laid out in the PDF report. Zero selects
	// DefaultReportLimit. Delimited and spreadsheet exports are not capped.
	Limit int
	// Font is embedded in the PDF report when present.
	Font *Font
}

// Document is a rendered export.
type Document struct {
	Format   Format
	MIMEType string
	Filename string
	Body     []byte
	// FontFallback is set when the PDF report was laid out with the
	// built-in font because no usable Unicode font was supplied.
	FontFallback bool
}

// Render serializes entries into the target format. On error no document
// is returned.
func Render(entries []freq.Entry, f Format, opts Options) (*Document, error) {
	doc := &Document{
		Format:   f,
		MIMEType: f.MIMEType(),
		Filename: Filename(opts.Source, f),
	}

	var err error
	switch f {
	case FormatCSV:
		doc.Body, err = renderCSV(entries)
	case FormatExcel:
		doc.Body, err = renderExcel(entries)
	case FormatPDF:
		limit := opts.Limit
		if limit <= 0 {
			limit = DefaultReportLimit
		}
		doc.Body, doc.FontFallback, err = renderPDF(freq.Truncate(entries, limit), opts.Source, opts.Font)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExportFormat, string(f))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: render %s: %w", ErrUnsupportedExportFormat, f, err)
	}
	return doc, nil
}

// rows returns the tabular form shared by the delimited and spreadsheet
// formats, without header.
func rows(entries []freq.Entry) [][]string {
	out := make([][]string, len(entries))
	for i, e := range entries {
		out[i] = []string{e.Word, strconv.Itoa(e.Frequency), translationCell(e)}
	}
	return out
}

func translationCell(e freq.Entry) string {
	if e.HasTranslation() {
		return e.Translation
	}
	return Placeholder
}
