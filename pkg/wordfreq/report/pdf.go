package report

import (
	"bytes"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
)

const (
	unicodeFamily  = "Unicode"
	fallbackFamily = "Helvetica"

	colWord    = 80.0
	colFreq    = 40.0
	colTrans   = 70.0
	rowHeight  = 10.0
	pageMargin = 15.0

	titleSize  = 16.0
	headerSize = 12.0
	rowSize    = 10.0
)

// renderPDF lays out a title and a bordered three-column table. Rows flow
// onto new pages automatically and the table header repeats on each page.
func renderPDF(entries []freq.Entry, source string, font *Font) ([]byte, bool, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, pageMargin)

	family := fallbackFamily
	fallback := true
	if font != nil && addUnicodeFont(doc, font) {
		family = unicodeFamily
		fallback = false
	}

	// The built-in font only covers cp1252; other runes degrade.
	tr := func(s string) string { return s }
	if fallback {
		tr = doc.UnicodeTranslatorFromDescriptor("")
	}

	tableHeader := func() {
		doc.CellFormat(colWord, rowHeight, "Word", "1", 0, "L", false, 0, "")
		doc.CellFormat(colFreq, rowHeight, "Freq", "1", 0, "L", false, 0, "")
		doc.CellFormat(colTrans, rowHeight, "Translation", "1", 1, "L", false, 0, "")
	}
	doc.SetHeaderFunc(func() {
		if doc.PageNo() > 1 {
			doc.SetFont(family, "", headerSize)
			tableHeader()
			doc.SetFont(family, "", rowSize)
		}
	})

	doc.AddPage()
	doc.SetFont(family, "", titleSize)
	doc.CellFormat(0, 10, tr("Vocabulary Analysis: "+source), "", 1, "C", false, 0, "")
	doc.Ln(10)

	doc.SetFont(family, "", headerSize)
	tableHeader()

	doc.SetFont(family, "", rowSize)
	for _, e := range entries {
		trans := ""
		if e.HasTranslation() {
			trans = e.Translation
		}
		doc.CellFormat(colWord, rowHeight, tr(e.Word), "1", 0, "L", false, 0, "")
		doc.CellFormat(colFreq, rowHeight, strconv.Itoa(e.Frequency), "1", 0, "L", false, 0, "")
		doc.CellFormat(colTrans, rowHeight, tr(trans), "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fallback, err
	}
	return buf.Bytes(), fallback, nil
}

// addUnicodeFont registers font under unicodeFamily. It reports false and
// leaves doc usable when the font data is rejected.
func addUnicodeFont(doc *fpdf.Fpdf, font *Font) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			doc.ClearError()
			ok = false
		}
	}()
	doc.AddUTF8FontFromBytes(unicodeFamily, "", font.Data)
	if !doc.Ok() {
		doc.ClearError()
		return false
	}
	return true
}
