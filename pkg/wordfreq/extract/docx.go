package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const wordprocessingNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// DOCX extracts paragraph text from .docx files (Office Open XML),
// one paragraph per line in document order.
type DOCX struct{}

// ExtractText implements the Extractor interface for DOCX files
func (DOCX) ExtractText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", extractionError("docx", err)
	}

	for _, file := range zr.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", extractionError("docx", err)
		}
		defer rc.Close()

		paras, err := paragraphs(rc)
		if err != nil {
			return "", extractionError("docx", err)
		}
		return strings.Join(paras, "\n"), nil
	}

	return "", extractionError("docx", errors.New("word/document.xml not found"))
}

// paragraphs streams document.xml and collects the text of every w:p.
func paragraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paras   []string
		current strings.Builder
		depth   int // nesting of w:p
		inText  bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Space != wordprocessingNS {
				continue
			}
			switch el.Name.Local {
			case "p":
				if depth == 0 {
					current.Reset()
				}
				depth++
			case "t":
				inText = true
			case "tab":
				current.WriteString("\t")
			case "br", "cr":
				current.WriteString("\n")
			}
		case xml.EndElement:
			if el.Name.Space != wordprocessingNS {
				continue
			}
			switch el.Name.Local {
			case "p":
				if depth > 0 {
					depth--
					if depth == 0 {
						paras = append(paras, current.String())
					}
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && depth > 0 {
				current.Write(el)
			}
		}
	}
	return paras, nil
}
