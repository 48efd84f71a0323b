package extract

import (
	"errors"
	"unicode/utf8"
)

// Text decodes plain-text files as UTF-8. Invalid byte sequences are an
// error rather than being replaced.
type Text struct{}

// ExtractText implements the Extractor interface for plain-text files
func (Text) ExtractText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", extractionError("text", errors.New("invalid UTF-8"))
	}
	return string(data), nil
}
