package ingest

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/wordfreq/pkg/wordfreq/stoplist"
)

// DefaultMinTokenLength is the shortest token, in runes, that survives
// filtering unless the tokenizer is configured otherwise.
const DefaultMinTokenLength = 3

// minRunLength is the shortest script run considered a word candidate at all.
const minRunLength = 2

// Bengali Unicode block.
const (
	bengaliFirst = 'ঀ'
	bengaliLast  = '৿'
)

// Tokenizer handles text tokenization and noise filtering.
// It holds no mutable state and is safe for concurrent use.
type Tokenizer struct {
	stops  stoplist.Set
	minLen int
}

// NewTokenizer creates a tokenizer that rejects members of stops and tokens
// shorter than minLen runes. A minLen <= 0 selects DefaultMinTokenLength.
func NewTokenizer(stops stoplist.Set, minLen int) *Tokenizer {
	if minLen <= 0 {
		minLen = DefaultMinTokenLength
	}
	return &Tokenizer{stops: stops, minLen: minLen}
}

// DefaultTokenizer uses every built-in rejection set and the default
// minimum length.
func DefaultTokenizer() *Tokenizer {
	return NewTokenizer(stoplist.Default, DefaultMinTokenLength)
}

// MinLength returns the minimum retained token length in runes.
func (t *Tokenizer) MinLength() int { return t.minLen }

// Tokenize folds case, splits text into runs of Latin or Bengali letters and
// returns the runs that pass the noise filters, in stream order.
// Text is brought to NFC first so precomposed and decomposed spellings
// produce the same tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	text = strings.ToLower(norm.NFC.String(text))

	var tokens []string
	start := -1
	for i, r := range text {
		if isScriptRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if word := t.processToken(text[start:i]); word != "" {
				tokens = append(tokens, word)
			}
			start = -1
		}
	}

	// Don't forget the last run
	if start >= 0 {
		if word := t.processToken(text[start:]); word != "" {
			tokens = append(tokens, word)
		}
	}

	return tokens
}

// processToken applies the rejection rules in order: digits, length, stop sets.
func (t *Tokenizer) processToken(run string) string {
	n := utf8.RuneCountInString(run)
	if n < minRunLength {
		return ""
	}

	if hasDigit(run) {
		return ""
	}

	if n < t.minLen {
		return ""
	}

	if t.stops.IsStop(run) {
		return ""
	}

	return run
}

// isScriptRune reports whether r belongs to a word run: a Latin letter or
// any code point of the Bengali block.
func isScriptRune(r rune) bool {
	if r >= bengaliFirst && r <= bengaliLast {
		return true
	}
	return unicode.IsLetter(r) && unicode.Is(unicode.Latin, r)
}

// hasDigit catches Bengali digits, which share the Bengali block with letters.
func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
