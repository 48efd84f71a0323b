package config

import (
	"fmt"
	"strings"

	"github.com/cognicore/wordfreq/pkg/wordfreq/ingest"
	"github.com/cognicore/wordfreq/pkg/wordfreq/report"
	"github.com/cognicore/wordfreq/pkg/wordfreq/stoplist"
	"github.com/cognicore/wordfreq/pkg/wordfreq/translate"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	StoplistPath   string
	DictionaryPath string
	FontPath       string
	MinTokenLength int
	StorageLimit   int
}

// Components holds all loaded configuration components
type Components struct {
	Tokenizer  *ingest.Tokenizer
	Pipeline   *ingest.Pipeline
	Dictionary *translate.Dictionary
	// Font is nil when no usable font file is configured.
	Font *report.Font
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Extra stopwords extend the built-in sets
	stops := stoplist.Default
	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		terms := make([]string, 0, len(sl.Terms))
		for _, t := range sl.Terms {
			terms = append(terms, strings.ToLower(strings.TrimSpace(t)))
		}
		stops = stoplist.Merge(stoplist.Default, stoplist.New(stoplist.CategoryCustom, terms))
	}
	comp.Tokenizer = ingest.NewTokenizer(stops, l.MinTokenLength)
	comp.Pipeline = ingest.NewPipeline(comp.Tokenizer, l.StorageLimit)

	// Load dictionary
	if l.DictionaryPath != "" {
		dict, err := LoadDictionary(l.DictionaryPath)
		if err != nil {
			return nil, fmt.Errorf("load dictionary: %w", err)
		}
		comp.Dictionary = translate.New(dict.Terms)
	} else {
		comp.Dictionary = translate.Default()
	}

	// A missing font is not an error; reports fall back to a built-in face.
	if font, ok := report.LookupFont(l.FontPath); ok {
		comp.Font = font
	}

	return comp, nil
}
