package ingest

import (
	"github.com/cognicore/wordfreq/pkg/wordfreq/extract"
	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
)

// DefaultStorageLimit bounds the vocabulary kept per document.
const DefaultStorageLimit = 500

// Pipeline orchestrates the analysis flow:
// bytes → text extraction → tokenization → frequency ranking
type Pipeline struct {
	tokenizer *Tokenizer
	limit     int
}

// NewPipeline creates a pipeline that keeps at most limit vocabulary
// entries. A limit <= 0 selects DefaultStorageLimit.
func NewPipeline(tokenizer *Tokenizer, limit int) *Pipeline {
	if tokenizer == nil {
		tokenizer = DefaultTokenizer()
	}
	if limit <= 0 {
		limit = DefaultStorageLimit
	}
	return &Pipeline{tokenizer: tokenizer, limit: limit}
}

// Tokenizer returns the pipeline's tokenizer.
func (p *Pipeline) Tokenizer() *Tokenizer { return p.tokenizer }

// Limit returns the maximum vocabulary size.
func (p *Pipeline) Limit() int { return p.limit }

// ProcessedDoc represents a document after analysis
type ProcessedDoc struct {
	TextLength int
	Tokens     []string
	Vocabulary []freq.Entry
}

// Process runs text through tokenization and ranking.
func (p *Pipeline) Process(text string) ProcessedDoc {
	// 1. Tokenize (fold case, drop noise)
	tokens := p.tokenizer.Tokenize(text)

	// 2. Rank by frequency, first occurrence breaks ties
	vocab := freq.Aggregate(tokens, p.limit)

	return ProcessedDoc{
		TextLength: len(text),
		Tokens:     tokens,
		Vocabulary: vocab,
	}
}

// ProcessRaw extracts the document's text and runs it through Process.
func (p *Pipeline) ProcessRaw(doc extract.RawDocument) (ProcessedDoc, error) {
	text, err := doc.Text()
	if err != nil {
		return ProcessedDoc{}, err
	}
	return p.Process(text), nil
}
