package ingest

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cognicore/wordfreq/pkg/wordfreq/extract"
	"github.com/cognicore/wordfreq/pkg/wordfreq/freq"
)

func TestPipelineProcess(t *testing.T) {
	p := NewPipeline(DefaultTokenizer(), 0)

	doc := p.Process("The government and the government provide support.")
	want := []freq.Entry{
		{Word: "government", Frequency: 2},
		{Word: "provide", Frequency: 1},
		{Word: "support", Frequency: 1},
	}
	if !reflect.DeepEqual(doc.Vocabulary, want) {
		t.Errorf("Vocabulary = %+v, want %+v", doc.Vocabulary, want)
	}
	if len(doc.Tokens) != 4 {
		t.Errorf("expected 4 retained tokens, got %v", doc.Tokens)
	}
}

func TestPipelineLimit(t *testing.T) {
	p := NewPipeline(DefaultTokenizer(), 2)

	doc := p.Process("alpha beta beta gamma gamma gamma delta")
	if len(doc.Vocabulary) != 2 {
		t.Fatalf("expected 2 entries, got %+v", doc.Vocabulary)
	}
	if doc.Vocabulary[0].Word != "gamma" || doc.Vocabulary[1].Word != "beta" {
		t.Errorf("unexpected ranking: %+v", doc.Vocabulary)
	}
}

func TestPipelineDefaults(t *testing.T) {
	p := NewPipeline(nil, 0)
	if p.Limit() != DefaultStorageLimit {
		t.Errorf("Limit = %d, want %d", p.Limit(), DefaultStorageLimit)
	}
	if p.Tokenizer() == nil {
		t.Error("expected default tokenizer")
	}
}

func TestPipelineProcessRaw(t *testing.T) {
	p := NewPipeline(DefaultTokenizer(), 0)

	doc, err := p.ProcessRaw(extract.RawDocument{
		Filename: "notes.txt",
		Format:   extract.FormatText,
		Data:     []byte("River stone river"),
	})
	if err != nil {
		t.Fatalf("ProcessRaw: %v", err)
	}
	if len(doc.Vocabulary) != 2 || doc.Vocabulary[0] != (freq.Entry{Word: "river", Frequency: 2}) {
		t.Errorf("unexpected vocabulary %+v", doc.Vocabulary)
	}

	_, err = p.ProcessRaw(extract.RawDocument{Format: "rtf", Data: []byte("x")})
	if !errors.Is(err, extract.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestPipelineStable(t *testing.T) {
	p := NewPipeline(DefaultTokenizer(), 0)
	text := strings.Repeat("orange apple banana cherry apple orange kiwi mango ", 50)

	first := p.Process(text).Vocabulary
	for i := 0; i < 10; i++ {
		if got := p.Process(text).Vocabulary; !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced different ordering", i)
		}
	}
	want := []string{"orange", "apple", "banana", "cherry", "kiwi", "mango"}
	for i, w := range want {
		if first[i].Word != w {
			t.Errorf("position %d: got %s, want %s", i, first[i].Word, w)
		}
	}
}
