// Package translate suggests Bengali translations for common English words.
package translate

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Suggestion is the answer to a lookup. IsCommon reports whether the word
// had any entries.
type Suggestion struct {
	Word        string   `json:"word"`
	Suggestions []string `json:"suggestions"`
	IsCommon    bool     `json:"is_common"`
}

// Dictionary maps lower-cased English words to candidate translations.
// It is read-only after construction.
type Dictionary struct {
	entries map[string][]string
}

var common = map[string][]string{
	"government":  {"সরকার", "প্রশাসন"},
	"election":    {"নির্বাচন"},
	"people":      {"জনগণ", "মানুষ"},
	"development": {"উন্নয়ন"},
	"country":     {"দেশ"},
	"policy":      {"নীতি", "নীতিমালা"},
	"system":      {"পদ্ধতি", "ব্যবস্থা"},
	"process":     {"প্রক্রিয়া"},
	"provide":     {"প্রদান করা"},
	"support":     {"সমর্থন", "সাহায্য"},
}

// New builds a dictionary from the built-in entries plus extra. Extra
// candidates for a word already known are appended after the built-in
// ones, skipping duplicates.
func New(extra map[string][]string) *Dictionary {
	d := &Dictionary{entries: make(map[string][]string, len(common)+len(extra))}
	d.add(common)
	d.add(extra)
	return d
}

// Default returns a dictionary with only the built-in entries.
func Default() *Dictionary {
	return New(nil)
}

func (d *Dictionary) add(m map[string][]string) {
	for word, cands := range m {
		key := normalize(word)
		if key == "" {
			continue
		}
		existing := d.entries[key]
		for _, c := range cands {
			c = strings.TrimSpace(c)
			if c == "" || contains(existing, c) {
				continue
			}
			existing = append(existing, c)
		}
		if len(existing) > 0 {
			d.entries[key] = existing
		}
	}
}

// Suggest looks up word case-insensitively. The returned Word is the
// caller's input unchanged and Suggestions is never nil.
func (d *Dictionary) Suggest(word string) Suggestion {
	cands := d.entries[normalize(word)]
	out := make([]string, len(cands))
	copy(out, cands)
	return Suggestion{Word: word, Suggestions: out, IsCommon: len(out) > 0}
}

// Len returns the number of words with suggestions.
func (d *Dictionary) Len() int { return len(d.entries) }

// Words returns the known words in sorted order.
func (d *Dictionary) Words() []string {
	words := make([]string, 0, len(d.entries))
	for w := range d.entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

func normalize(word string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(word)))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
