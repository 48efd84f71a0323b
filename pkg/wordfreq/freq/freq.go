package freq

import "sort"

// Entry is one ranked vocabulary row.
type Entry struct {
	Word      string
	Frequency int
	// Translation is empty when no translation is known.
	Translation string
}

// HasTranslation reports whether a translation was merged into the entry.
func (e Entry) HasTranslation() bool { return e.Translation != "" }

// Counts holds per-token occurrence counts together with the order in
// which each distinct token was first seen.
type Counts struct {
	order  []string
	counts map[string]int
}

// Count tallies tokens in stream order.
func Count(tokens []string) Counts {
	c := Counts{counts: make(map[string]int)}
	for _, tok := range tokens {
		if _, seen := c.counts[tok]; !seen {
			c.order = append(c.order, tok)
		}
		c.counts[tok]++
	}
	return c
}

// Get returns the count for a token.
func (c Counts) Get(token string) int { return c.counts[token] }

// Len returns the number of distinct tokens.
func (c Counts) Len() int { return len(c.order) }

// MostCommon returns entries ordered by descending frequency. Entries with
// equal frequency keep first-occurrence order. A limit <= 0 returns every entry.
func (c Counts) MostCommon(limit int) []Entry {
	entries := make([]Entry, len(c.order))
	for i, tok := range c.order {
		entries[i] = Entry{Word: tok, Frequency: c.counts[tok]}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Frequency > entries[j].Frequency
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Aggregate counts tokens and returns at most limit ranked entries.
func Aggregate(tokens []string, limit int) []Entry {
	return Count(tokens).MostCommon(limit)
}

// Expand rebuilds a token stream from ranked entries: each word repeated
// Frequency times, in entry order. Aggregating the result reproduces the
// same entries.
func Expand(entries []Entry) []string {
	n := 0
	for _, e := range entries {
		n += e.Frequency
	}
	tokens := make([]string, 0, n)
	for _, e := range entries {
		for i := 0; i < e.Frequency; i++ {
			tokens = append(tokens, e.Word)
		}
	}
	return tokens
}

// Truncate returns at most limit entries. A limit <= 0 returns all of them.
func Truncate(entries []Entry, limit int) []Entry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
