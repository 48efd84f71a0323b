package stoplist

import (
	"strings"
	"testing"
)

func TestBuiltInSets(t *testing.T) {
	cases := []struct {
		set   Set
		token string
		cat   Category
	}{
		{English, "the", CategoryEnglish},
		{Bengali, "এবং", CategoryBengali},
		{Dates, "january", CategoryDates},
		{WebNoise, "https", CategoryWebNoise},
	}
	for _, tc := range cases {
		if !tc.set.IsStop(tc.token) {
			t.Errorf("%s should be in %s set", tc.token, tc.cat)
		}
		if !Default.IsStop(tc.token) {
			t.Errorf("%s should be in the default set", tc.token)
		}
		cat, ok := tc.set.Reason(tc.token)
		if !ok || cat != tc.cat {
			t.Errorf("Reason(%s) = %s, %v", tc.token, cat, ok)
		}
	}
}

func TestContentWordsNotStopped(t *testing.T) {
	for _, w := range []string{"government", "provide", "support", "hello", "world", "সরকার"} {
		if Default.IsStop(w) {
			t.Errorf("%s should not be a stopword", w)
		}
	}
}

func TestTermsAreLowerCase(t *testing.T) {
	for _, term := range Default.All() {
		if term != strings.ToLower(term) {
			t.Errorf("term %q is not lower case", term)
		}
	}
}

func TestMergeFirstCategoryWins(t *testing.T) {
	a := New(CategoryDates, []string{"am", "noon"})
	b := New(CategoryEnglish, []string{"am", "the"})

	m := Merge(a, b)
	if m.Len() != 3 {
		t.Errorf("Len = %d, want 3", m.Len())
	}
	if cat, _ := m.Reason("am"); cat != CategoryDates {
		t.Errorf("Reason(am) = %s, want %s", cat, CategoryDates)
	}

	// Inputs are untouched.
	if a.Len() != 2 || b.Len() != 2 {
		t.Error("Merge must not modify its inputs")
	}
}

func TestZeroSet(t *testing.T) {
	var s Set
	if s.IsStop("the") {
		t.Error("zero set should reject nothing")
	}
	if len(s.All()) != 0 {
		t.Error("zero set should be empty")
	}
}

func TestNewSkipsEmpty(t *testing.T) {
	s := New(CategoryCustom, []string{"", "foo", "foo"})
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	if got := s.All(); len(got) != 1 || got[0] != "foo" {
		t.Errorf("All = %v", got)
	}
}

func TestIsStopAcceptsEitherNormalForm(t *testing.T) {
	s := New(CategoryCustom, []string{"হয়"})

	for _, in := range []string{"হয়", "হয়"} {
		if !s.IsStop(in) {
			t.Errorf("IsStop(%+q) = false", in)
		}
	}
	if !Bengali.IsStop("হয়ত") {
		t.Error("built-in Bengali set should match the precomposed spelling")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d", s.Len())
	}
}
