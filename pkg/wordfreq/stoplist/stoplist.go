package stoplist

import (
	"sort"

	"golang.org/x/text/unicode/norm"
)

// Category names the rejection set a term belongs to.
type Category string

const (
	CategoryEnglish  Category = "english"
	CategoryBengali  Category = "bengali"
	CategoryDates    Category = "dates"
	CategoryWebNoise Category = "web"
	CategoryCustom   Category = "custom"
)

// Set is a read-only rejection set. It is built once and never mutated,
// so a single value can be shared by every tokenizer without locking.
// The zero value rejects nothing.
type Set struct {
	stops map[string]Category
}

// New creates a set whose terms all belong to one category. Terms are
// stored in NFC, the form the tokenizer produces.
func New(cat Category, terms []string) Set {
	stops := make(map[string]Category, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		stops[norm.NFC.String(t)] = cat
	}
	return Set{stops: stops}
}

// Merge returns a new set containing every term of the given sets.
// When a term appears in several sets the first category wins.
func Merge(sets ...Set) Set {
	n := 0
	for _, s := range sets {
		n += len(s.stops)
	}
	stops := make(map[string]Category, n)
	for _, s := range sets {
		for t, c := range s.stops {
			if _, ok := stops[t]; !ok {
				stops[t] = c
			}
		}
	}
	return Set{stops: stops}
}

// IsStop checks if a token is rejected by the set
func (s Set) IsStop(token string) bool {
	_, ok := s.stops[norm.NFC.String(token)]
	return ok
}

// Reason reports which category rejects the token.
func (s Set) Reason(token string) (Category, bool) {
	c, ok := s.stops[norm.NFC.String(token)]
	return c, ok
}

// Len returns the number of distinct terms.
func (s Set) Len() int { return len(s.stops) }

// All returns all terms in lexical order
func (s Set) All() []string {
	result := make([]string, 0, len(s.stops))
	for t := range s.stops {
		result = append(result, t)
	}
	sort.Strings(result)
	return result
}

// Built-in rejection sets. Terms are stored lower-cased because the
// tokenizer folds case before lookup.
var (
	English  = New(CategoryEnglish, englishTerms)
	Bengali  = New(CategoryBengali, bengaliTerms)
	Dates    = New(CategoryDates, dateTerms)
	WebNoise = New(CategoryWebNoise, webNoiseTerms)

	// Default is the union applied by the tokenizer unless configured otherwise.
	Default = Merge(English, Bengali, Dates, WebNoise)
)

var englishTerms = []string{
	"the", "a", "an", "and", "or", "but", "if", "then", "else", "is", "are", "was", "were",
	"in", "on", "at", "to", "for", "with", "by", "from", "up", "down", "out", "over", "under",
	"this", "that", "these", "those", "i", "you", "he", "she", "it", "we", "they", "me", "him",
	"her", "us", "them", "my", "your", "his", "its", "our", "their", "of",
	"be", "been", "being", "have", "has", "had", "having", "do", "does", "did", "doing",
	"will", "would", "shall", "should", "can", "could", "may", "might", "must",
	"not", "no", "nor", "so", "than", "too", "very", "just", "also", "only", "own", "same",
	"such", "into", "onto", "about", "above", "below", "between", "through", "during",
	"before", "after", "again", "further", "once", "here", "there", "when", "where", "why",
	"how", "all", "any", "both", "each", "few", "more", "most", "other", "some", "what",
	"which", "who", "whom", "whose", "as", "off", "yours", "ours", "hers", "theirs",
	"myself", "yourself", "himself", "herself", "itself", "ourselves", "themselves",
	"am", "because", "until", "while", "against", "within", "without", "upon",
}

var bengaliTerms = []string{
	"এবং", "কিন্তু", "অথবা", "যদি", "তবে", "হয়", "হয়ত", "ছিল", "করে", "করা", "হতে", "থেকে",
	"এই", "সেই", "ওই", "যে", "যা", "তা", "এটা", "এটি", "সেটা", "সেটি", "আমি", "আমরা", "তুমি",
	"তোমরা", "আপনি", "আপনারা", "সে", "তারা", "তিনি", "তাঁরা", "আমার", "আমাদের", "তোমার",
	"আপনার", "তার", "তাদের", "তাঁর", "জন্য", "দিয়ে", "নিয়ে", "মধ্যে", "উপর", "নিচে", "পরে",
	"আগে", "সাথে", "সঙ্গে", "কাছে", "না", "নয়", "নেই", "আর", "ও", "বা", "কি", "কী", "কেন",
	"কোন", "কোনো", "কখন", "কোথায়", "কিভাবে", "যখন", "তখন", "এখন", "হবে", "হলে", "হয়ে",
	"হচ্ছে", "ছিলেন", "আছে", "আছেন", "করেন", "করেছে", "করেছেন", "করবে", "বলে", "এক", "একটি",
	"একটা", "সব", "সকল", "প্রতি", "অনেক", "কিছু", "যেমন", "তেমন", "এমন", "শুধু", "খুব",
}

var dateTerms = []string{
	"january", "february", "march", "april", "june", "july", "august", "september",
	"october", "november", "december",
	"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "sept", "oct", "nov", "dec",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	"mon", "tue", "tues", "wed", "thu", "thur", "thurs", "fri", "sat", "sun",
	"today", "tomorrow", "yesterday", "date", "dated", "day", "days", "week", "weeks",
	"month", "months", "year", "years", "am", "pm",
	"জানুয়ারি", "ফেব্রুয়ারি", "মার্চ", "এপ্রিল", "মে", "জুন", "জুলাই", "আগস্ট",
	"সেপ্টেম্বর", "অক্টোবর", "নভেম্বর", "ডিসেম্বর",
	"শনিবার", "রবিবার", "সোমবার", "মঙ্গলবার", "বুধবার", "বৃহস্পতিবার", "শুক্রবার",
	"আজ", "কাল", "গতকাল", "আগামীকাল", "তারিখ", "দিন", "সপ্তাহ", "মাস", "বছর", "সাল",
}

var webNoiseTerms = []string{
	"http", "https", "www", "ftp", "mailto", "html", "htm", "php", "asp", "aspx",
	"com", "org", "net", "edu", "gov", "info", "io", "bd", "co",
	"gmail", "yahoo", "hotmail", "outlook", "email", "mail", "inbox",
	"phone", "tel", "mobile", "fax", "contact", "contacts", "website", "url", "link",
	"click", "download", "login", "signup", "subscribe", "page", "pages", "copyright",
	"rights", "reserved",
	"ইমেইল", "ফোন", "মোবাইল", "যোগাযোগ", "ওয়েবসাইট",
}
