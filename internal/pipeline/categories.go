package pipeline

import "strings"

var categorySynonyms = map[string][]string{
	"markets":    {"markets", "market", "economics"},
	"technology": {"technology", "tech"},
	"politics":   {"politics", "government"},
	"industries": {"industries", "industry", "business", "companies"},
	"wealth":     {"wealth", "pursuits", "personal finance"},
}

// IsKnownCategory reports whether category has a synonym list.
func IsKnownCategory(category string) bool {
	_, ok := categorySynonyms[strings.ToLower(strings.TrimSpace(category))]
	return ok
}

// MatchesCategory reports whether tag contains any synonym of category,
// ignoring case. Unknown categories match every tag.
func MatchesCategory(tag, category string) bool {
	synonyms, ok := categorySynonyms[strings.ToLower(strings.TrimSpace(category))]
	if !ok {
		return true
	}

	tag = strings.ToLower(tag)
	for _, s := range synonyms {
		if strings.Contains(tag, s) {
			return true
		}
	}
	return false
}
