package index

import (
	"strings"
	"unicode"

	"github.com/avasani/KnowledgeAPI/internal/config"
)

// Closed stop-word list: articles, conjunctions, auxiliaries and pronouns.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "from": {}, "as": {}, "into": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"being": {}, "have": {}, "has": {}, "had": {}, "do": {}, "does": {},
	"did": {}, "will": {}, "would": {}, "could": {}, "should": {},
	"can": {}, "may": {}, "not": {}, "no": {},
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"me": {}, "him": {}, "her": {}, "us": {}, "them": {},
	"my": {}, "your": {}, "his": {}, "its": {}, "our": {}, "their": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "there": {}, "here": {},
	"what": {}, "which": {}, "who": {}, "when": {}, "where": {}, "how": {},
}

// Tokenize normalizes text into the distinct search terms used as index
// keys: lowercased, punctuation stripped, split on whitespace, short terms
// and stop-words dropped. First-seen order is preserved so callers get a
// stable term sequence for the same input.
func Tokenize(text string) []string {
	normalized := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, text)

	var terms []string
	seen := make(map[string]struct{})
	for _, word := range strings.Fields(normalized) {
		if len(word) < config.MinTermLength {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		terms = append(terms, word)
	}
	return terms
}
