package search

import (
	"sort"
	"strings"

	"github.com/avasani/KnowledgeAPI/internal/config"
	"github.com/avasani/KnowledgeAPI/internal/domain/kbmodel"
	"github.com/avasani/KnowledgeAPI/internal/kb/index"
	"github.com/avasani/KnowledgeAPI/internal/kb/store"
)

// Run executes a query against the term index and document store. Document
// ranking counts distinct matching query terms; excerpt ranking inside a
// document counts raw term occurrences. The two stay deliberately
// asymmetric: a coarse document filter and a fine excerpt selector.
//
// Callers must hold the KnowledgeBase read lock; Run never mutates state.
func Run(query, ownerID string, opts kbmodel.SearchOptions, ix *index.Index, docs *store.DocumentStore) ([]kbmodel.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, kbmodel.ErrInvalidQuery
	}

	terms := index.Tokenize(query)

	// accumulate one point per distinct term present in a document,
	// remembering first-hit order so ties stay stable
	scores := make(map[string]int)
	var order []string
	for _, term := range terms {
		for _, ref := range ix.Lookup(term) {
			if ref.OwnerID != ownerID {
				// the index is owner-scoped already; defense in depth
				continue
			}
			if _, seen := scores[ref.DocumentID]; !seen {
				order = append(order, ref.DocumentID)
			}
			scores[ref.DocumentID]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	limit := opts.Limit
	if limit <= 0 {
		limit = config.DefaultSearchLimit
	}
	if len(order) > limit {
		order = order[:limit]
	}

	results := make([]kbmodel.SearchResult, 0, len(order))
	for _, documentID := range order {
		doc, ok := docs.Get(ownerID, documentID)
		if !ok || doc.Status != kbmodel.StatusProcessed {
			continue
		}
		if opts.Category != "" && doc.Category != opts.Category {
			continue
		}

		results = append(results, kbmodel.SearchResult{
			Document:       doc.Summary(),
			Score:          scores[documentID],
			RelevantChunks: relevantChunks(doc, terms),
			MatchedTerms:   matchedTerms(doc, terms),
		})
	}
	return results, nil
}

// relevantChunks ranks every chunk by total query term occurrences and
// keeps the top chunks that matched at all.
func relevantChunks(doc *kbmodel.Document, terms []string) []kbmodel.ChunkMatch {
	var matches []kbmodel.ChunkMatch
	for _, chunk := range doc.Chunks {
		lower := strings.ToLower(chunk.Text)
		occurrences := 0
		for _, term := range terms {
			occurrences += strings.Count(lower, term)
		}
		if occurrences > 0 {
			matches = append(matches, kbmodel.ChunkMatch{Chunk: chunk, Occurrences: occurrences})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Occurrences > matches[j].Occurrences
	})
	if len(matches) > config.MaxRelevantChunks {
		matches = matches[:config.MaxRelevantChunks]
	}
	return matches
}

// matchedTerms reports the query terms that literally appear anywhere in
// the document's full extracted text.
func matchedTerms(doc *kbmodel.Document, terms []string) []string {
	lower := strings.ToLower(doc.ExtractedText)
	var matched []string
	for _, term := range terms {
		if strings.Contains(lower, term) {
			matched = append(matched, term)
		}
	}
	return matched
}
