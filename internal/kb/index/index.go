package index

import (
	"github.com/avasani/KnowledgeAPI/internal/domain/kbmodel"
)

// postingList keeps refs in insertion order and deduplicates by document id,
// so indexing the same document twice never produces a second reference and
// lookups return a stable ordering.
type postingList struct {
	refs  []kbmodel.DocRef
	byDoc map[string]int // document id -> position in refs
}

func newPostingList() *postingList {
	return &postingList{byDoc: make(map[string]int)}
}

func (p *postingList) add(ref kbmodel.DocRef) {
	if _, exists := p.byDoc[ref.DocumentID]; exists {
		return
	}
	p.byDoc[ref.DocumentID] = len(p.refs)
	p.refs = append(p.refs, ref)
}

func (p *postingList) remove(documentID string) {
	pos, exists := p.byDoc[documentID]
	if !exists {
		return
	}
	p.refs = append(p.refs[:pos], p.refs[pos+1:]...)
	delete(p.byDoc, documentID)
	for i := pos; i < len(p.refs); i++ {
		p.byDoc[p.refs[i].DocumentID] = i
	}
}

// Index is an approximate inverted index: term -> documents containing the
// term. It records presence only; occurrence frequency is recomputed from
// chunk text at query time. Not goroutine safe on its own - the
// KnowledgeBase aggregate serializes all access behind its lock.
type Index struct {
	postings map[string]*postingList
}

func New() *Index {
	return &Index{postings: make(map[string]*postingList)}
}

// Add records a reference for every distinct term of the document's
// extracted text. Calling it again for the same document is a no-op.
func (ix *Index) Add(doc *kbmodel.Document) {
	ref := kbmodel.DocRef{DocumentID: doc.ID, OwnerID: doc.OwnerID}
	for _, term := range Tokenize(doc.ExtractedText) {
		list, ok := ix.postings[term]
		if !ok {
			list = newPostingList()
			ix.postings[term] = list
		}
		list.add(ref)
	}
}

// Remove drops every reference to the document. Terms whose posting list
// becomes empty are deleted so the index never retains empty entries.
func (ix *Index) Remove(documentID string) {
	for term, list := range ix.postings {
		list.remove(documentID)
		if len(list.refs) == 0 {
			delete(ix.postings, term)
		}
	}
}

// Lookup returns the documents referencing a term in insertion order. The
// returned slice is a copy and safe to retain.
func (ix *Index) Lookup(term string) []kbmodel.DocRef {
	list, ok := ix.postings[term]
	if !ok {
		return nil
	}
	refs := make([]kbmodel.DocRef, len(list.refs))
	copy(refs, list.refs)
	return refs
}

// TermCount reports the number of distinct indexed terms.
func (ix *Index) TermCount() int {
	return len(ix.postings)
}
