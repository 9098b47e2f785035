package store

import (
	"sort"
	"strings"
	"time"

	"github.com/avasani/KnowledgeAPI/internal/config"
	"github.com/avasani/KnowledgeAPI/internal/domain/kbmodel"
)

// DocumentStore holds document records partitioned by owner. It is a plain
// data structure: the KnowledgeBase aggregate serializes access behind its
// lock, so no mutex lives here.
type DocumentStore struct {
	docs map[string]map[string]*kbmodel.Document // owner id -> document id -> record
}

func New() *DocumentStore {
	return &DocumentStore{docs: make(map[string]map[string]*kbmodel.Document)}
}

func (s *DocumentStore) Put(doc *kbmodel.Document) {
	owned, ok := s.docs[doc.OwnerID]
	if !ok {
		owned = make(map[string]*kbmodel.Document)
		s.docs[doc.OwnerID] = owned
	}
	owned[doc.ID] = doc
}

// Get returns the record for the owner, or false. A document existing under
// a different owner is indistinguishable from one that does not exist.
func (s *DocumentStore) Get(ownerID, documentID string) (*kbmodel.Document, bool) {
	doc, ok := s.docs[ownerID][documentID]
	return doc, ok
}

// Delete removes the record and returns it so the caller can cascade to the
// term index and the backing file.
func (s *DocumentStore) Delete(ownerID, documentID string) (*kbmodel.Document, bool) {
	doc, ok := s.docs[ownerID][documentID]
	if !ok {
		return nil, false
	}
	delete(s.docs[ownerID], documentID)
	return doc, true
}

// Update applies the metadata patch and refreshes UpdatedAt.
func (s *DocumentStore) Update(ownerID, documentID string, patch kbmodel.MetadataPatch) (*kbmodel.Document, bool) {
	doc, ok := s.docs[ownerID][documentID]
	if !ok {
		return nil, false
	}
	if patch.Title != nil {
		doc.Title = *patch.Title
	}
	if patch.Description != nil {
		doc.Description = *patch.Description
	}
	if patch.Category != nil {
		doc.Category = *patch.Category
	}
	doc.UpdatedAt = time.Now()
	return doc, true
}

// List returns processed documents for the owner as summaries, filtered by
// category, sorted by the requested field and paginated with 1-indexed
// pages.
func (s *DocumentStore) List(ownerID string, opts kbmodel.ListOptions) []kbmodel.DocumentSummary {
	var matched []*kbmodel.Document
	for _, doc := range s.docs[ownerID] {
		if doc.Status != kbmodel.StatusProcessed {
			continue
		}
		if opts.Category != "" && doc.Category != opts.Category {
			continue
		}
		matched = append(matched, doc)
	}

	sortDocuments(matched, opts.SortBy, opts.SortOrder)

	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = config.DefaultPageSize
	}
	if limit > config.MaxPageSize {
		limit = config.MaxPageSize
	}

	start := (page - 1) * limit
	if start >= len(matched) {
		return []kbmodel.DocumentSummary{}
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	summaries := make([]kbmodel.DocumentSummary, 0, end-start)
	for _, doc := range matched[start:end] {
		summaries = append(summaries, doc.Summary())
	}
	return summaries
}

// Count reports the number of processed documents for the owner, restricted
// to a category when one is given.
func (s *DocumentStore) Count(ownerID, category string) int {
	count := 0
	for _, doc := range s.docs[ownerID] {
		if doc.Status != kbmodel.StatusProcessed {
			continue
		}
		if category != "" && doc.Category != category {
			continue
		}
		count++
	}
	return count
}

func sortDocuments(docs []*kbmodel.Document, sortBy string, order kbmodel.SortOrder) {
	less := lessFunc(sortBy)
	desc := order == kbmodel.SortDesc || (order == "" && sortBy == "")
	if desc {
		// default listing is newest first
		orig := less
		less = func(a, b *kbmodel.Document) bool { return orig(b, a) }
	}
	// deterministic order for equal keys
	sort.SliceStable(docs, func(i, j int) bool {
		if less(docs[i], docs[j]) {
			return true
		}
		if less(docs[j], docs[i]) {
			return false
		}
		return docs[i].ID < docs[j].ID
	})
}

func lessFunc(sortBy string) func(a, b *kbmodel.Document) bool {
	switch strings.ToLower(sortBy) {
	case "title":
		return func(a, b *kbmodel.Document) bool { return a.Title < b.Title }
	case "file_name", "filename":
		return func(a, b *kbmodel.Document) bool { return a.FileName < b.FileName }
	case "file_size", "filesize":
		return func(a, b *kbmodel.Document) bool { return a.FileSizeBytes < b.FileSizeBytes }
	case "word_count", "wordcount":
		return func(a, b *kbmodel.Document) bool { return a.WordCount < b.WordCount }
	case "category":
		return func(a, b *kbmodel.Document) bool { return a.Category < b.Category }
	case "updated_at", "updatedat":
		return func(a, b *kbmodel.Document) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default: // created_at
		return func(a, b *kbmodel.Document) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}
